package commands

import (
	"flag"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		line string
		want []string
		ok   bool
	}{
		{"cmd save -name castle", []string{"save", "-name", "castle"}, true},
		{"cmd ", nil, true},
		{"build me a house", nil, false},
		{"CMD save", nil, false}, // case-sensitive
	}
	for _, tc := range cases {
		args, ok := Parse(tc.line)
		if ok != tc.ok {
			t.Errorf("Parse(%q) ok = %v, want %v", tc.line, ok, tc.ok)
			continue
		}
		if len(args) != len(tc.want) {
			t.Errorf("Parse(%q) = %v, want %v", tc.line, args, tc.want)
			continue
		}
		for i := range args {
			if args[i] != tc.want[i] {
				t.Errorf("Parse(%q) = %v, want %v", tc.line, args, tc.want)
			}
		}
	}
}

func TestExecute(t *testing.T) {
	r := NewRegistry()
	var gotName string
	fs := flag.NewFlagSet("save", flag.ContinueOnError)
	name := fs.String("name", "", "build name")
	r.Register("save", fs, func() error {
		gotName = *name
		return nil
	})

	if err := r.Execute([]string{"save", "-name", "castle"}); err != nil {
		t.Fatal(err)
	}
	if gotName != "castle" {
		t.Fatalf("flag value = %q", gotName)
	}
	if err := r.Execute([]string{"nope"}); err == nil {
		t.Fatal("unknown command did not error")
	}
	if err := r.Execute(nil); err == nil {
		t.Fatal("empty args did not error")
	}
}
