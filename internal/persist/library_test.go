package persist

import (
	"path/filepath"
	"reflect"
	"testing"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()
	l, err := OpenLibrary(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestLibrarySaveLoad(t *testing.T) {
	l := openTestLibrary(t)
	in := sampleBuild()
	if err := l.Save("castle", in); err != nil {
		t.Fatal(err)
	}
	out, dropped, err := l.Load("castle")
	if err != nil {
		t.Fatal(err)
	}
	if dropped != 0 || !reflect.DeepEqual(in, out) {
		t.Fatalf("library round trip diverged: %+v", out)
	}
}

func TestLibrarySaveReplaces(t *testing.T) {
	l := openTestLibrary(t)
	if err := l.Save("wip", sampleBuild()); err != nil {
		t.Fatal(err)
	}
	if err := l.Save("wip", sampleBuild()[:1]); err != nil {
		t.Fatal(err)
	}
	out, _, err := l.Load("wip")
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("replaced build has %d parts, want 1", len(out))
	}
	infos, err := l.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].Parts != 1 {
		t.Fatalf("listing = %+v", infos)
	}
}

func TestLibraryLoadMissing(t *testing.T) {
	l := openTestLibrary(t)
	if _, _, err := l.Load("nope"); err == nil {
		t.Fatal("Load of a missing build succeeded")
	}
}

func TestLibraryDelete(t *testing.T) {
	l := openTestLibrary(t)
	if err := l.Save("tmp", sampleBuild()); err != nil {
		t.Fatal(err)
	}
	if err := l.Delete("tmp"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := l.Load("tmp"); err == nil {
		t.Fatal("deleted build still loads")
	}
	if err := l.Delete("absent"); err != nil {
		t.Fatalf("deleting an absent build errored: %v", err)
	}
}

func TestLibrarySaveEmptyName(t *testing.T) {
	l := openTestLibrary(t)
	if err := l.Save("", nil); err == nil {
		t.Fatal("Save accepted an empty name")
	}
}
