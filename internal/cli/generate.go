package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"brickforge/internal/aigen"
	"brickforge/internal/catalog"
	"brickforge/internal/engineconfig"
	"brickforge/internal/env"
	"brickforge/internal/persist"
)

var (
	generateOut   string
	generateName  string
	generateModel string
)

// generateCmd runs one AI generation headlessly and writes the result to a
// JSON file or into the build library, without opening a window.
var generateCmd = &cobra.Command{
	Use:   "generate <prompt>",
	Short: "Generate a build from a text prompt without opening the editor",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = env.Load(".env")
		prefs, _ := engineconfig.Load()
		model := generateModel
		if model == "" {
			model = prefs.AIModel
		}
		cat := catalog.Default()
		adapter := aigen.New(newClient(), cat, func() string { return model })

		prompt := strings.Join(args, " ")
		res, err := adapter.Generate(cmd.Context(), prompt)
		if err != nil {
			return err
		}
		if res.Notice != "" {
			return fmt.Errorf("%s", res.Notice)
		}
		fmt.Printf("generated %d parts (%d invalid records dropped)\n", len(res.Parts), res.Dropped)

		if generateName != "" {
			lib, err := persist.OpenLibrary(LibraryPath)
			if err != nil {
				return err
			}
			defer lib.Close()
			if err := lib.Save(generateName, res.Parts); err != nil {
				return err
			}
			fmt.Printf("saved to library as %q\n", generateName)
			return nil
		}
		if err := persist.SaveFile(generateOut, res.Parts); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", generateOut)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "build.json", "output JSON file")
	generateCmd.Flags().StringVar(&generateName, "name", "", "save into the build library under this name instead of a file")
	generateCmd.Flags().StringVar(&generateModel, "model", "", "model name (default from preferences)")
	rootCmd.AddCommand(generateCmd)
}
