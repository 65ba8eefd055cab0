package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"brickforge/internal/persist"
)

// buildsCmd manages the sqlite build library from the shell.
var buildsCmd = &cobra.Command{
	Use:   "builds",
	Short: "Manage the saved-build library",
}

var buildsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved builds, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := persist.OpenLibrary(LibraryPath)
		if err != nil {
			return err
		}
		defer lib.Close()
		infos, err := lib.List()
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Println("no saved builds")
			return nil
		}
		for _, info := range infos {
			fmt.Printf("%-24s %5d parts  %s\n", info.Name, info.Parts, info.UpdatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var buildsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved build",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := persist.OpenLibrary(LibraryPath)
		if err != nil {
			return err
		}
		defer lib.Close()
		if err := lib.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("deleted %q\n", args[0])
		return nil
	},
}

var buildsExportCmd = &cobra.Command{
	Use:   "export <name> <file>",
	Short: "Export a saved build to a JSON file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, err := persist.OpenLibrary(LibraryPath)
		if err != nil {
			return err
		}
		defer lib.Close()
		parts, dropped, err := lib.Load(args[0])
		if err != nil {
			return err
		}
		if dropped > 0 {
			fmt.Printf("warning: %d invalid records dropped\n", dropped)
		}
		if err := persist.SaveFile(args[1], parts); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d parts)\n", args[1], len(parts))
		return nil
	},
}

func init() {
	buildsCmd.AddCommand(buildsListCmd, buildsDeleteCmd, buildsExportCmd)
	rootCmd.AddCommand(buildsCmd)
}
