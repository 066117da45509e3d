package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import notes into the active collection",
}

var importLegacyCmd = &cobra.Command{
	Use:   "legacy <dir>",
	Short: "Import a legacy export directory (Notebooks.json / Notes.json)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())
		exitOp(svc.ImportLegacy(args[0]))
	},
}

var importNotebook string

var importNotesCmd = &cobra.Command{
	Use:   "notes <glob>...",
	Short: "Import exported note documents matching the glob patterns",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var paths []string
		for _, pattern := range args {
			base, pat := doublestar.SplitPattern(filepath.ToSlash(pattern))
			matches, err := doublestar.Glob(os.DirFS(base), pat)
			if err != nil {
				fatal("Invalid glob pattern", err)
			}
			for _, m := range matches {
				paths = append(paths, filepath.Join(base, m))
			}
		}
		if len(paths) == 0 {
			fmt.Println("no files matched")
			return
		}

		svc := openService(context.Background())

		result := svc.ImportNoteFiles(paths, importNotebook)
		for _, f := range result.Failures {
			fmt.Fprintf(os.Stderr, "failed: %s: %v\n", f.ID, f.Err)
		}
		fmt.Printf("imported %d of %d notes\n", result.Succeeded, len(paths))
		exitOp(result.Operation())
	},
}

func init() {
	importNotesCmd.Flags().StringVar(&importNotebook, "notebook", "", "Notebook id for the imported notes")

	importCmd.AddCommand(importLegacyCmd)
	importCmd.AddCommand(importNotesCmd)
	rootCmd.AddCommand(importCmd)
}
