package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notewell/notewell/pkg/core"
)

var (
	noteListNotebook string
	noteAddNotebook  string
	noteCategory     string
	noteExact        bool
	noteSearch       string
	noteUnmark       bool
)

var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes in the active collection",
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())

		if noteSearch != "" {
			svc.Search().SetQuery(noteSearch)
		}

		notes, err := svc.GetNotes(noteListNotebook, core.Category(noteCategory), noteExact)
		if err != nil {
			fatal("Failed to list notes", err)
		}
		for _, n := range notes {
			marker := " "
			if n.IsMarked {
				marker = "*"
			}
			fmt.Printf("%s %s\t%-30s\t%s\n", marker, n.ID, n.Title, n.DisplayModificationDate)
		}
	},
}

var noteAddCmd = &cobra.Command{
	Use:   "add <base-title>",
	Short: "Create a note with a numbered unique title",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())

		result := svc.AddNote(args[0], noteAddNotebook)
		if result.Operation == core.Success {
			fmt.Printf("%s\t%s\n", result.NoteID, result.Title)
		}
		exitOp(result.Operation)
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete notes and their content files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())

		result := svc.DeleteNotes(args)
		for _, f := range result.Failures {
			fmt.Fprintf(os.Stderr, "failed: %s: %v\n", f.ID, f.Err)
		}
		fmt.Printf("deleted %d of %d notes\n", result.Succeeded, len(args))
		exitOp(result.Operation())
	},
}

var noteRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-title>",
	Short: "Rename a note",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())

		note, err := svc.GetNote(args[0])
		if err != nil {
			fatal("Failed to get note", err)
		}

		result := svc.SetNoteTitle(args[0], note.Title, args[1])
		if result.Operation == core.Success {
			fmt.Println(result.Title)
		}
		exitOp(result.Operation)
	},
}

var noteMarkCmd = &cobra.Command{
	Use:   "mark <id>",
	Short: "Mark a note (or unmark with --remove)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())
		exitOp(svc.SetNoteMark(args[0], !noteUnmark))
	},
}

var noteMoveCmd = &cobra.Command{
	Use:   "move <notebook-id> <note-id>...",
	Short: "Move notes into a notebook",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())

		result := svc.SetNotebook(args[0], args[1:])
		for _, f := range result.Failures {
			fmt.Fprintf(os.Stderr, "failed: %s: %v\n", f.ID, f.Err)
		}
		exitOp(result.Operation())
	},
}

var noteExportCmd = &cobra.Command{
	Use:   "export <id> <path>",
	Short: "Export a note to a portable document",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())
		exitOp(svc.ExportNote(args[0], args[1]))
	},
}

func init() {
	noteListCmd.Flags().StringVar(&noteListNotebook, "notebook", core.AllNotesID, "Notebook id to list")
	noteListCmd.Flags().StringVar(&noteCategory, "category", string(core.CategoryAll), "Category filter (all|today|yesterday|thisweek|marked|unfiled)")
	noteListCmd.Flags().BoolVar(&noteExact, "exact-dates", false, "Show absolute dates instead of relative ones")
	noteListCmd.Flags().StringVar(&noteSearch, "search", "", "Free-text filter, tokens combined with AND")
	noteAddCmd.Flags().StringVar(&noteAddNotebook, "notebook", core.UnfiledNotesID, "Notebook id for the new note")
	noteMarkCmd.Flags().BoolVar(&noteUnmark, "remove", false, "Remove the mark instead of setting it")

	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteDeleteCmd)
	noteCmd.AddCommand(noteRenameCmd)
	noteCmd.AddCommand(noteMarkCmd)
	noteCmd.AddCommand(noteMoveCmd)
	noteCmd.AddCommand(noteExportCmd)
	rootCmd.AddCommand(noteCmd)
}
