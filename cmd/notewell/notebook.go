package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var notebookCmd = &cobra.Command{
	Use:   "notebook",
	Short: "Manage notebooks in the active collection",
}

var notebookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List notebooks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())

		for _, nb := range svc.GetNotebooks(true) {
			fmt.Printf("%s\t%s\n", nb.ID, nb.Name)
		}
	},
}

var notebookAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a notebook",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())
		exitOp(svc.AddNotebook(args[0]))
	},
}

var notebookRenameCmd = &cobra.Command{
	Use:   "rename <id> <new-name>",
	Short: "Rename a notebook",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())
		exitOp(svc.RenameNotebook(args[0], args[1]))
	},
}

var notebookDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete notebooks (their notes become unfiled)",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())

		result := svc.DeleteNotebooks(args)
		for _, f := range result.Failures {
			fmt.Fprintf(os.Stderr, "failed: %s: %v\n", f.ID, f.Err)
		}
		fmt.Printf("deleted %d of %d notebooks\n", result.Succeeded, len(args))
		exitOp(result.Operation())
	},
}

func init() {
	notebookCmd.AddCommand(notebookListCmd)
	notebookCmd.AddCommand(notebookAddCmd)
	notebookCmd.AddCommand(notebookRenameCmd)
	notebookCmd.AddCommand(notebookDeleteCmd)
	rootCmd.AddCommand(notebookCmd)
}
