package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "Manage collections",
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List collections",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())

		collections, err := svc.Collections()
		if err != nil {
			fatal("Failed to list collections", err)
		}
		active := svc.ActiveCollection()
		for _, c := range collections {
			marker := " "
			if c == active {
				marker = "*"
			}
			fmt.Printf("%s %s\n", marker, c)
		}
	},
}

var collectionAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a collection and make it active",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())
		exitOp(svc.AddCollection(args[0]))
	},
}

var collectionRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a collection",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())
		exitOp(svc.RenameCollection(args[0], args[1]))
	},
}

var collectionDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a collection and everything in it",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())
		exitOp(svc.DeleteCollection(args[0]))
	},
}

var collectionActivateCmd = &cobra.Command{
	Use:   "activate <name>",
	Short: "Switch the active collection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService(context.Background())
		exitOp(svc.ActivateCollection(args[0]))
	},
}

func init() {
	collectionCmd.AddCommand(collectionListCmd)
	collectionCmd.AddCommand(collectionAddCmd)
	collectionCmd.AddCommand(collectionRenameCmd)
	collectionCmd.AddCommand(collectionDeleteCmd)
	collectionCmd.AddCommand(collectionActivateCmd)
	rootCmd.AddCommand(collectionCmd)
}
