package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notewell/notewell/internal/settings"
	"github.com/notewell/notewell/pkg/collection"
	"github.com/notewell/notewell/pkg/relay"
)

var storageCmd = &cobra.Command{
	Use:   "storage [dir]",
	Short: "Show or change the storage directory",
	Long: `Without an argument, prints the current storage directory. With one,
creates a "collections" directory under the given path and stores it as the
new storage root. Existing collections are not moved.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		set, err := settings.Load(resolveConfigDir())
		if err != nil {
			fatal("Failed to load settings", err)
		}

		if len(args) == 0 {
			fmt.Println(set.StorageDirectory())
			return
		}

		svc := collection.NewService(set, relay.New())
		if err := svc.SetStorageDirectory(args[0]); err != nil {
			fatal("Failed to set storage directory", err)
		}
		fmt.Println(set.StorageDirectory())
	},
}

func init() {
	rootCmd.AddCommand(storageCmd)
}
