package notewell_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/notewell/notewell"
)

// Example_basic demonstrates how to open a collection, create a note and
// list it back.
func Example_basic() {
	// Create a temporary config directory for the example
	tmpDir, err := os.MkdirTemp("", "notewell-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	// Initialize the service. The first run creates a default collection
	// under <configDir>/collections.
	svc, _, err := notewell.New(context.Background(), tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	// 1. Create a note
	result := svc.AddNote("Note", notewell.UnfiledNotesID)
	if result.Operation != notewell.Success {
		log.Fatalf("add note: %s", result.Operation)
	}

	// 2. Read it back
	note, err := svc.GetNote(result.NoteID)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Created note: %s\n", note.Title)
	// Output:
	// Created note: Note 1
}
