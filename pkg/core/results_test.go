package core_test

import (
	"errors"
	"testing"

	"github.com/notewell/notewell/pkg/core"
)

func TestBatchResult(t *testing.T) {
	t.Run("Clean Batch Is Success", func(t *testing.T) {
		b := core.BatchResult{Succeeded: 3}
		if got := b.Operation(); got != core.Success {
			t.Errorf("Expected success, got %s", got)
		}
	})

	t.Run("Any Failure Downgrades To Error", func(t *testing.T) {
		var b core.BatchResult
		b.Succeeded = 2
		b.Fail("id2", errors.New("boom"))

		if got := b.Operation(); got != core.Error {
			t.Errorf("Expected error, got %s", got)
		}
		if len(b.Failures) != 1 || b.Failures[0].ID != "id2" {
			t.Errorf("Unexpected failures: %v", b.Failures)
		}
	})
}

func TestOperationString(t *testing.T) {
	cases := map[core.Operation]string{
		core.Success:   "success",
		core.Duplicate: "duplicate",
		core.Blank:     "blank",
		core.Aborted:   "aborted",
		core.Error:     "error",
	}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("Expected '%s', got '%s'", want, got)
		}
	}
}
