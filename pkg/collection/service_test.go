package collection_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notewell/notewell/internal/settings"
	"github.com/notewell/notewell/pkg/collection"
	"github.com/notewell/notewell/pkg/content"
	"github.com/notewell/notewell/pkg/core"
	"github.com/notewell/notewell/pkg/relay"
	"github.com/notewell/notewell/pkg/store"
)

type testEnv struct {
	svc   *collection.Service
	relay *relay.Relay
	set   *settings.Settings
	store *store.Store
}

func newTestEnv(t *testing.T, opts ...collection.Option) *testEnv {
	t.Helper()

	set, err := settings.Load(t.TempDir())
	require.NoError(t, err)

	st := store.New()
	r := relay.New()
	opts = append([]collection.Option{collection.WithStore(st)}, opts...)
	svc := collection.NewService(set, r, opts...)
	require.NoError(t, svc.Initialize(context.Background()))

	t.Cleanup(func() { _ = st.Close() })
	return &testEnv{svc: svc, relay: r, set: set, store: st}
}

// contentPath resolves the content file of a note in the active collection.
func (e *testEnv) contentPath(id string) string {
	return filepath.Join(e.set.StorageDirectory(), e.svc.ActiveCollection(), id+content.ContentExt)
}

// drain returns the pending messages of a subscription without blocking.
func drain(sub *relay.Subscription) []relay.Message {
	var msgs []relay.Message
	for {
		select {
		case m := <-sub.C():
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

func TestInitialize(t *testing.T) {
	t.Run("Creates Default Collection", func(t *testing.T) {
		env := newTestEnv(t)

		assert.Equal(t, collection.DefaultCollection, env.svc.ActiveCollection())

		dir := filepath.Join(env.set.StorageDirectory(), collection.DefaultCollection)
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		_, err = os.Stat(filepath.Join(dir, collection.DefaultCollection+".db"))
		assert.NoError(t, err)
	})

	t.Run("Concurrent Callers Share One Initialization", func(t *testing.T) {
		set, err := settings.Load(t.TempDir())
		require.NoError(t, err)

		st := store.New()
		svc := collection.NewService(set, relay.New(), collection.WithStore(st))
		t.Cleanup(func() { _ = st.Close() })

		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = svc.Initialize(context.Background())
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			assert.NoError(t, err)
		}
		assert.Equal(t, collection.DefaultCollection, svc.ActiveCollection())
	})

	t.Run("Reinitialize After Invalidate", func(t *testing.T) {
		env := newTestEnv(t)

		env.svc.Invalidate()
		require.NoError(t, env.svc.Initialize(context.Background()))
	})

	t.Run("Uninitialized Service Reports Errors", func(t *testing.T) {
		set, err := settings.Load(t.TempDir())
		require.NoError(t, err)

		svc := collection.NewService(set, relay.New())

		result := svc.AddNote("Note", core.UnfiledNotesID)
		assert.Equal(t, core.Error, result.Operation)

		batch := svc.DeleteNotes([]string{"a", "b"})
		assert.Equal(t, core.Error, batch.Operation())
		assert.Len(t, batch.Failures, 2)
	})
}

func TestAddNote(t *testing.T) {
	t.Run("Numbers Titles", func(t *testing.T) {
		env := newTestEnv(t)

		first := env.svc.AddNote("Note", core.AllNotesID)
		require.Equal(t, core.Success, first.Operation)
		assert.Equal(t, "Note 1", first.Title)

		second := env.svc.AddNote("Note", core.AllNotesID)
		require.Equal(t, core.Success, second.Operation)
		assert.Equal(t, "Note 2", second.Title)
	})

	t.Run("Creates Empty Content File", func(t *testing.T) {
		env := newTestEnv(t)

		result := env.svc.AddNote("Note", core.UnfiledNotesID)
		require.Equal(t, core.Success, result.Operation)

		note, err := env.svc.GetNote(result.NoteID)
		require.NoError(t, err)
		assert.Equal(t, result.Title, note.Title)

		data, err := os.ReadFile(env.contentPath(result.NoteID))
		require.NoError(t, err)
		assert.Empty(t, data)
	})

	t.Run("Default Notebooks Mean Unfiled", func(t *testing.T) {
		env := newTestEnv(t)

		result := env.svc.AddNote("Note", core.AllNotesID)
		require.Equal(t, core.Success, result.Operation)

		note, err := env.svc.GetNote(result.NoteID)
		require.NoError(t, err)
		assert.Empty(t, note.NotebookID)
	})
}

func TestSetNoteTitle(t *testing.T) {
	t.Run("Unchanged Title Aborts", func(t *testing.T) {
		env := newTestEnv(t)

		created := env.svc.AddNote("Note", core.AllNotesID)
		require.Equal(t, core.Success, created.Operation)

		before, err := env.svc.GetNote(created.NoteID)
		require.NoError(t, err)

		result := env.svc.SetNoteTitle(created.NoteID, created.Title, created.Title)
		assert.Equal(t, core.Aborted, result.Operation)

		// No write happened.
		after, err := env.svc.GetNote(created.NoteID)
		require.NoError(t, err)
		assert.Equal(t, before.ModificationDate, after.ModificationDate)
	})

	t.Run("Blank Title", func(t *testing.T) {
		env := newTestEnv(t)

		created := env.svc.AddNote("Note", core.AllNotesID)
		result := env.svc.SetNoteTitle(created.NoteID, created.Title, "   ")
		assert.Equal(t, core.Blank, result.Operation)
	})

	t.Run("Collision Is Duplicate", func(t *testing.T) {
		env := newTestEnv(t)

		first := env.svc.AddNote("Note", core.AllNotesID)
		second := env.svc.AddNote("Note", core.AllNotesID)

		result := env.svc.SetNoteTitle(second.NoteID, second.Title, first.Title)
		assert.Equal(t, core.Duplicate, result.Operation)

		note, err := env.svc.GetNote(second.NoteID)
		require.NoError(t, err)
		assert.Equal(t, second.Title, note.Title)
	})

	t.Run("Rename", func(t *testing.T) {
		env := newTestEnv(t)

		created := env.svc.AddNote("Note", core.AllNotesID)
		result := env.svc.SetNoteTitle(created.NoteID, created.Title, "Meeting notes")
		require.Equal(t, core.Success, result.Operation)
		assert.Equal(t, "Meeting notes", result.Title)

		note, err := env.svc.GetNote(created.NoteID)
		require.NoError(t, err)
		assert.Equal(t, "Meeting notes", note.Title)
	})
}

func TestDeleteNotes(t *testing.T) {
	t.Run("Missing Note Does Not Block The Rest", func(t *testing.T) {
		env := newTestEnv(t)

		created := env.svc.AddNote("Note", core.AllNotesID)
		require.Equal(t, core.Success, created.Operation)

		result := env.svc.DeleteNotes([]string{created.NoteID, "missing"})
		assert.Equal(t, core.Error, result.Operation())
		assert.Equal(t, 1, result.Succeeded)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, "missing", result.Failures[0].ID)

		_, err := env.svc.GetNote(created.NoteID)
		assert.ErrorIs(t, err, core.ErrNotFound)
		_, err = os.Stat(env.contentPath(created.NoteID))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestNotebooks(t *testing.T) {
	t.Run("Synthetic Notebooks", func(t *testing.T) {
		env := newTestEnv(t)

		notebooks := env.svc.GetNotebooks(true)
		require.GreaterOrEqual(t, len(notebooks), 2)
		assert.Equal(t, core.AllNotesID, notebooks[0].ID)
		assert.Equal(t, core.UnfiledNotesID, notebooks[1].ID)

		withoutAll := env.svc.GetNotebooks(false)
		assert.Len(t, withoutAll, len(notebooks)-1)
	})

	t.Run("Case Insensitive Duplicate", func(t *testing.T) {
		env := newTestEnv(t)

		assert.Equal(t, core.Success, env.svc.AddNotebook("Work"))
		assert.Equal(t, core.Duplicate, env.svc.AddNotebook("wOrK"))
	})

	t.Run("Rename", func(t *testing.T) {
		env := newTestEnv(t)

		require.Equal(t, core.Success, env.svc.AddNotebook("Work"))
		require.Equal(t, core.Success, env.svc.AddNotebook("Home"))

		work, err := env.store.GetNotebookByName("Work")
		require.NoError(t, err)

		assert.Equal(t, core.Aborted, env.svc.RenameNotebook(work.ID, "Work"))
		assert.Equal(t, core.Duplicate, env.svc.RenameNotebook(work.ID, "Home"))
		assert.Equal(t, core.Success, env.svc.RenameNotebook(work.ID, "Office"))

		renamed, err := env.store.GetNotebookByID(work.ID)
		require.NoError(t, err)
		assert.Equal(t, "Office", renamed.Name)
	})

	t.Run("Delete Batch", func(t *testing.T) {
		env := newTestEnv(t)

		require.Equal(t, core.Success, env.svc.AddNotebook("Work"))
		work, err := env.store.GetNotebookByName("Work")
		require.NoError(t, err)

		result := env.svc.DeleteNotebooks([]string{work.ID, "missing"})
		assert.Equal(t, core.Error, result.Operation())
		assert.Equal(t, 1, result.Succeeded)
	})
}

func TestSetNotebook(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, core.Success, env.svc.AddNotebook("Work"))
	work, err := env.store.GetNotebookByName("Work")
	require.NoError(t, err)

	created := env.svc.AddNote("Note", core.AllNotesID)
	require.Equal(t, core.Success, created.Operation)

	result := env.svc.SetNotebook(work.ID, []string{created.NoteID})
	require.Equal(t, core.Success, result.Operation())

	note, err := env.svc.GetNote(created.NoteID)
	require.NoError(t, err)
	assert.Equal(t, work.ID, note.NotebookID)
	assert.Equal(t, "Work", env.svc.GetNotebook(created.NoteID).Name)

	// Back to unfiled through the pseudo-id.
	result = env.svc.SetNotebook(core.UnfiledNotesID, []string{created.NoteID})
	require.Equal(t, core.Success, result.Operation())

	note, err = env.svc.GetNote(created.NoteID)
	require.NoError(t, err)
	assert.Empty(t, note.NotebookID)
}

func TestSetNoteMark(t *testing.T) {
	env := newTestEnv(t)

	created := env.svc.AddNote("Note", core.AllNotesID)
	require.Equal(t, core.Success, created.Operation)

	sub := env.relay.Subscribe(relay.KindNoteMarkChanged)

	require.Equal(t, core.Success, env.svc.SetNoteMark(created.NoteID, true))

	msgs := drain(sub)
	require.Len(t, msgs, 1)
	mark := msgs[0].(relay.NoteMarkChanged).Mark
	assert.Equal(t, created.NoteID, mark.NoteID)
	assert.True(t, mark.IsMarked)
	assert.Equal(t, 1, mark.MarkedCount)
}

func TestGetNotes(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.Local)
	env := newTestEnv(t, collection.WithClock(func() time.Time { return now }))

	backdate := func(id string, daysAgo int) {
		note, err := env.store.GetNoteByID(id)
		require.NoError(t, err)
		note.ModificationDate = now.AddDate(0, 0, -daysAgo).UnixMilli()
		require.NoError(t, env.store.UpdateNoteWithoutDate(note))
	}

	today := env.svc.AddNote("Today", core.AllNotesID)
	yesterday := env.svc.AddNote("Yesterday", core.AllNotesID)
	lastWeek := env.svc.AddNote("Older", core.AllNotesID)
	backdate(yesterday.NoteID, 1)
	backdate(lastWeek.NoteID, 8)

	require.Equal(t, core.Success, env.svc.SetNoteMark(today.NoteID, true))

	t.Run("Counts Are Published", func(t *testing.T) {
		sub := env.relay.Subscribe(relay.KindNotesCountChanged)

		notes, err := env.svc.GetNotes(core.AllNotesID, core.CategoryAll, false)
		require.NoError(t, err)
		assert.Len(t, notes, 3)

		msgs := drain(sub)
		require.Len(t, msgs, 1)
		counts := msgs[0].(relay.NotesCountChanged).Counts
		assert.Equal(t, 3, counts.All)
		assert.Equal(t, 1, counts.Today)
		assert.Equal(t, 1, counts.Yesterday)
		assert.Equal(t, 2, counts.ThisWeek)
		assert.Equal(t, 1, counts.Marked)
	})

	t.Run("Category Filters", func(t *testing.T) {
		notes, err := env.svc.GetNotes(core.AllNotesID, core.CategoryToday, false)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, today.NoteID, notes[0].ID)

		notes, err = env.svc.GetNotes(core.AllNotesID, core.CategoryThisWeek, false)
		require.NoError(t, err)
		assert.Len(t, notes, 2)

		notes, err = env.svc.GetNotes(core.AllNotesID, core.CategoryMarked, false)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, today.NoteID, notes[0].ID)
	})

	t.Run("Relative And Exact Dates", func(t *testing.T) {
		notes, err := env.svc.GetNotes(core.AllNotesID, core.CategoryAll, false)
		require.NoError(t, err)
		for _, n := range notes {
			if n.ID == yesterday.NoteID {
				assert.Equal(t, "yesterday", n.DisplayModificationDate)
				assert.Equal(t, "June 14, 2024", n.DisplayExactModificationDate)
			}
		}

		notes, err = env.svc.GetNotes(core.AllNotesID, core.CategoryAll, true)
		require.NoError(t, err)
		for _, n := range notes {
			if n.ID == yesterday.NoteID {
				assert.Equal(t, "June 14, 2024", n.DisplayModificationDate)
			}
		}
	})

	t.Run("Search Filter Applies", func(t *testing.T) {
		env.svc.Search().SetQuery("Yester")
		defer env.svc.Search().SetQuery("")

		notes, err := env.svc.GetNotes(core.AllNotesID, core.CategoryAll, false)
		require.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, yesterday.NoteID, notes[0].ID)
	})
}

func TestSetNoteText(t *testing.T) {
	env := newTestEnv(t)

	created := env.svc.AddNote("Note", core.AllNotesID)
	require.Equal(t, core.Success, created.Operation)

	require.Equal(t, core.Success, env.svc.SetNoteText(created.NoteID, "hello world"))

	note, err := env.svc.GetNote(created.NoteID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", note.Text)

	assert.Equal(t, core.Error, env.svc.SetNoteText("missing", "x"))
}

func TestOpenNotes(t *testing.T) {
	env := newTestEnv(t)

	sub := env.relay.Subscribe(relay.KindOpenNoteWindow)

	assert.False(t, env.svc.HasOpenNotes())

	env.svc.SetNoteOpen("n1", true)
	assert.True(t, env.svc.NoteIsOpen("n1"))
	assert.True(t, env.svc.HasOpenNotes())
	require.Len(t, drain(sub), 1)

	// Opening an already open note does not ask for another window.
	env.svc.SetNoteOpen("n1", true)
	assert.Empty(t, drain(sub))

	env.svc.SetNoteOpen("n1", false)
	assert.False(t, env.svc.NoteIsOpen("n1"))
	assert.False(t, env.svc.HasOpenNotes())
}

func TestCollections(t *testing.T) {
	t.Run("Add And Duplicate", func(t *testing.T) {
		env := newTestEnv(t)

		assert.Equal(t, core.Success, env.svc.AddCollection("Personal"))
		assert.Equal(t, "Personal", env.svc.ActiveCollection())
		assert.Equal(t, core.Duplicate, env.svc.AddCollection("personal"))
	})

	t.Run("Sanitizes Names", func(t *testing.T) {
		env := newTestEnv(t)

		require.Equal(t, core.Success, env.svc.AddCollection(`Per/so:nal`))
		assert.Equal(t, "Personal", env.svc.ActiveCollection())
	})

	t.Run("Rename", func(t *testing.T) {
		env := newTestEnv(t)

		assert.Equal(t, core.Aborted, env.svc.RenameCollection(collection.DefaultCollection, "default"))
		assert.Equal(t, core.Success, env.svc.RenameCollection(collection.DefaultCollection, "Renamed"))
		assert.Equal(t, "Renamed", env.svc.ActiveCollection())

		dir := filepath.Join(env.set.StorageDirectory(), "Renamed")
		_, err := os.Stat(filepath.Join(dir, "Renamed.db"))
		assert.NoError(t, err)
	})

	t.Run("Delete Reassigns Active", func(t *testing.T) {
		env := newTestEnv(t)

		require.Equal(t, core.Success, env.svc.AddCollection("Second"))
		require.Equal(t, core.Success, env.svc.DeleteCollection("Second"))
		assert.Equal(t, collection.DefaultCollection, env.svc.ActiveCollection())
	})

	t.Run("Collections Changed Notification", func(t *testing.T) {
		env := newTestEnv(t)
		sub := env.relay.Subscribe(relay.KindCollectionsChanged)

		require.Equal(t, core.Success, env.svc.AddCollection("Second"))
		assert.Len(t, drain(sub), 1)
	})
}
