package service

import (
	"testing"

	"github.com/KOD666/study-group-plus/internal/testutil"
)

func newNoteFixture(t *testing.T) (*NoteService, *messageFixture) {
	t.Helper()
	f := newMessageFixture(t)
	noteRepo := NewMockNoteRepository()
	return NewNoteService(noteRepo, f.groupRepo, f.userRepo), f
}

func TestCreateNote(t *testing.T) {
	h := testutil.NewTestHelper(t)
	h.SetupTestEnv()
	defer h.TeardownTestEnv()

	svc, f := newNoteFixture(t)

	t.Run("empty title rejected", func(t *testing.T) {
		_, err := svc.CreateNote(f.group.ID, 2, "   ", "content")
		if KindOf(err) != KindValidation {
			t.Errorf("got %v, want KindValidation", err)
		}
	})

	t.Run("non-member rejected as not found", func(t *testing.T) {
		_, err := svc.CreateNote(f.group.ID, 3, "Week 1 recap", "")
		if KindOf(err) != KindNotFound {
			t.Errorf("got %v, want KindNotFound", err)
		}
	})

	t.Run("member uploads with snapshot", func(t *testing.T) {
		id, err := svc.CreateNote(f.group.ID, 2, "Week 1 recap", "derivatives")
		if err != nil {
			t.Fatalf("CreateNote failed: %v", err)
		}
		if id == 0 {
			t.Error("expected a note id")
		}

		notes, err := svc.ListNotes(f.group.ID, 1)
		if err != nil {
			t.Fatalf("ListNotes failed: %v", err)
		}
		if len(notes) != 1 {
			t.Fatalf("got %d notes, want 1", len(notes))
		}
		if notes[0].UploaderID != 2 || notes[0].UploaderName != "bob" {
			t.Errorf("uploader snapshot = %d/%q", notes[0].UploaderID, notes[0].UploaderName)
		}
	})
}

func TestListNotesRequiresMembership(t *testing.T) {
	h := testutil.NewTestHelper(t)
	h.SetupTestEnv()
	defer h.TeardownTestEnv()

	svc, f := newNoteFixture(t)

	if _, err := svc.ListNotes(f.group.ID, 3); KindOf(err) != KindNotFound {
		t.Errorf("non-member: got %v, want KindNotFound", err)
	}
	if _, err := svc.ListNotes(999, 1); KindOf(err) != KindNotFound {
		t.Errorf("unknown group: got %v, want KindNotFound", err)
	}
}
