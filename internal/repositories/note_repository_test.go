package repositories

import (
	"errors"
	"testing"

	"github.com/rusi-notes/backend/internal/models"
	"gorm.io/gorm"
)

func TestDeleteNoteRemovesEdges(t *testing.T) {
	db := newTestDB(t)
	noteRepo := NewPostgresNoteRepository(db)
	likeRepo := NewPostgresLikeRepository(db)
	commentRepo := NewPostgresCommentRepository(db)
	bookmarkRepo := NewPostgresBookmarkRepository(db)

	author := createTestUser(t, db, "author@example.com")
	reader := createTestUser(t, db, "reader@example.com")
	note := createTestNote(t, db, author.ID)
	other := createTestNote(t, db, author.ID)

	if _, err := likeRepo.ToggleLike(note.ID, reader.ID); err != nil {
		t.Fatalf("like: %v", err)
	}
	if err := bookmarkRepo.CreateBookmark(&models.Bookmark{UserID: reader.ID, NoteID: note.ID}); err != nil {
		t.Fatalf("bookmark: %v", err)
	}
	comment := &models.Comment{NoteID: note.ID, UserID: reader.ID, Content: "Looks great"}
	if err := commentRepo.CreateComment(comment); err != nil {
		t.Fatalf("comment: %v", err)
	}
	reply := &models.Comment{NoteID: note.ID, UserID: author.ID, ParentID: &comment.ID, Content: "Thanks"}
	if err := commentRepo.CreateComment(reply); err != nil {
		t.Fatalf("reply: %v", err)
	}

	// An edge on another note must survive
	if _, err := likeRepo.ToggleLike(other.ID, reader.ID); err != nil {
		t.Fatalf("like other: %v", err)
	}

	if err := noteRepo.DeleteNote(note.ID); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}

	if _, err := noteRepo.GetNoteByID(note.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("note lookup error = %v, want gorm.ErrRecordNotFound", err)
	}

	for _, tc := range []struct {
		name  string
		model interface{}
	}{
		{"likes", &models.Like{}},
		{"bookmarks", &models.Bookmark{}},
		{"comments", &models.Comment{}},
	} {
		var count int64
		if err := db.Model(tc.model).Where("note_id = ?", note.ID).Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", tc.name, err)
		}
		if count != 0 {
			t.Errorf("%s left behind for deleted note = %d, want 0", tc.name, count)
		}
	}

	liked, err := likeRepo.HasUserLikedNote(other.ID, reader.ID)
	if err != nil {
		t.Fatalf("HasUserLikedNote: %v", err)
	}
	if !liked {
		t.Error("edges of other notes must be untouched")
	}
}
