package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"wanderwise/internal/models/db_models"
)

func TestMemorySavedSearchRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemorySavedSearchRepository()

	first := &db_models.SavedSearch{OwnerID: "alice", Name: "beach"}
	second := &db_models.SavedSearch{OwnerID: "alice", Name: "mountains"}
	other := &db_models.SavedSearch{OwnerID: "bob", Name: "city"}
	for _, s := range []*db_models.SavedSearch{first, second, other} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if s.ID == uuid.Nil || s.CreatedAt == 0 {
			t.Fatalf("Create() should assign id and timestamp, got %+v", s)
		}
	}

	list, _ := repo.ListByOwner(ctx, "alice")
	if len(list) != 2 || list[0].Name != "mountains" || list[1].Name != "beach" {
		t.Fatalf("ListByOwner() = %+v, want newest first", list)
	}

	if got, _ := repo.GetByID(ctx, "bob", first.ID); got != nil {
		t.Error("GetByID() must not return another owner's record")
	}
	got, _ := repo.GetByID(ctx, "alice", first.ID)
	if got == nil || got.Name != "beach" {
		t.Fatalf("GetByID() = %+v", got)
	}

	if deleted, _ := repo.Delete(ctx, "bob", first.ID); deleted {
		t.Error("Delete() must not remove another owner's record")
	}
	if deleted, _ := repo.Delete(ctx, "alice", first.ID); !deleted {
		t.Error("Delete() should report removal")
	}
	if deleted, _ := repo.Delete(ctx, "alice", first.ID); deleted {
		t.Error("second Delete() should report nothing removed")
	}

	list, _ = repo.ListByOwner(ctx, "alice")
	if len(list) != 1 || list[0].ID != second.ID {
		t.Errorf("after delete ListByOwner() = %+v", list)
	}

	empty, _ := repo.ListByOwner(ctx, "nobody")
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListByOwner() for unknown owner = %#v, want empty slice", empty)
	}
}
