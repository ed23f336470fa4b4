package storage

import (
	"testing"

	"ai-grocery-assistant/internal/grocery"
)

func TestListStore(t *testing.T) {
	store, err := NewListStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create ListStore: %v", err)
	}

	items := grocery.ParseList("2 lbs chicken breast\n- Milk\n1/2 cup flour")
	if len(items) != 3 {
		t.Fatalf("Expected 3 parsed items, got %d", len(items))
	}

	var savedID string

	t.Run("Save", func(t *testing.T) {
		saved, err := store.Save("cli", items)
		if err != nil {
			t.Fatalf("Failed to save list: %v", err)
		}
		if saved.ID == "" {
			t.Error("Expected a generated ID")
		}
		if saved.SavedAt.IsZero() {
			t.Error("Expected a save timestamp")
		}
		savedID = saved.ID
	})

	t.Run("Load", func(t *testing.T) {
		loaded, err := store.Load(savedID)
		if err != nil {
			t.Fatalf("Failed to load list: %v", err)
		}
		if len(loaded.Items) != 3 {
			t.Fatalf("Expected 3 items, got %d", len(loaded.Items))
		}
		if loaded.Items[0].ItemName != "chicken breast" {
			t.Errorf("Expected 'chicken breast', got %q", loaded.Items[0].ItemName)
		}
		if loaded.Items[0].Category != grocery.CategoryMeat {
			t.Errorf("Expected meat category, got %s", loaded.Items[0].Category)
		}
		if loaded.Source != "cli" {
			t.Errorf("Expected source 'cli', got %q", loaded.Source)
		}
	})

	t.Run("ListAll", func(t *testing.T) {
		if _, err := store.Save("telegram", items[:1]); err != nil {
			t.Fatalf("Failed to save second list: %v", err)
		}
		lists, err := store.ListAll()
		if err != nil {
			t.Fatalf("Failed to list: %v", err)
		}
		if len(lists) != 2 {
			t.Fatalf("Expected 2 lists, got %d", len(lists))
		}
	})

	t.Run("Remove", func(t *testing.T) {
		if err := store.Remove(savedID); err != nil {
			t.Fatalf("Failed to remove list: %v", err)
		}
		if _, err := store.Load(savedID); err == nil {
			t.Fatal("Expected an error loading removed list, got nil")
		}
	})

	t.Run("Load-NotFound", func(t *testing.T) {
		if _, err := store.Load("no-such-id"); err == nil {
			t.Fatal("Expected an error for missing list, got nil")
		}
	})
}
