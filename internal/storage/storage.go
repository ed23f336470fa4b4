package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"ai-grocery-assistant/internal/grocery"

	"github.com/google/uuid"
)

// SavedList is a parsed grocery list persisted to disk.
type SavedList struct {
	ID      string               `json:"id"`
	SavedAt time.Time            `json:"saved_at"`
	Source  string               `json:"source,omitempty"`
	Items   []grocery.ParsedItem `json:"items"`
}

// ListStore provides file-based storage for parsed grocery lists.
type ListStore struct {
	basePath string
}

// NewListStore creates a new ListStore and ensures the base directory exists.
func NewListStore(basePath string) (*ListStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &ListStore{basePath: basePath}, nil
}

// sanitizeTimestamp makes the timestamp safe for filenames.
func sanitizeTimestamp(ts string) string {
	return strings.ReplaceAll(ts, ":", "-")
}

func (s *ListStore) pathFor(list SavedList) string {
	filename := fmt.Sprintf("%s_%s.json", list.ID, sanitizeTimestamp(list.SavedAt.UTC().Format(time.RFC3339)))
	return filepath.Join(s.basePath, filename)
}

// Save stores a parsed grocery list. The returned SavedList carries the
// generated ID and save timestamp.
func (s *ListStore) Save(source string, items []grocery.ParsedItem) (SavedList, error) {
	list := SavedList{
		ID:      uuid.NewString(),
		SavedAt: time.Now().UTC(),
		Source:  source,
		Items:   items,
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return SavedList{}, fmt.Errorf("failed to marshal grocery list: %w", err)
	}

	if err := os.WriteFile(s.pathFor(list), data, 0644); err != nil {
		return SavedList{}, fmt.Errorf("failed to write grocery list file: %w", err)
	}
	return list, nil
}

// Load retrieves a saved grocery list by ID.
func (s *ListStore) Load(id string) (*SavedList, error) {
	matches, err := filepath.Glob(filepath.Join(s.basePath, fmt.Sprintf("%s_*.json", id)))
	if err != nil {
		return nil, fmt.Errorf("failed to glob list files: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("grocery list %s not found", id)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read grocery list file: %w", err)
	}

	var list SavedList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grocery list: %w", err)
	}
	return &list, nil
}

// ListAll returns every saved grocery list, newest first.
func (s *ListStore) ListAll() ([]SavedList, error) {
	matches, err := filepath.Glob(filepath.Join(s.basePath, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob list files: %w", err)
	}

	var lists []SavedList
	for _, match := range matches {
		data, err := os.ReadFile(match)
		if err != nil {
			return nil, fmt.Errorf("failed to read grocery list file %s: %w", match, err)
		}
		var list SavedList
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to unmarshal grocery list %s: %w", match, err)
		}
		lists = append(lists, list)
	}

	sort.Slice(lists, func(i, j int) bool {
		return lists[i].SavedAt.After(lists[j].SavedAt)
	})
	return lists, nil
}

// Remove deletes every file associated with a list ID.
func (s *ListStore) Remove(id string) error {
	matches, err := filepath.Glob(filepath.Join(s.basePath, fmt.Sprintf("%s_*.json", id)))
	if err != nil {
		return fmt.Errorf("failed to glob list files: %w", err)
	}
	for _, match := range matches {
		if err := os.Remove(match); err != nil {
			return fmt.Errorf("failed to remove list file %s: %w", match, err)
		}
	}
	return nil
}
