package store

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"triage-cli/internal/model"
	"triage-cli/internal/section"
)

const dbFileName = "triage.sqlite"

// DB is the full in-memory state of a triage store.
type DB struct {
	Config model.ListConfiguration `json:"config"`
	Items  []model.Item            `json:"items"`
}

// Store locates and persists a triage database directory.
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for an existing .triage directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".triage")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir returns the discovered store directory, or .triage under the
// current directory when none exists yet.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".triage"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

// Load reads the full state from SQLite, creating an empty store if needed.
func (s Store) Load(ctx context.Context) (*DB, error) {
	return s.loadSQLite(ctx)
}

// Save persists the full state to SQLite in one transaction.
func (s Store) Save(ctx context.Context, db *DB) error {
	return s.saveSQLite(ctx, db)
}

// FindItem returns a pointer into db.Items for the given id.
func (db *DB) FindItem(id string) (*model.Item, bool) {
	for i := range db.Items {
		if db.Items[i].ID == id {
			return &db.Items[i], true
		}
	}
	return nil, false
}

// MaxManualOrder returns the highest manual order across all items, or 0
// when the list is empty. New items take MaxManualOrder()+1 so they sort
// first within their section.
func (db *DB) MaxManualOrder() int {
	max := 0
	for i := range db.Items {
		if db.Items[i].ManualOrder > max {
			max = db.Items[i].ManualOrder
		}
	}
	return max
}

// RecomputeSectionKeys rewrites every item's derived section key for the
// current mode. Callers switch db.Config.Mode and then call this before
// the next read, keeping the denormalized key in sync.
func (db *DB) RecomputeSectionKeys() {
	for i := range db.Items {
		it := &db.Items[i]
		it.SectionKey = string(section.For(it.Done, it.Priority, db.Config.Mode))
	}
}

// SortItems orders db.Items by (section key, manual order desc), the same
// ordering the raw result set uses. Ties fall back to created-at then id
// so the order is deterministic even for malformed data.
func (db *DB) SortItems() {
	sort.SliceStable(db.Items, func(i, j int) bool {
		return compareItems(db.Items[i], db.Items[j]) < 0
	})
}

func compareItems(a, b model.Item) int {
	if a.SectionKey != b.SectionKey {
		if a.SectionKey < b.SectionKey {
			return -1
		}
		return 1
	}
	if a.ManualOrder != b.ManualOrder {
		if a.ManualOrder > b.ManualOrder {
			return -1
		}
		return 1
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		if a.CreatedAt.Before(b.CreatedAt) {
			return -1
		}
		return 1
	}
	if a.ID != b.ID {
		if a.ID < b.ID {
			return -1
		}
		return 1
	}
	return 0
}
