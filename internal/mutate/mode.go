package mutate

import (
	"triage-cli/internal/model"
	"triage-cli/internal/store"
)

// SetMode switches the list mode and recomputes every item's section key,
// since mode is an input of the section derivation. Returns true when the
// mode actually changed.
func SetMode(db *store.DB, mode model.Mode) (bool, error) {
	if !mode.IsValid() {
		return false, ErrInvalidMode
	}
	if db.Config.Mode == mode {
		return false, nil
	}
	db.Config.Mode = mode
	db.RecomputeSectionKeys()
	return true, nil
}
