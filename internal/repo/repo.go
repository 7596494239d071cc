// Package repo layers domain rules over the storage provider: validation
// before writes, cross-entity checks, streak derivation, and refresh
// notifications after every mutation.
package repo

import "habitkeep/internal/storage"

// Repos bundles the per-entity repositories over one storage provider. All
// repositories share a single Notifier so any mutation invalidates every
// subscriber.
type Repos struct {
	Habits      *Habits
	Categories  *Categories
	Completions *Completions
	Notifier    *Notifier
}

func New(store storage.Provider) *Repos {
	n := NewNotifier()
	return &Repos{
		Habits:      &Habits{store: store, notifier: n},
		Categories:  &Categories{store: store, notifier: n},
		Completions: &Completions{store: store, notifier: n},
		Notifier:    n,
	}
}
