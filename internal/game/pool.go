// package game implements the "guess whose song" party game: the shared track
// pool, round selection, lobby codes, and the round/score state machine.
package game

import (
	"github.com/lukee-d/friendify/internal/models"
)

// BuildPool merges the given snapshots into a deduplicated pool of entries, each
// annotated with the display names of every user whose snapshot contains it.
//
// Two tracks merge iff their title and artist strings are byte-identical; there
// is no fuzzy matching. Entries and owners keep encounter order: snapshots in
// the order given, tracks in stored snapshot order.
func BuildPool(snapshots []models.Snapshot) []models.RoundEntry {
	type key struct {
		title   string
		artists string
	}

	index := make(map[key]int)
	var pool []models.RoundEntry

	for _, snapshot := range snapshots {
		for _, track := range snapshot.Tracks {
			k := key{title: track.Name, artists: track.Artists}

			i, ok := index[k]
			if !ok {
				index[k] = len(pool)
				pool = append(pool, models.RoundEntry{Track: track, Owners: []string{snapshot.DisplayName}})
				continue
			}

			if !pool[i].HasOwner(snapshot.DisplayName) {
				pool[i].Owners = append(pool[i].Owners, snapshot.DisplayName)
			}
		}
	}

	return pool
}

// Candidates returns the union of owners across all entries, in encounter
// order. Used to render the guess-choice buttons: the full candidate set, not
// just the current round's owners, so rounds stay hard to guess.
func Candidates(entries []models.RoundEntry) []string {
	seen := make(map[string]bool)
	var names []string

	for _, entry := range entries {
		for _, owner := range entry.Owners {
			if !seen[owner] {
				seen[owner] = true
				names = append(names, owner)
			}
		}
	}

	return names
}
