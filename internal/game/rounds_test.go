package game

import (
	"fmt"
	"testing"

	"github.com/lukee-d/friendify/internal/models"
)

func makePool(size int) []models.RoundEntry {
	pool := make([]models.RoundEntry, 0, size)
	for i := range size {
		pool = append(pool, models.RoundEntry{
			Track:  models.TrackInfo{Name: fmt.Sprintf("Song %d", i), Artists: "Artist"},
			Owners: []string{"Owner"},
		})
	}
	return pool
}

func TestSelectRounds(t *testing.T) {
	t.Run("Length No Duplicates Subset", func(t *testing.T) {
		for _, poolSize := range []int{0, 1, 5, 10, 25, 100} {
			t.Run(fmt.Sprintf("Pool Of %d", poolSize), func(t *testing.T) {
				pool := makePool(poolSize)
				selected := SelectRounds(pool, DefaultRounds)

				want := poolSize
				if want > DefaultRounds {
					want = DefaultRounds
				}
				if len(selected) != want {
					t.Fatalf("expected %d rounds, got %d", want, len(selected))
				}

				seen := make(map[string]bool)
				valid := make(map[string]bool)
				for _, entry := range pool {
					valid[entry.Track.Name] = true
				}

				for _, entry := range selected {
					if seen[entry.Track.Name] {
						t.Errorf("duplicate entry selected: %s", entry.Track.Name)
					}
					seen[entry.Track.Name] = true

					if !valid[entry.Track.Name] {
						t.Errorf("selected entry not drawn from pool: %s", entry.Track.Name)
					}
				}
			})
		}
	})

	t.Run("Small Pool Uses All Entries", func(t *testing.T) {
		pool := makePool(3)
		selected := SelectRounds(pool, DefaultRounds)

		if len(selected) != 3 {
			t.Fatalf("expected all 3 entries, got %d", len(selected))
		}

		seen := make(map[string]bool)
		for _, entry := range selected {
			seen[entry.Track.Name] = true
		}
		if len(seen) != 3 {
			t.Error("every entry should be used exactly once")
		}
	})

	t.Run("Non Positive N Falls Back To Default", func(t *testing.T) {
		pool := makePool(30)
		selected := SelectRounds(pool, 0)

		if len(selected) != DefaultRounds {
			t.Errorf("expected %d rounds, got %d", DefaultRounds, len(selected))
		}
	})

	t.Run("Eventually Varies Order", func(t *testing.T) {
		pool := makePool(20)

		first := SelectRounds(pool, 10)
		different := false
		for range 50 {
			next := SelectRounds(pool, 10)
			for i := range next {
				if next[i].Track.Name != first[i].Track.Name {
					different = true
					break
				}
			}
			if different {
				break
			}
		}

		if !different {
			t.Error("50 selections from a 20-entry pool should not all repeat the same order")
		}
	})
}
