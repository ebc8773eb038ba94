package game

import (
	"math/rand/v2"

	"github.com/lukee-d/friendify/internal/models"
)

// DefaultRounds bounds a game when the pool is large enough.
const DefaultRounds = 10

// SelectRounds samples min(n, len(pool)) entries uniformly at random without
// replacement, producing the fixed round sequence for one game instance.
//
// Fairness is the concern here, not security; math/rand is fine.
func SelectRounds(pool []models.RoundEntry, n int) []models.RoundEntry {
	if n <= 0 {
		n = DefaultRounds
	}
	if n > len(pool) {
		n = len(pool)
	}

	selected := make([]models.RoundEntry, 0, n)
	for _, i := range rand.Perm(len(pool))[:n] {
		selected = append(selected, pool[i])
	}

	return selected
}
