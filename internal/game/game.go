package game

import (
	"sort"

	"github.com/lukee-d/friendify/internal/models"
	"github.com/lukee-d/friendify/internal/shared"
)

// Verdict reports the outcome of one guess.
type Verdict struct {
	Correct bool
	Track   models.TrackInfo
	Owners  []string // the round's true owner set
}

// Score is one scoreboard row.
type Score struct {
	DisplayName string
	Points      int
}

// NewGameState builds the initial state for a lobby game: the selected round
// sequence, round index 0, and a zero score for every member.
func NewGameState(rounds []models.RoundEntry, members []models.Membership) *models.GameState {
	scores := make(map[string]int, len(members))
	for _, member := range members {
		scores[member.UserID] = 0
	}

	return &models.GameState{
		Tracks: rounds,
		Round:  0,
		Scores: scores,
	}
}

// CurrentRound returns the entry for the state's round index, or
// [shared.ErrGameFinished] once the index has moved past the last track.
func CurrentRound(state *models.GameState) (*models.RoundEntry, error) {
	if state == nil {
		return nil, shared.ErrGameNotStarted
	}
	if state.Finished() {
		return nil, shared.ErrGameFinished
	}

	entry := state.Tracks[state.Round]
	return &entry, nil
}

// ApplyGuess scores a guess against the state's own record of the current
// round and advances the round index.
//
// The true owner set always comes from state.Tracks[state.Round]; nothing the
// client submits can change it. round is the index the guesser saw: if the
// state has already moved on (a concurrent guess won the round), the guess is
// rejected with [shared.ErrStaleRound] and the state is left untouched. The
// round index advances whether or not the guess was correct.
func ApplyGuess(state *models.GameState, userID, guessedName string, round int) (*Verdict, error) {
	if state == nil {
		return nil, shared.ErrGameNotStarted
	}
	if state.Finished() {
		return nil, shared.ErrGameFinished
	}
	if round != state.Round {
		return nil, shared.ErrStaleRound
	}

	entry := state.Tracks[state.Round]
	verdict := &Verdict{
		Correct: entry.HasOwner(guessedName),
		Track:   entry.Track,
		Owners:  entry.Owners,
	}

	if verdict.Correct {
		if state.Scores == nil {
			state.Scores = make(map[string]int)
		}
		state.Scores[userID]++
	}

	state.Round++

	return verdict, nil
}

// Scoreboard renders the final scores, one row per member in points order.
// Members who never guessed correctly appear with zero points.
func Scoreboard(state *models.GameState, members []models.Membership) []Score {
	scores := make([]Score, 0, len(members))
	seen := make(map[string]bool, len(members))

	for _, member := range members {
		points := 0
		if state != nil {
			points = state.Scores[member.UserID]
		}
		scores = append(scores, Score{DisplayName: member.DisplayName, Points: points})
		seen[member.UserID] = true
	}

	// Scores for users no longer in the member list (shouldn't happen, but the
	// blob is the source of truth) still show up.
	if state != nil {
		for userID, points := range state.Scores {
			if !seen[userID] {
				scores = append(scores, Score{DisplayName: userID, Points: points})
			}
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Points > scores[j].Points
	})

	return scores
}
