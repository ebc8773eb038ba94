package game

import (
	"errors"
	"testing"

	"github.com/lukee-d/friendify/internal/models"
	"github.com/lukee-d/friendify/internal/shared"
)

func twoRoundState() *models.GameState {
	rounds := []models.RoundEntry{
		{Track: models.TrackInfo{Name: "Song A", Artists: "Artist X"}, Owners: []string{"Alice"}},
		{Track: models.TrackInfo{Name: "Song B", Artists: "Artist Y"}, Owners: []string{"Bob", "Alice"}},
	}
	members := []models.Membership{
		{UserID: "user1", DisplayName: "Alice"},
		{UserID: "user2", DisplayName: "Bob"},
	}
	return NewGameState(rounds, members)
}

func TestNewGameState(t *testing.T) {
	state := twoRoundState()

	if state.Round != 0 {
		t.Errorf("expected round 0, got %d", state.Round)
	}
	if len(state.Tracks) != 2 {
		t.Errorf("expected 2 rounds, got %d", len(state.Tracks))
	}
	if len(state.Scores) != 2 {
		t.Errorf("expected a zero score per member, got %v", state.Scores)
	}
	for userID, points := range state.Scores {
		if points != 0 {
			t.Errorf("expected zero initial score for %s, got %d", userID, points)
		}
	}
	if state.Finished() {
		t.Error("fresh state should not be finished")
	}
}

func TestCurrentRound(t *testing.T) {
	t.Run("Returns Round Entry", func(t *testing.T) {
		state := twoRoundState()

		entry, err := CurrentRound(state)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if entry.Track.Name != "Song A" {
			t.Errorf("expected Song A, got %s", entry.Track.Name)
		}
	})

	t.Run("Finished State", func(t *testing.T) {
		state := twoRoundState()
		state.Round = len(state.Tracks)

		_, err := CurrentRound(state)
		if !errors.Is(err, shared.ErrGameFinished) {
			t.Errorf("expected ErrGameFinished, got %v", err)
		}
	})

	t.Run("Nil State", func(t *testing.T) {
		_, err := CurrentRound(nil)
		if !errors.Is(err, shared.ErrGameNotStarted) {
			t.Errorf("expected ErrGameNotStarted, got %v", err)
		}
	})
}

func TestApplyGuess(t *testing.T) {
	t.Run("Correct Guess Scores And Advances", func(t *testing.T) {
		state := twoRoundState()

		verdict, err := ApplyGuess(state, "user2", "Alice", 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if !verdict.Correct {
			t.Error("guessing the true owner should be correct")
		}
		if state.Round != 1 {
			t.Errorf("round should advance by exactly 1, got %d", state.Round)
		}
		if state.Scores["user2"] != 1 {
			t.Errorf("guesser score should increment by exactly 1, got %d", state.Scores["user2"])
		}
		if state.Scores["user1"] != 0 {
			t.Errorf("other scores should be unchanged, got %d", state.Scores["user1"])
		}
	})

	t.Run("Incorrect Guess Advances Without Scoring", func(t *testing.T) {
		state := twoRoundState()

		verdict, err := ApplyGuess(state, "user2", "Carl", 0)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if verdict.Correct {
			t.Error("guessing a non-owner should be incorrect")
		}
		if len(verdict.Owners) != 1 || verdict.Owners[0] != "Alice" {
			t.Errorf("verdict should carry the true owner set, got %v", verdict.Owners)
		}
		if state.Round != 1 {
			t.Errorf("round should advance even on a miss, got %d", state.Round)
		}
		if state.Scores["user2"] != 0 {
			t.Errorf("score should be unchanged on a miss, got %d", state.Scores["user2"])
		}
	})

	t.Run("Owners Come From State Not Input", func(t *testing.T) {
		state := twoRoundState()

		// Round 1's owners include Bob and Alice
		state.Round = 1
		verdict, err := ApplyGuess(state, "user1", "Alice", 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !verdict.Correct {
			t.Error("shared track should credit any of its owners")
		}
	})

	t.Run("Stale Round Rejected", func(t *testing.T) {
		state := twoRoundState()

		if _, err := ApplyGuess(state, "user1", "Alice", 0); err != nil {
			t.Fatalf("first guess failed: %v", err)
		}

		// A second member still looking at round 0 loses the race
		_, err := ApplyGuess(state, "user2", "Alice", 0)
		if !errors.Is(err, shared.ErrStaleRound) {
			t.Errorf("expected ErrStaleRound, got %v", err)
		}
		if state.Round != 1 {
			t.Errorf("stale guess must not advance the round, got %d", state.Round)
		}
		if state.Scores["user2"] != 0 {
			t.Error("stale guess must not score")
		}
	})

	t.Run("Finished Game Rejected", func(t *testing.T) {
		state := twoRoundState()
		state.Round = len(state.Tracks)

		_, err := ApplyGuess(state, "user1", "Alice", state.Round)
		if !errors.Is(err, shared.ErrGameFinished) {
			t.Errorf("expected ErrGameFinished, got %v", err)
		}
	})

	t.Run("Full Game Scenario", func(t *testing.T) {
		// Pool has A(owners=[Alice]) and B(owners=[Bob,Alice]); two rounds.
		state := twoRoundState()

		correct := map[string]int{}
		for !state.Finished() {
			entry, err := CurrentRound(state)
			if err != nil {
				t.Fatalf("current round failed: %v", err)
			}

			guess := "Carl"
			guesser := "user2"
			if entry.Track.Name == "Song B" {
				// Alice is among Song B's owners
				guess = "Alice"
			}

			verdict, err := ApplyGuess(state, guesser, guess, state.Round)
			if err != nil {
				t.Fatalf("guess failed: %v", err)
			}
			if verdict.Correct {
				correct[guesser]++
			}
		}

		if state.Scores["user2"] != correct["user2"] {
			t.Errorf("scoreboard should sum to correct guesses: got %d, want %d", state.Scores["user2"], correct["user2"])
		}
		if correct["user2"] != 1 {
			t.Errorf("expected exactly one correct guess in scenario, got %d", correct["user2"])
		}
	})
}

func TestScoreboard(t *testing.T) {
	t.Run("Includes Non Guessers At Zero", func(t *testing.T) {
		state := twoRoundState()
		state.Scores["user1"] = 2

		members := []models.Membership{
			{UserID: "user1", DisplayName: "Alice"},
			{UserID: "user2", DisplayName: "Bob"},
			{UserID: "user3", DisplayName: "Carl"},
		}

		scores := Scoreboard(state, members)

		if len(scores) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(scores))
		}
		if scores[0].DisplayName != "Alice" || scores[0].Points != 2 {
			t.Errorf("expected Alice first with 2 points, got %+v", scores[0])
		}

		for _, row := range scores[1:] {
			if row.Points != 0 {
				t.Errorf("expected zero points for %s, got %d", row.DisplayName, row.Points)
			}
		}
	})

	t.Run("Nil State Yields Zeroes", func(t *testing.T) {
		members := []models.Membership{{UserID: "user1", DisplayName: "Alice"}}

		scores := Scoreboard(nil, members)
		if len(scores) != 1 || scores[0].Points != 0 {
			t.Errorf("expected one zero row, got %v", scores)
		}
	})
}
