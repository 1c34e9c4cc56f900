package store

import (
	"encoding/json"
	"sort"
)

// SecretCount is the number of defined secrets; FoundSecrets is never shorter.
const SecretCount = 25

// GameState is the persisted progress record.
type GameState struct {
	Score            int    `json:"score"`
	Level            int    `json:"level"`
	FoundSecrets     []bool `json:"foundSecrets"`
	AutoClickerLevel int    `json:"autoClickerLevel"`
	PrestigeLevel    int    `json:"prestigeLevel"`
}

// DefaultState is the record of a brand new player.
func DefaultState() GameState {
	return GameState{
		Level:        1,
		FoundSecrets: make([]bool, SecretCount),
	}
}

// Repair brings a loaded record up to the current shape: the secrets array is
// padded to n (never truncated), the level is at least 1 and counters are not
// negative.
func (s *GameState) Repair(n int) {
	if len(s.FoundSecrets) < n {
		padded := make([]bool, n)
		copy(padded, s.FoundSecrets)
		s.FoundSecrets = padded
	}
	if s.Level < 1 {
		s.Level = 1
	}
	if s.Score < 0 {
		s.Score = 0
	}
	if s.AutoClickerLevel < 0 {
		s.AutoClickerLevel = 0
	}
	if s.PrestigeLevel < 0 {
		s.PrestigeLevel = 0
	}
}

// Clone returns a copy that shares no memory with s.
func (s GameState) Clone() GameState {
	s.FoundSecrets = append([]bool(nil), s.FoundSecrets...)
	return s
}

// FoundCount returns the number of unlocked secrets.
func (s GameState) FoundCount() int {
	n := 0
	for _, f := range s.FoundSecrets {
		if f {
			n++
		}
	}
	return n
}

// MaxHighScores is the leaderboard length.
const MaxHighScores = 5

// HighScore is one leaderboard entry.
type HighScore struct {
	User  string `json:"user"`
	Score int    `json:"score"`
}

// Submit records score for user. An existing entry is only raised, never
// lowered. The result is sorted by descending score and holds at most
// MaxHighScores entries.
func Submit(scores []HighScore, user string, score int) []HighScore {
	out := append([]HighScore(nil), scores...)
	if user == "" {
		return normalize(out)
	}
	for i := range out {
		if out[i].User == user {
			if score > out[i].Score {
				out[i].Score = score
			}
			return normalize(out)
		}
	}
	return normalize(append(out, HighScore{User: user, Score: score}))
}

// Rename moves every entry of from to to.
func Rename(scores []HighScore, from, to string) []HighScore {
	out := append([]HighScore(nil), scores...)
	for i := range out {
		if out[i].User == from {
			out[i].User = to
		}
	}
	return normalize(out)
}

// normalize keeps the best entry per user, sorts and truncates.
func normalize(scores []HighScore) []HighScore {
	best := make(map[string]int, len(scores))
	var users []string
	for _, s := range scores {
		prev, seen := best[s.User]
		if !seen {
			users = append(users, s.User)
			best[s.User] = s.Score
		} else if s.Score > prev {
			best[s.User] = s.Score
		}
	}

	out := make([]HighScore, 0, len(users))
	for _, u := range users {
		out = append(out, HighScore{User: u, Score: best[u]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > MaxHighScores {
		out = out[:MaxHighScores]
	}
	return out
}

// decodeHighScores keeps only well-formed entries with a user and a numeric score.
func decodeHighScores(data []byte) ([]HighScore, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	scores := make([]HighScore, 0, len(raw))
	for _, r := range raw {
		var entry struct {
			User  string `json:"user"`
			Score *int   `json:"score"`
		}
		if err := json.Unmarshal(r, &entry); err != nil {
			continue
		}
		if entry.User == "" || entry.Score == nil {
			continue
		}
		scores = append(scores, HighScore{User: entry.User, Score: *entry.Score})
	}
	return normalize(scores), nil
}
