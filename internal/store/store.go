// Package store persists game progress, the username and the per-device
// leaderboard into a key-value backend.
package store

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Storage keys.
const (
	KeyUsername   = "username"
	KeyGameState  = "gameState"
	KeyHighScores = "highScores"
)

// Store reads and writes typed records on top of a KV.
type Store struct {
	kv  KV
	log *log.Logger
}

// New wraps kv. A nil logger discards.
func New(kv KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{kv: kv, log: logger}
}

// LoadState returns the saved progress, or the default record when nothing
// usable is stored. Repair always runs.
func (s *Store) LoadState() GameState {
	state := DefaultState()

	data, ok, err := s.kv.Get(KeyGameState)
	switch {
	case err != nil:
		s.log.Warn("read game state", "err", err)
	case !ok:
	default:
		var loaded GameState
		if err := json.Unmarshal(data, &loaded); err != nil {
			s.log.Warn("malformed game state, using defaults", "err", err)
		} else {
			state = loaded
		}
	}

	state.Repair(SecretCount)
	return state
}

// SaveState overwrites the stored progress.
func (s *Store) SaveState(state GameState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode game state: %w", err)
	}
	if err := s.kv.Set(KeyGameState, data); err != nil {
		return fmt.Errorf("save game state: %w", err)
	}
	return nil
}

// LoadHighScores returns the leaderboard, dropping malformed entries.
func (s *Store) LoadHighScores() []HighScore {
	data, ok, err := s.kv.Get(KeyHighScores)
	if err != nil {
		s.log.Warn("read high scores", "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	scores, err := decodeHighScores(data)
	if err != nil {
		s.log.Warn("malformed high scores, starting empty", "err", err)
		return nil
	}
	return scores
}

// SaveHighScores overwrites the leaderboard.
func (s *Store) SaveHighScores(scores []HighScore) error {
	if scores == nil {
		scores = []HighScore{}
	}
	data, err := json.Marshal(scores)
	if err != nil {
		return fmt.Errorf("encode high scores: %w", err)
	}
	if err := s.kv.Set(KeyHighScores, data); err != nil {
		return fmt.Errorf("save high scores: %w", err)
	}
	return nil
}

// Username returns the saved player name.
func (s *Store) Username() (string, bool) {
	data, ok, err := s.kv.Get(KeyUsername)
	if err != nil {
		s.log.Warn("read username", "err", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil || name == "" {
		return "", false
	}
	return name, true
}

// SetUsername stores the player name.
func (s *Store) SetUsername(name string) error {
	data, err := json.Marshal(name)
	if err != nil {
		return fmt.Errorf("encode username: %w", err)
	}
	if err := s.kv.Set(KeyUsername, data); err != nil {
		return fmt.Errorf("save username: %w", err)
	}
	return nil
}

// OpenDevice opens the record for device under dataDir. When the file cannot
// be opened the session runs on memory and nothing is saved.
func OpenDevice(dataDir, device string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	path := DevicePath(dataDir, device)
	kv, err := OpenFile(path)
	if err != nil {
		logger.Warn("progress will not be saved", "path", path, "err", err)
		return New(NewMemKV(), logger)
	}
	return New(kv, logger)
}
