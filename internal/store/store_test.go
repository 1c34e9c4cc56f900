package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStateDefaultsWhenAbsent(t *testing.T) {
	s := New(NewMemKV(), nil)
	state := s.LoadState()
	assert.Equal(t, 0, state.Score)
	assert.Equal(t, 1, state.Level)
	assert.Len(t, state.FoundSecrets, SecretCount)
	assert.Equal(t, 0, state.FoundCount())
}

func TestLoadStateRepairsSecretsLength(t *testing.T) {
	cases := map[string]struct {
		stored string
		want   int
	}{
		"absent array": {`{"score":5,"level":2}`, SecretCount},
		"empty array":  {`{"foundSecrets":[]}`, SecretCount},
		"base edition": {`{"foundSecrets":[true,false,true,false,false,false,false,false,false,false,false,false,false,false,false,false,false,false,false,true]}`, SecretCount},
		"longer kept":  {`{"foundSecrets":[` + repeat("false,", 29) + `true]}`, 30},
		"null array":   {`{"foundSecrets":null}`, SecretCount},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			kv := NewMemKV()
			require.NoError(t, kv.Set(KeyGameState, []byte(tc.stored)))
			state := New(kv, nil).LoadState()
			assert.Len(t, state.FoundSecrets, tc.want)
		})
	}
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}

func TestLoadStateKeepsProgressWhilePadding(t *testing.T) {
	kv := NewMemKV()
	require.NoError(t, kv.Set(KeyGameState, []byte(`{"score":120,"level":3,"foundSecrets":[true,false,true]}`)))
	state := New(kv, nil).LoadState()
	assert.Equal(t, 120, state.Score)
	assert.Equal(t, 3, state.Level)
	assert.True(t, state.FoundSecrets[0])
	assert.True(t, state.FoundSecrets[2])
	assert.Equal(t, 2, state.FoundCount())
	assert.Equal(t, 0, state.AutoClickerLevel)
	assert.Equal(t, 0, state.PrestigeLevel)
}

func TestLoadStateMalformedFallsBackToDefault(t *testing.T) {
	kv := NewMemKV()
	require.NoError(t, kv.Set(KeyGameState, []byte(`{"score":"lots"`)))
	state := New(kv, nil).LoadState()
	assert.Equal(t, DefaultState(), state)
}

func TestRepairClampsCounters(t *testing.T) {
	state := GameState{Score: -4, Level: 0, AutoClickerLevel: -1, PrestigeLevel: -2}
	state.Repair(SecretCount)
	assert.Equal(t, 0, state.Score)
	assert.Equal(t, 1, state.Level)
	assert.Equal(t, 0, state.AutoClickerLevel)
	assert.Equal(t, 0, state.PrestigeLevel)
}

func TestSaveStateRoundTrip(t *testing.T) {
	s := New(NewMemKV(), nil)
	want := DefaultState()
	want.Score = 340
	want.Level = 4
	want.AutoClickerLevel = 2
	want.FoundSecrets[9] = true
	require.NoError(t, s.SaveState(want))
	assert.Equal(t, want, s.LoadState())
}

func TestSaveStateUsesPersistedFieldNames(t *testing.T) {
	kv := NewMemKV()
	require.NoError(t, New(kv, nil).SaveState(DefaultState()))
	raw, ok, err := kv.Get(KeyGameState)
	require.NoError(t, err)
	require.True(t, ok)
	for _, field := range []string{`"score"`, `"level"`, `"foundSecrets"`, `"autoClickerLevel"`, `"prestigeLevel"`} {
		assert.Contains(t, string(raw), field)
	}
}

func TestUsername(t *testing.T) {
	s := New(NewMemKV(), nil)
	_, ok := s.Username()
	assert.False(t, ok)

	require.NoError(t, s.SetUsername("zed"))
	name, ok := s.Username()
	assert.True(t, ok)
	assert.Equal(t, "zed", name)
}

func TestLoadHighScoresFiltersInvalid(t *testing.T) {
	kv := NewMemKV()
	require.NoError(t, kv.Set(KeyHighScores, []byte(`[{"user":"a","score":10},{"user":"","score":99},{"user":"b"},null,{"user":"c","score":"x"},{"user":"d","score":30}]`)))
	scores := New(kv, nil).LoadHighScores()
	assert.Equal(t, []HighScore{{User: "d", Score: 30}, {User: "a", Score: 10}}, scores)
}

func TestLoadHighScoresMalformed(t *testing.T) {
	kv := NewMemKV()
	require.NoError(t, kv.Set(KeyHighScores, []byte(`{`)))
	assert.Empty(t, New(kv, nil).LoadHighScores())
}

func TestFileKVPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devices", "local.json")
	kv, err := OpenFile(path)
	require.NoError(t, err)

	s := New(kv, nil)
	state := DefaultState()
	state.Score = 70
	require.NoError(t, s.SaveState(state))
	require.NoError(t, s.SetUsername("reopen"))
	require.NoError(t, s.SaveHighScores([]HighScore{{User: "reopen", Score: 70}}))

	kv2, err := OpenFile(path)
	require.NoError(t, err)
	s2 := New(kv2, nil)
	assert.Equal(t, 70, s2.LoadState().Score)
	name, ok := s2.Username()
	assert.True(t, ok)
	assert.Equal(t, "reopen", name)
	assert.Equal(t, []HighScore{{User: "reopen", Score: 70}}, s2.LoadHighScores())
}

func TestFileKVMovesCorruptFileAside(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	kv, err := OpenFile(path)
	require.NoError(t, err)
	_, ok, err := kv.Get(KeyGameState)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.FileExists(t, path+".corrupt")
}

func TestFileKVRejectsInvalidJSON(t *testing.T) {
	kv, err := OpenFile(filepath.Join(t.TempDir(), "local.json"))
	require.NoError(t, err)
	assert.Error(t, kv.Set("k", []byte("{")))
}

func TestOpenExistingMissing(t *testing.T) {
	_, err := OpenExisting(filepath.Join(t.TempDir(), "nobody.json"))
	assert.ErrorIs(t, err, ErrDeviceNotFound)
}

func TestDevicePathStaysInsideDataDir(t *testing.T) {
	dir := "/data"
	assert.Equal(t, filepath.Join(dir, "devices", "alice.json"), DevicePath(dir, "alice"))
	assert.Equal(t, filepath.Join(dir, "devices", "%2E%2E%2Fetc%2Fpasswd.json"), DevicePath(dir, "../etc/passwd"))
	assert.Equal(t, filepath.Join(dir, "devices", "%2E%2E.json"), DevicePath(dir, ".."))
	assert.Equal(t, filepath.Join(dir, "devices", "%.json"), DevicePath(dir, ""))
	for _, d := range []string{"../etc/passwd", "..", "", "a/b", `a\b`} {
		assert.Equal(t, filepath.Join(dir, "devices"), filepath.Dir(DevicePath(dir, d)), d)
	}
}

func TestDevicePathKeepsNamesDistinct(t *testing.T) {
	dir := "/data"
	names := []string{"bob!", "bob?", "bob_", "bob.", "bob%21", "", "Zoë", "Zoe"}
	seen := make(map[string]string)
	for _, n := range names {
		p := DevicePath(dir, n)
		prev, dup := seen[p]
		assert.False(t, dup, "%q and %q share %s", prev, n, p)
		seen[p] = n
	}
}

func TestOpenExistingLeavesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := OpenExisting(path)
	assert.ErrorIs(t, err, ErrCorruptDevice)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "not json", string(data))
	assert.NoFileExists(t, path+".corrupt")
}

func TestOpenExistingReadsValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alice.json")
	kv, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("username", []byte(`"alice"`)))

	ro, err := OpenExisting(path)
	require.NoError(t, err)
	v, ok, err := ro.Get("username")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `"alice"`, string(v))
}

func TestOpenDeviceSharesFileBetweenSessions(t *testing.T) {
	dir := t.TempDir()
	a := OpenDevice(dir, "alice", nil)
	require.NoError(t, a.SetUsername("alice"))

	b := OpenDevice(dir, "alice", nil)
	name, ok := b.Username()
	require.True(t, ok)
	assert.Equal(t, "alice", name)

	_, ok = OpenDevice(dir, "bob", nil).Username()
	assert.False(t, ok)
}

func TestOpenDeviceFallsBackToMemory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "devices")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))

	s := OpenDevice(dir, "alice", nil)
	require.NoError(t, s.SetUsername("alice"))
	name, _ := s.Username()
	assert.Equal(t, "alice", name)
}
