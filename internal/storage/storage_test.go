package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gateways(t *testing.T) map[string]Gateway {
	dir := t.TempDir()
	return map[string]Gateway{
		"memory": NewMemoryStore(),
		"json":   NewJSONStore(filepath.Join(dir, "meditrack.json")),
		"diskv":  NewDiskvStore(filepath.Join(dir, "kv")),
	}
}

func TestGateway_Contract(t *testing.T) {
	for name, gw := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, gw.Init())
			defer gw.Close()

			_, ok, err := gw.Get("meditation-manual-plan")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, gw.Set("meditation-manual-plan", `{"2024-01-01":{"duration":20}}`))
			v, ok, err := gw.Get("meditation-manual-plan")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{"2024-01-01":{"duration":20}}`, v)

			require.NoError(t, gw.Set("meditation-manual-plan", "{}"))
			v, _, err = gw.Get("meditation-manual-plan")
			require.NoError(t, err)
			assert.Equal(t, "{}", v)

			require.NoError(t, gw.Remove("meditation-manual-plan"))
			_, ok, err = gw.Get("meditation-manual-plan")
			require.NoError(t, err)
			assert.False(t, ok)

			assert.NoError(t, gw.Remove("never-written"))
		})
	}
}

func TestGateway_EmptyValueIsPresent(t *testing.T) {
	for name, gw := range gateways(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, gw.Init())

			require.NoError(t, gw.Set("meditation-plan-text", ""))
			v, ok, err := gw.Get("meditation-plan-text")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "", v)
		})
	}
}

func TestJSONStore_LoadWithoutInit(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, s.Load(), ErrNotInitialized)

	_, _, err := s.Get("k")
	assert.ErrorIs(t, err, ErrNotLoaded)
}

func TestJSONStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meditrack.json")

	first := NewJSONStore(path)
	require.NoError(t, first.Init())
	require.NoError(t, first.Set("meditation-completions", `{"2024-02-01":true}`))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	second := NewJSONStore(path)
	require.NoError(t, second.Load())
	v, ok, err := second.Get("meditation-completions")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"2024-02-01":true}`, v)

	// Init on an existing file keeps its contents.
	third := NewJSONStore(path)
	require.NoError(t, third.Init())
	_, ok, err = third.Get("meditation-completions")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestJSONStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meditrack.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	err := NewJSONStore(path).Load()
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotInitialized)
}

func TestDiskvStore_LoadWithoutInit(t *testing.T) {
	s := NewDiskvStore(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, s.Load(), ErrNotInitialized)
}

func TestDiskvStore_LoadRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	assert.Error(t, NewDiskvStore(path).Load())
}

func TestDiskvStore_PersistsAcrossInstances(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "kv")

	first := NewDiskvStore(dir)
	require.NoError(t, first.Init())
	require.NoError(t, first.Set("meditation-plan-text", "date,duration\n2024-03-01,15"))

	_, err := os.Stat(filepath.Join(dir, "meditation-plan-text"))
	require.NoError(t, err)

	second := NewDiskvStore(dir)
	require.NoError(t, second.Load())
	v, ok, err := second.Get("meditation-plan-text")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "date,duration\n2024-03-01,15", v)
}
