package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempStore(t *testing.T, contents string) (store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "elo.txt")
	if contents != "" {
		require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	}
	fs, err := newFileStore(path)
	require.NoError(t, err)
	return fs, path
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	fs, _ := tempStore(t, "")

	players, err := fs.load()
	assert.NoError(t, err)
	assert.Empty(t, players)
}

func TestFileStoreLoad(t *testing.T) {
	fs, _ := tempStore(t, strings.Join([]string{
		"Alice, 500, 400, 10, 50.",
		"this line is garbage",
		"Bob, 300, xyz, 5, 20.",
		"Carol, 200, 200, 10, 50, 200, gold, silver, copper.",
		"Short, 100.",
		"",
	}, "\n"))

	players, err := fs.load()
	require.NoError(t, err)
	require.Len(t, players, 2)

	alice := players[0]
	assert.Equal(t, "Alice", alice.Display)
	assert.Equal(t, 500, alice.Offense)
	assert.Equal(t, 400, alice.Defense)
	assert.Equal(t, 10, alice.Played)
	assert.Equal(t, 5, alice.Wins)
	assert.Equal(t, 450, alice.Avg)
	// no rank tokens in the line: left for the registry to recompute
	assert.Equal(t, tierNone, alice.RankO)
	assert.Equal(t, tierNone, alice.RankD)
	assert.Equal(t, tierNone, alice.RankA)

	carol := players[1]
	// rank tokens are stored defense, offense, average
	assert.Equal(t, gold, carol.RankD)
	assert.Equal(t, silver, carol.RankO)
	assert.Equal(t, copper, carol.RankA)
}

func TestLoadRegistryRecomputesMissingRanks(t *testing.T) {
	fs, _ := tempStore(t, strings.Join([]string{
		"Ann, 500, 120, 4, 25, 310, titanium, gold, mystery.",
		"Ben, 500, 400, 10, 50.",
	}, "\n"))

	reg, err := loadRegistry(fs)
	require.NoError(t, err)

	ann, ok := reg.get("ann")
	require.True(t, ok)
	// unknown tokens fall back to the tier the rating implies
	assert.Equal(t, iron, ann.RankD)
	assert.Equal(t, gold, ann.RankO)
	assert.Equal(t, silver, ann.RankA)
	assert.Equal(t, 1, ann.Wins)

	ben, ok := reg.get("ben")
	require.True(t, ok)
	assert.Equal(t, gold, ben.RankO)
	assert.Equal(t, silver, ben.RankD)
	assert.Equal(t, gold, ben.RankA)
}

func TestLoadRegistryMergesDuplicates(t *testing.T) {
	fs, _ := tempStore(t, strings.Join([]string{
		"John Smith, 200, 200, 10, 50.",
		"johnsmith, 300, 300, 5, 0.",
	}, "\n"))

	reg, err := loadRegistry(fs)
	require.NoError(t, err)
	assert.Len(t, reg.players, 1)

	merged, ok := reg.get("johnsmith")
	require.True(t, ok)
	assert.Equal(t, "John Smith", merged.Display)
	assert.Equal(t, 15, merged.Played)
	assert.Equal(t, 233, merged.Offense)
	assert.Equal(t, 5, merged.Wins)
}

func TestFileStoreSave(t *testing.T) {
	fs, path := tempStore(t, "")

	reg := newRegistry(nil)
	low := reg.getOrCreate("Zed")
	low.Offense, low.Defense, low.Played, low.Wins = 150, 150, 4, 1
	high := reg.getOrCreate("Amy")
	high.Offense, high.Defense, high.Played, high.Wins = 500, 500, 10, 10

	require.NoError(t, fs.save(reg.snapshot()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	// descending average first, win percent recomputed, canonical tokens
	assert.Equal(t, "Amy, 500, 500, 10, 100, 500, gold, gold, gold.", lines[0])
	assert.Equal(t, "Zed, 150, 150, 4, 25, 150, bronze, bronze, bronze.", lines[1])

	// a saved snapshot loads back unchanged
	players, err := fs.load()
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Amy", players[0].Display)
	assert.Equal(t, 10, players[0].Wins)
	assert.Equal(t, gold, players[0].RankO)
}

func TestLoadRegistryAppliesHiddenPredicate(t *testing.T) {
	fs, _ := tempStore(t, "Zhong, 500, 500, 2, 100, 500, gold, gold, gold.\n")

	reg, err := loadRegistry(fs)
	require.NoError(t, err)

	p, ok := reg.get("zhong")
	require.True(t, ok)
	assert.Equal(t, hiddenTier, p.RankO)
	assert.Equal(t, hiddenTier, p.RankD)
	assert.Equal(t, hiddenTier, p.RankA)
	assert.Regexp(t, `^L[a-z]{4}Z[a-z]{4}$`, p.overallRank())
}
