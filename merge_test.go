package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeWeightsByGamesPlayed(t *testing.T) {
	reg := newRegistry(nil)
	dest := reg.getOrCreate("John Smith")
	dest.Offense, dest.Defense, dest.Played, dest.Wins = 200, 200, 10, 5

	reg.merge("johnsmith", mergeSource{Offense: 300, Defense: 300, Played: 5, Wins: 0})

	merged, ok := reg.get("johnsmith")
	assert.True(t, ok)
	assert.Equal(t, "John Smith", merged.Display)
	assert.Equal(t, 15, merged.Played)
	assert.Equal(t, 5, merged.Wins)
	assert.Equal(t, 233, merged.Offense)
	assert.Equal(t, 233, merged.Defense)
	assert.Equal(t, 233, merged.Avg)
}

func TestMergeWithNoGamesKeepsSourceRatings(t *testing.T) {
	reg := newRegistry(nil)
	dest := reg.getOrCreate("Ann")
	dest.Offense, dest.Defense = 400, 300

	reg.merge("ann", mergeSource{Offense: 250, Defense: 220})

	merged, _ := reg.get("ann")
	assert.Equal(t, 250, merged.Offense)
	assert.Equal(t, 220, merged.Defense)
	assert.Zero(t, merged.Played)
}

func TestMergeKeepsHigherRanks(t *testing.T) {
	reg := newRegistry(nil)
	dest := reg.getOrCreate("Ann")
	dest.Offense, dest.Played = 120, 3
	dest.RankO = gold

	// source rating implies a low tier; the earned gold survives
	reg.merge("ann", mergeSource{Offense: 120, Defense: 100, Played: 3, RankO: tierNone, RankD: tierNone, RankA: tierNone})
	merged, _ := reg.get("ann")
	assert.Equal(t, gold, merged.RankO)

	// an explicit higher source tier wins
	reg.merge("ann", mergeSource{Offense: 120, Defense: 100, Played: 3, RankO: diamond, RankD: tierNone, RankA: tierNone})
	merged, _ = reg.get("ann")
	assert.Equal(t, diamond, merged.RankO)
}

func TestCombine(t *testing.T) {
	reg := newRegistry(nil)
	bob := reg.getOrCreate("Bob")
	bob.Offense, bob.Defense = 150, 150
	bobby := reg.getOrCreate("Bobby")
	bobby.Offense, bobby.Defense, bobby.Played, bobby.Wins = 200, 200, 4, 2

	assert.NoError(t, reg.combine("bob", "bobby"))

	_, ok := reg.get("bob")
	assert.False(t, ok)
	merged, ok := reg.get("bobby")
	assert.True(t, ok)
	assert.Equal(t, "Bobby", merged.Display)
	// bob had no games, so his ratings carry no weight
	assert.Equal(t, 200, merged.Offense)
	assert.Equal(t, 4, merged.Played)
	assert.Equal(t, 2, merged.Wins)

	err := reg.combine("bob", "bobby")
	assert.EqualError(t, err, "player 'bob' not found")
}

func TestCombineUnknownDestination(t *testing.T) {
	reg := newRegistry(nil)
	reg.getOrCreate("Bob")

	err := reg.combine("bob", "nobody")
	assert.EqualError(t, err, "player 'nobody' not found")
	_, ok := reg.get("bob")
	assert.True(t, ok)
}

func TestAddLoadedMergesDuplicateKeys(t *testing.T) {
	reg := newRegistry(nil)
	reg.addLoaded(player{Display: "John Smith", Offense: 200, Defense: 200, Played: 10, Wins: 5, RankO: copper, RankD: copper, RankA: copper})
	reg.addLoaded(player{Display: "johnsmith", Offense: 300, Defense: 300, Played: 5, RankO: silver, RankD: silver, RankA: silver})

	assert.Len(t, reg.players, 1)
	merged, _ := reg.get("johnsmith")
	assert.Equal(t, "John Smith", merged.Display)
	assert.Equal(t, 233, merged.Offense)
	assert.Equal(t, 15, merged.Played)
	assert.Equal(t, 5, merged.Wins)
	assert.Equal(t, silver, merged.RankO)
}
