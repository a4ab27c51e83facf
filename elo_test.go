package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedScore(t *testing.T) {
	tests := []struct {
		name     string
		rating   int
		opponent float64
		expected float64
	}{{
		"even match",
		100,
		100,
		0.5,
	}, {
		"underdog by 400",
		100,
		500,
		1.0 / 11.0,
	}, {
		"favorite by 400",
		500,
		100,
		10.0 / 11.0,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.InDelta(t, test.expected, expectedScore(test.rating, test.opponent), 1e-9)
		})
	}
}

func TestProtection(t *testing.T) {
	tests := []struct {
		rating int
		bonus  float64
	}{
		{100, 34},
		{150, 34},
		{151, 21},
		{200, 21},
		{300, 13},
		{500, 8},
		{1000, 5},
		{1500, 3},
		{2000, 2},
		{2300, 1},
		{2500, 0},
		{2700, -1},
		{2950, -2},
	}

	for _, test := range tests {
		assert.Equal(t, test.bonus, protection(test.rating), "rating %d", test.rating)
	}
}

func TestUpdateRating(t *testing.T) {
	tests := []struct {
		name       string
		current    int
		result     outcome
		opponent   float64
		multiplier float64
		expected   int
	}{{
		"even win at the floor gains raw delta plus protection",
		100,
		won,
		100,
		1.0,
		150,
	}, {
		"even loss at the floor is absorbed by protection",
		100,
		lost,
		100,
		1.0,
		100,
	}, {
		"hopeless loss at the floor stays at the floor",
		100,
		lost,
		2000,
		1.0,
		100,
	}, {
		"favorite loses points on a loss",
		300,
		lost,
		100,
		1.0,
		289,
	}, {
		"even win in the taxed band",
		2950,
		won,
		2950,
		1.0,
		2964,
	}, {
		"close win scales the delta down",
		100,
		won,
		100,
		0.5,
		142,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			next, _ := updateRating(test.current, test.result, test.opponent, test.multiplier)
			assert.Equal(t, test.expected, next)
		})
	}
}

func TestUpdateRatingDeltas(t *testing.T) {
	next, change := updateRating(100, won, 100, 1.0)
	assert.Equal(t, 150, next)
	assert.InDelta(t, 50, change, 1e-9)

	next, change = updateRating(100, lost, 2000, 1.0)
	assert.Equal(t, ratingMin, next)
	assert.Zero(t, change)

	next, change = updateRating(300, lost, 100, 1.0)
	assert.Equal(t, 289, next)
	assert.InDelta(t, -11.31, change, 0.01)
}

// Every combination of inputs has to respect the rating bounds, and a loss
// can never move a rating up.
func TestUpdateRatingBounds(t *testing.T) {
	currents := []int{100, 125, 150, 250, 449, 850, 1234, 1999, 2468, 2900, 2999}
	opponents := []float64{100, 500, 1500, 2999}
	multipliers := []float64{0.5, 0.75, 1.0, 1.25, 1.5}

	for _, current := range currents {
		for _, opponent := range opponents {
			for _, multiplier := range multipliers {
				for _, result := range []outcome{won, lost} {
					next, change := updateRating(current, result, opponent, multiplier)
					assert.GreaterOrEqual(t, next, ratingMin)
					assert.LessOrEqual(t, next, ratingMax)
					if result == lost {
						assert.LessOrEqual(t, change, 0.0)
						assert.LessOrEqual(t, next, current)
					}
				}
			}
		}
	}
}

func TestParseWinType(t *testing.T) {
	tests := []struct {
		token      string
		multiplier float64
		ok         bool
	}{
		{"win", 1.0, true},
		{"smallwin", 0.75, true},
		{"closewin", 0.5, true},
		{"bigwin", 1.25, true},
		{"perfectwin", 1.5, true},
		{"titanium", 0, false},
		{"", 0, false},
	}

	for _, test := range tests {
		w, ok := parseWinType(test.token)
		assert.Equal(t, test.ok, ok, test.token)
		if ok {
			assert.Equal(t, test.multiplier, winMultipliers[w], test.token)
		}
	}
}
