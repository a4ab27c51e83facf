package main

import "math"

const deviation = 400
const kFactor = 32

const (
	ratingMin = 100
	ratingMax = 2999
)

type outcome int

const (
	lost outcome = iota
	won
)

type winType string

const (
	winNormal  winType = "win"
	winSmall   winType = "smallwin"
	winClose   winType = "closewin"
	winBig     winType = "bigwin"
	winPerfect winType = "perfectwin"
)

var winMultipliers = map[winType]float64{
	winNormal:  1.0,
	winSmall:   0.75,
	winClose:   0.5,
	winBig:     1.25,
	winPerfect: 1.5,
}

func parseWinType(s string) (winType, bool) {
	w := winType(s)
	_, ok := winMultipliers[w]
	return w, ok
}

// protectionBands maps a player's own rating to a flat adjustment added to
// every delta. Lower bands soften losses near the floor; the top bands tax
// established ratings. The first band whose upper bound covers the rating
// applies.
var protectionBands = []struct {
	upper int
	bonus float64
}{
	{150, 34},
	{200, 21},
	{400, 13},
	{850, 8},
	{1234, 5},
	{1650, 3},
	{2222, 2},
	{2468, 1},
	{2666, 0},
	{2900, -1},
}

func protection(rating int) float64 {
	for _, b := range protectionBands {
		if rating <= b.upper {
			return b.bonus
		}
	}
	return -2
}

// expectedScore is the probability of beating an opponent at the given
// reference rating.
func expectedScore(rating int, opponent float64) float64 {
	return 1 / (1 + math.Pow(10, (opponent-float64(rating))/deviation))
}

// updateRating applies one match result to a single rating and returns the
// new rating along with the unrounded delta. A loss can never gain points,
// and a rating already at the floor can't sink further.
func updateRating(current int, result outcome, opponent float64, multiplier float64) (int, float64) {
	score := 0.0
	if result == won {
		score = 1.0
	}

	change := multiplier * kFactor * (score - expectedScore(current, opponent))
	change += protection(current)

	if result == lost && change > 0 {
		change = 0
	}

	if change < 0 && current <= ratingMin {
		return ratingMin, 0
	}

	next := int(math.Round(float64(current) + change))
	if next > ratingMax {
		next = ratingMax
	}
	if next < ratingMin {
		next = ratingMin
	}

	return next, change
}
