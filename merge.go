package main

import "math"

// mergeSource is the record being folded into a destination. Rank fields may
// be tierNone, in which case the merged tier is recomputed from the merged
// rating.
type mergeSource struct {
	Offense int
	Defense int
	Played  int
	Wins    int
	RankO   tier
	RankD   tier
	RankA   tier
}

func weighted(destRating, destGames, srcRating, srcGames int) int {
	total := destGames + srcGames
	if total <= 0 {
		return srcRating
	}
	return int(math.Round(float64(destRating*destGames+srcRating*srcGames) / float64(total)))
}

func chooseRank(old, proposed tier) tier {
	if proposed.order() > old.order() {
		return proposed
	}
	return old
}

// merge folds src into the record at destKey: games-weighted ratings, summed
// counters, and the higher tier per category. The destination keeps its
// display name and key. Callers discard the source identity afterwards.
func (r *registry) merge(destKey string, src mergeSource) {
	old, ok := r.players[destKey]
	if !ok {
		return
	}

	newOff := weighted(old.Offense, old.Played, src.Offense, src.Played)
	newDef := weighted(old.Defense, old.Played, src.Defense, src.Played)
	newAvg := int(math.Round(float64(newOff+newDef) / 2))

	rankO := src.RankO
	if rankO == tierNone {
		rankO = computedTier(newOff)
	}
	rankD := src.RankD
	if rankD == tierNone {
		rankD = computedTier(newDef)
	}
	rankA := src.RankA
	if rankA == tierNone {
		rankA = computedTier(newAvg)
	}

	r.players[destKey] = &player{
		Display: old.Display,
		Offense: newOff,
		Defense: newDef,
		Played:  old.Played + src.Played,
		Wins:    old.Wins + src.Wins,
		Avg:     newAvg,
		RankO:   chooseRank(old.RankO, rankO),
		RankD:   chooseRank(old.RankD, rankD),
		RankA:   chooseRank(old.RankA, rankA),
	}
}

// combine merges the record named src into the one named dest and removes
// src. Both must already exist.
func (r *registry) combine(src, dest string) error {
	srcKey := canonicalize(src)
	destKey := canonicalize(dest)

	from, ok := r.players[srcKey]
	if !ok {
		return playerNotFoundError{name: src}
	}
	if _, ok := r.players[destKey]; !ok {
		return playerNotFoundError{name: dest}
	}

	r.merge(destKey, mergeSource{
		Offense: from.Offense,
		Defense: from.Defense,
		Played:  from.Played,
		Wins:    from.Wins,
		RankO:   tierNone,
		RankD:   tierNone,
		RankA:   tierNone,
	})
	r.remove(srcKey)
	return nil
}

type playerNotFoundError struct{ name string }

func (e playerNotFoundError) Error() string { return "player '" + e.name + "' not found" }
