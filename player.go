package main

import (
	"math"
	"sort"
	"strings"
)

// player is one canonical identity on the board. Rating fields stay inside
// [ratingMin, ratingMax]; the three rank fields never move down their order.
type player struct {
	Display string `json:"display"`
	Offense int    `json:"offense"`
	Defense int    `json:"defense"`
	Played  int    `json:"played"`
	Wins    int    `json:"wins"`
	Avg     int    `json:"avg"`
	RankO   tier   `json:"rank_o"`
	RankD   tier   `json:"rank_d"`
	RankA   tier   `json:"rank_a"`
}

// canonicalize folds a display name down to the identity key: lowercase,
// alphanumeric only. "John Smith" and "johnsmith" are the same player.
func canonicalize(name string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(name) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func (p *player) key() string {
	return canonicalize(p.Display)
}

func (p *player) updateAvg() {
	p.Avg = int(math.Round(float64(p.Offense+p.Defense) / 2))
}

func (p *player) winRate() int {
	if p.Played <= 0 {
		return 0
	}
	return int(math.Round(float64(p.Wins) / float64(p.Played) * 100))
}

// refreshRanks lifts each rank category to the tier implied by its current
// rating. Ranks never regress, and sentinels are permanent overrides.
func (p *player) refreshRanks() {
	p.updateAvg()
	for _, c := range []struct {
		field    *tier
		computed tier
	}{
		{&p.RankO, computedTier(p.Offense)},
		{&p.RankD, computedTier(p.Defense)},
		{&p.RankA, computedTier(p.Avg)},
	} {
		if c.field.sentinel() {
			continue
		}
		*c.field = maxTier(*c.field, c.computed)
	}
}

// overallRank is the display form of the player's best category. Any
// sentinel hides the whole player behind an obfuscated token.
func (p *player) overallRank() string {
	best := maxTier(maxTier(p.RankO, p.RankD), p.RankA)
	if p.RankO.sentinel() || p.RankD.sentinel() || p.RankA.sentinel() {
		return obfuscatedRank()
	}
	return best.display()
}

// rankIndicator marks which side carries the displayed rank.
func (p *player) rankIndicator() string {
	switch {
	case p.RankO.order() > p.RankD.order():
		return "(o)"
	case p.RankD.order() > p.RankO.order():
		return "(d)"
	}
	return "(a)"
}

// bestOrdinaryRank is the highest non-sentinel tier, used by rank filters.
// Returns tierNone when every category is a sentinel.
func (p *player) bestOrdinaryRank() tier {
	best := tierNone
	for _, t := range []tier{p.RankO, p.RankD, p.RankA} {
		if t.sentinel() {
			continue
		}
		best = maxTier(best, t)
	}
	return best
}

// registry owns the canonical-key to player mapping. The hidden predicate is
// evaluated once at creation; matching identities start with sentinel ranks.
type registry struct {
	players map[string]*player
	hidden  func(key string) bool
}

func newRegistry(hidden func(string) bool) *registry {
	if hidden == nil {
		hidden = func(string) bool { return false }
	}
	return &registry{players: make(map[string]*player), hidden: hidden}
}

func (r *registry) get(name string) (*player, bool) {
	p, ok := r.players[canonicalize(name)]
	return p, ok
}

func (r *registry) getOrCreate(name string) *player {
	key := canonicalize(name)
	if p, ok := r.players[key]; ok {
		return p
	}

	start := computedTier(ratingMin)
	p := &player{
		Display: name,
		Offense: ratingMin,
		Defense: ratingMin,
		Avg:     ratingMin,
		RankO:   start,
		RankD:   start,
		RankA:   start,
	}
	if r.hidden(key) {
		p.RankO, p.RankD, p.RankA = hiddenTier, hiddenTier, hiddenTier
	}
	r.players[key] = p
	return p
}

// addLoaded inserts one persisted record, merging it into an existing record
// when its key collides with one already loaded.
func (r *registry) addLoaded(p player) {
	key := p.key()
	if _, ok := r.players[key]; ok {
		r.merge(key, mergeSource{
			Offense: p.Offense,
			Defense: p.Defense,
			Played:  p.Played,
			Wins:    p.Wins,
			RankO:   p.RankO,
			RankD:   p.RankD,
			RankA:   p.RankA,
		})
		return
	}

	rec := p
	if rec.RankO == tierNone {
		rec.RankO = computedTier(rec.Offense)
	}
	if rec.RankD == tierNone {
		rec.RankD = computedTier(rec.Defense)
	}
	if rec.RankA == tierNone {
		rec.RankA = computedTier(rec.Avg)
	}
	if r.hidden(key) {
		rec.RankO, rec.RankD, rec.RankA = hiddenTier, hiddenTier, hiddenTier
	}
	r.players[key] = &rec
}

func (r *registry) remove(key string) {
	delete(r.players, key)
}

func (r *registry) empty() bool {
	return len(r.players) == 0
}

// byBoard sorts players for display and persistence: best average first,
// then display name.
func byBoard(players []player) {
	sort.Slice(players, func(i, j int) bool {
		if players[i].Avg != players[j].Avg {
			return players[i].Avg > players[j].Avg
		}
		return players[i].Display < players[j].Display
	})
}

// snapshot refreshes derived fields on every record and returns the full
// board in persistence order.
func (r *registry) snapshot() []player {
	out := make([]player, 0, len(r.players))
	for _, p := range r.players {
		p.refreshRanks()
		out = append(out, *p)
	}
	byBoard(out)
	return out
}
