package main

import (
	"math/rand"
	"strings"
)

// tier is one of the fixed rank categories. Tiers only ever move up; the two
// sentinels (hidden, exalted) sort with ultra and are never replaced by a
// numeric recomputation.
type tier int

const (
	tierNone tier = iota
	iron
	steel
	bronze
	copper
	silver
	gold
	plat
	jade
	emerald
	diamond
	master
	superMaster
	grandMaster
	ultra
	hiddenTier
	exaltedTier
)

var tierNames = map[tier]string{
	iron:        "iron",
	steel:       "steel",
	bronze:      "bronze",
	copper:      "copper",
	silver:      "silver",
	gold:        "gold",
	plat:        "plat",
	jade:        "jade",
	emerald:     "emerald",
	diamond:     "diamond",
	master:      "master",
	superMaster: "super-master",
	grandMaster: "grand-master",
	ultra:       "ultra",
	hiddenTier:  "lz",
	exaltedTier: "im",
}

var tierByName = func() map[string]tier {
	m := make(map[string]tier, len(tierNames))
	for t, n := range tierNames {
		m[n] = t
	}
	return m
}()

// Legacy one-letter tokens from older data files. Note "p" resolves to
// super-master, not plat, and bronze never had a letter; both quirks are kept
// for compatibility with existing files.
var tierByInitial = map[string]tier{
	"i": iron,
	"t": steel,
	"c": copper,
	"s": silver,
	"g": gold,
	"p": superMaster,
	"j": jade,
	"e": emerald,
	"d": diamond,
	"m": master,
	"r": grandMaster,
	"u": ultra,
}

func (t tier) String() string {
	if n, ok := tierNames[t]; ok {
		return n
	}
	return ""
}

func (t tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *tier) UnmarshalText(b []byte) error {
	parsed, ok := parseTier(string(b))
	if !ok {
		return errUnknownTier
	}
	*t = parsed
	return nil
}

type unknownTierError struct{}

func (unknownTierError) Error() string { return "unknown rank tier" }

var errUnknownTier = unknownTierError{}

func parseTier(s string) (tier, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if t, ok := tierByName[s]; ok {
		return t, true
	}
	if t, ok := tierByInitial[s]; ok {
		return t, true
	}
	return tierNone, false
}

func (t tier) sentinel() bool {
	return t == hiddenTier || t == exaltedTier
}

// order is the comparison rank of a tier. The sentinels share ultra's order
// but keep their own identity.
func (t tier) order() int {
	switch {
	case t.sentinel():
		return ultra.order()
	case t >= iron && t <= ultra:
		return int(t - iron)
	}
	return -1
}

// maxTier keeps a on ties, so an existing sentinel wins against ultra.
func maxTier(a, b tier) tier {
	if b.order() > a.order() {
		return b
	}
	return a
}

// rankThresholds maps ratings to tiers, highest first. Lookup takes the first
// tier whose threshold the rating reaches.
var rankThresholds = []struct {
	threshold int
	t         tier
}{
	{2999, ultra},
	{2900, grandMaster},
	{2666, superMaster},
	{2468, master},
	{2222, diamond},
	{1650, emerald},
	{1234, jade},
	{850, plat},
	{450, gold},
	{250, silver},
	{200, copper},
	{150, bronze},
	{125, steel},
	{99, iron},
}

func computedTier(rating int) tier {
	for _, r := range rankThresholds {
		if rating >= r.threshold {
			return r.t
		}
	}
	return iron
}

func validTierNames() []string {
	names := make([]string, 0, len(rankThresholds))
	for _, r := range rankThresholds {
		names = append(names, r.t.String())
	}
	return names
}

const obfuscatedLetters = "abcdefghijklmnopqrstuvwxyz"

// obfuscatedRank renders the hidden sentinel: a fresh scrambled token per
// call so hidden players never show a stable rank.
func obfuscatedRank() string {
	var b strings.Builder
	b.WriteByte('L')
	for i := 0; i < 4; i++ {
		b.WriteByte(obfuscatedLetters[rand.Intn(len(obfuscatedLetters))])
	}
	b.WriteByte('Z')
	for i := 0; i < 4; i++ {
		b.WriteByte(obfuscatedLetters[rand.Intn(len(obfuscatedLetters))])
	}
	return b.String()
}

func (t tier) display() string {
	switch t {
	case hiddenTier:
		return obfuscatedRank()
	case exaltedTier:
		return "importal"
	}
	return t.String()
}
