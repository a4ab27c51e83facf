package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// roster is one team's lineup. A team with no defense list plays everyone on
// offense.
type roster struct {
	Offense []string
	Defense []string
}

func (r roster) names() []string {
	return append(append([]string{}, r.Offense...), r.Defense...)
}

func (r roster) empty() bool {
	return len(r.Offense) == 0 && len(r.Defense) == 0
}

// matchRequest is the structured form of one recorded match: team 1 won with
// the given win type, team 2 lost.
type matchRequest struct {
	Team1 roster
	Team2 roster
	Type  winType
}

// role selects which rating a participant plays on.
type role int

const (
	offense role = iota
	defense
)

func (r *registry) averageRating(names []string, ro role) float64 {
	total := 0
	for _, name := range names {
		p := r.getOrCreate(name)
		if ro == offense {
			total += p.Offense
		} else {
			total += p.Defense
		}
	}
	return float64(total) / float64(len(names))
}

// references holds the opponent comparison ratings for one team: what its
// offense players face and what its defense players face.
type references struct {
	forOffense float64
	forDefense float64
}

// opponentReferences derives the reference ratings a team faces from the
// opposing roster. Offense faces the opposing defense average, defense faces
// the opposing offense average; a missing opposing role falls back to the
// other list.
func (r *registry) opponentReferences(opposing roster) references {
	var ref references
	if len(opposing.Defense) > 0 {
		ref.forOffense = r.averageRating(opposing.Defense, defense)
	} else {
		ref.forOffense = r.averageRating(opposing.Offense, offense)
	}
	if len(opposing.Offense) > 0 {
		ref.forDefense = r.averageRating(opposing.Offense, offense)
	} else {
		ref.forDefense = r.averageRating(opposing.Defense, defense)
	}
	return ref
}

const reportRule = "--------------------------------------------------------------------------------"

// processMatch records one match: resolves every participant, reports
// expected win rates, applies the rating update to each player, bumps the
// counters, and refreshes ranks. Team 1 members win, team 2 members lose.
func (r *registry) processMatch(req matchRequest) (string, error) {
	multiplier, ok := winMultipliers[req.Type]
	if !ok {
		return "", errors.Errorf("invalid win type %q", string(req.Type))
	}
	if req.Team1.empty() || req.Team2.empty() {
		return "", errors.New("both teams need at least one player")
	}

	for _, name := range append(req.Team1.names(), req.Team2.names()...) {
		r.getOrCreate(name)
	}

	refs1 := r.opponentReferences(req.Team2)
	refs2 := r.opponentReferences(req.Team1)

	var b strings.Builder
	fmt.Fprintln(&b, reportRule)
	fmt.Fprintln(&b, "Expected win rates:")

	expect := func(names []string, ro role, ref float64) []float64 {
		rates := make([]float64, 0, len(names))
		for _, name := range names {
			p := r.getOrCreate(name)
			rating := p.Offense
			label := "O"
			if ro == defense {
				rating = p.Defense
				label = "D"
			}
			rate := expectedScore(rating, ref) * 100
			rates = append(rates, rate)
			fmt.Fprintf(&b, "%s (%s): %.1f%%\n", p.Display, label, rate)
		}
		return rates
	}

	team1Rates := expect(req.Team1.Offense, offense, refs1.forOffense)
	team1Rates = append(team1Rates, expect(req.Team1.Defense, defense, refs1.forDefense)...)
	team2Rates := expect(req.Team2.Offense, offense, refs2.forOffense)
	team2Rates = append(team2Rates, expect(req.Team2.Defense, defense, refs2.forDefense)...)

	fmt.Fprintf(&b, "\n%s: %.1f%% vs %s: %.1f%%\n",
		r.teamLabel(req.Team1), mean(team1Rates),
		r.teamLabel(req.Team2), mean(team2Rates))
	fmt.Fprintln(&b, reportRule)

	apply := func(names []string, ro role, result outcome, ref float64) {
		for _, name := range names {
			p := r.getOrCreate(name)
			if ro == offense {
				next, change := updateRating(p.Offense, result, ref, multiplier)
				fmt.Fprintf(&b, "%s Offense: %d → %d (%+.1f)\n", p.Display, p.Offense, next, change)
				p.Offense = next
			} else {
				next, change := updateRating(p.Defense, result, ref, multiplier)
				fmt.Fprintf(&b, "%s Defense: %d → %d (%+.1f)\n", p.Display, p.Defense, next, change)
				p.Defense = next
			}
			p.Played++
			if result == won {
				p.Wins++
			}
		}
	}

	apply(req.Team1.Offense, offense, won, refs1.forOffense)
	apply(req.Team1.Defense, defense, won, refs1.forDefense)
	apply(req.Team2.Offense, offense, lost, refs2.forOffense)
	apply(req.Team2.Defense, defense, lost, refs2.forDefense)

	for _, name := range append(req.Team1.names(), req.Team2.names()...) {
		r.getOrCreate(name).refreshRanks()
	}

	return b.String(), nil
}

func (r *registry) teamLabel(t roster) string {
	names := make([]string, 0, len(t.Offense)+len(t.Defense))
	for _, name := range t.names() {
		names = append(names, r.getOrCreate(name).Display)
	}
	return strings.Join(names, " + ")
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range vals {
		total += v
	}
	return total / float64(len(vals))
}
