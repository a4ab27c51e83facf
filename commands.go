package main

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type command string

const (
	helpCommand    command = "help"
	ppCommand              = "pp"
	bestCommand            = "best"
	nameCommand            = "name"
	combineCommand         = "combine"
	matchCommand           = "match"
)

type commands map[command]string

var cmds = commands{
	helpCommand:    "a list of available commands",
	ppCommand:      "print the board, optionally filtered by rank (pp gold)",
	bestCommand:    "the best player in each category",
	nameCommand:    "every player in alphabetical order",
	combineCommand: "merge two records (combine a to b)",
	matchCommand:   "record a match: team1 <wintype> team2 (offense ; defense)",
}

func (c commands) Print() string {
	out := "Available commands\n"
	for k, v := range c {
		out += fmt.Sprintf("%q - %v\n", k, v)
	}

	return out
}

// checkMessage classifies one line of input. Anything that isn't a known
// command word is attempted as a match command.
func checkMessage(text string) command {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return matchCommand
	}
	switch command(fields[0]) {
	case helpCommand, ppCommand, bestCommand, nameCommand, combineCommand:
		return command(fields[0])
	}

	return matchCommand
}

// runCommand dispatches one line of input against the registry and returns
// the reply along with whether state was mutated.
func runCommand(reg *registry, text string) (string, bool) {
	switch checkMessage(text) {
	case helpCommand:
		return cmds.Print(), false
	case ppCommand:
		fields := strings.Fields(text)
		filter := ""
		if len(fields) > 1 {
			filter = strings.ToLower(fields[1])
		}
		return printPlayers(reg, filter), false
	case bestCommand:
		return bestPlayers(reg), false
	case nameCommand:
		return listNames(reg), false
	case combineCommand:
		return combinePlayers(reg, text)
	}

	return recordMatch(reg, text)
}

const noPlayerData = "No player data available."

var rankLegend = strings.Join([]string{
	"rank thresholds (ranks don't drop):",
	"iron: 100, bronze: 150, copper: 200, silver: 250, gold: 450,",
	"platinum: 850, jade: 1234, emerald: 1650, diamond: 2222,",
	"master:2468, super/grand-master:2666/2900, ultra: 2999.",
}, "\n")

func printPlayers(reg *registry, filter string) string {
	if reg.empty() {
		return noPlayerData
	}

	var b strings.Builder
	fmt.Fprintln(&b, rankLegend)

	var board []player
	if filter != "" {
		valid := false
		for _, name := range validTierNames() {
			if filter == name {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Sprintf("Invalid rank '%s'. Valid ranks are: %s.",
				filter, strings.Join(validTierNames(), ", "))
		}
		for _, p := range reg.players {
			if best := p.bestOrdinaryRank(); best != tierNone && best.String() == filter {
				board = append(board, *p)
			}
		}
	} else {
		for _, p := range reg.players {
			board = append(board, *p)
		}
	}
	byBoard(board)

	header := fmt.Sprintf("%-3s  %-15s  %5s  %5s  %5s  %3s  %5s  %-15s",
		"No.", "Name", "Avg", "Off", "Def", "T", "Win%", "Rank (Highest a/o/d)")
	fmt.Fprintln(&b, header)
	fmt.Fprintln(&b, strings.Repeat("-", len(header)))
	for i, p := range board {
		fmt.Fprintf(&b, "%-3d  %-15s  %5d  %5d  %5d  %3d  %5d  %-15s\n",
			i+1, p.Display, p.Avg, p.Offense, p.Defense, p.Played, p.winRate(),
			p.overallRank()+p.rankIndicator())
	}

	return b.String()
}

func bestPlayers(reg *registry) string {
	if reg.empty() {
		return noPlayerData
	}

	var bestAvg, bestOff, bestDef, mostPlayed, highestWin *player
	for _, p := range reg.players {
		if bestAvg == nil || p.Avg > bestAvg.Avg {
			bestAvg = p
		}
		if bestOff == nil || p.Offense > bestOff.Offense {
			bestOff = p
		}
		if bestDef == nil || p.Defense > bestDef.Defense {
			bestDef = p
		}
		if mostPlayed == nil || p.Played > mostPlayed.Played {
			mostPlayed = p
		}
		if highestWin == nil || winRatio(p) > winRatio(highestWin) {
			highestWin = p
		}
	}

	var b strings.Builder
	fmt.Fprintln(&b, "  Best Players:")
	fmt.Fprintf(&b, "  Best Average: %s (A-%d)\n", bestAvg.Display, bestAvg.Avg)
	fmt.Fprintf(&b, "  Best Offense: %s (O-%d)\n", bestOff.Display, bestOff.Offense)
	fmt.Fprintf(&b, "  Best Defense: %s (D-%d)\n", bestDef.Display, bestDef.Defense)
	fmt.Fprintf(&b, "  Most Played: %s (T-%d)\n", mostPlayed.Display, mostPlayed.Played)
	if highestWin.Played > 0 {
		fmt.Fprintf(&b, "  Highest Win Rate: %s (%.1f%%)\n", highestWin.Display, winRatio(highestWin)*100)
	}

	return b.String()
}

func winRatio(p *player) float64 {
	if p.Played == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Played)
}

func listNames(reg *registry) string {
	if reg.empty() {
		return noPlayerData
	}

	board := make([]player, 0, len(reg.players))
	for _, p := range reg.players {
		board = append(board, *p)
	}
	sort.Slice(board, func(i, j int) bool {
		return strings.ToLower(board[i].Display) < strings.ToLower(board[j].Display)
	})

	var b strings.Builder
	fmt.Fprintln(&b, "Name, Average, Offense, Defense, Games Played, Win%")
	for _, p := range board {
		fmt.Fprintf(&b, "%s: A-%d, O-%d, D-%d, T-%d, R-%d%%\n",
			p.Display, p.Avg, p.Offense, p.Defense, p.Played, p.winRate())
	}

	return b.String()
}

var combinePattern = regexp.MustCompile(`(?i)^combine\s+(.+?)\s+to\s+(.+?)\.?\s*$`)

func combinePlayers(reg *registry, text string) (string, bool) {
	m := combinePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "Invalid format. Use: combine a to b.", false
	}
	src, dest := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])

	if err := reg.combine(src, dest); err != nil {
		return err.Error() + ".", false
	}

	return fmt.Sprintf("Combined '%s' into '%s' (main record remains as '%s').", src, dest, dest), true
}

// parseMatch splits free text on its win-type token: everything before is
// team 1, everything after team 2.
func parseMatch(text string) (matchRequest, bool) {
	fields := strings.Fields(text)
	for i, f := range fields {
		if w, ok := parseWinType(strings.ToLower(f)); ok {
			return matchRequest{
				Team1: parseRoster(strings.Join(fields[:i], " ")),
				Team2: parseRoster(strings.Join(fields[i+1:], " ")),
				Type:  w,
			}, true
		}
	}

	return matchRequest{}, false
}

// parseRoster reads "a, b ; c, d" into offense and defense lists. Without a
// semicolon the whole team plays offense.
func parseRoster(s string) roster {
	var offensePart, defensePart string
	if idx := strings.Index(s, ";"); idx >= 0 {
		offensePart, defensePart = s[:idx], s[idx+1:]
	} else {
		offensePart = s
	}

	return roster{
		Offense: splitNames(offensePart),
		Defense: splitNames(defensePart),
	}
}

func splitNames(s string) []string {
	var names []string
	for _, n := range strings.Split(s, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func recordMatch(reg *registry, text string) (string, bool) {
	req, ok := parseMatch(text)
	if !ok {
		return "Command format not recognized.", false
	}

	report, err := reg.processMatch(req)
	if err != nil {
		return err.Error() + ".", false
	}

	return report, true
}
