package main

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// fileStore reads and writes the line-per-record snapshot format:
//
//	Display, Off, Def, Played, Win%[, Avg, RankD, RankO, RankA].
//
// Loading is best effort: malformed lines are dropped, missing optional
// fields are recomputed, and duplicate keys are merged by the registry.
type fileStore struct {
	filename string
}

func newFileStore(filename string) (store, error) {
	return &fileStore{filename: filename}, nil
}

func (f *fileStore) Close() error { return nil }

func (f *fileStore) load() ([]player, error) {
	file, err := os.Open(f.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "unable to open %s", f.filename)
	}
	defer file.Close()

	var players []player
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if p, ok := parseLine(scanner.Text()); ok {
			players = append(players, p)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", f.filename)
	}

	return players, nil
}

func parseLine(line string) (player, bool) {
	line = strings.TrimSuffix(strings.TrimSpace(line), ".")
	if line == "" {
		return player{}, false
	}

	parts := strings.Split(line, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 5 {
		return player{}, false
	}

	off, err1 := strconv.Atoi(parts[1])
	def, err2 := strconv.Atoi(parts[2])
	played, err3 := strconv.Atoi(parts[3])
	winRate, err4 := strconv.Atoi(parts[4])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return player{}, false
	}

	wins := 0
	if played > 0 {
		wins = int(math.Round(float64(winRate) / 100 * float64(played)))
	}

	avg := int(math.Round(float64(off+def) / 2))
	if len(parts) >= 6 {
		if v, err := strconv.Atoi(parts[5]); err == nil {
			avg = v
		}
	}

	// Rank tokens are stored defense, offense, average. Unknown or missing
	// tokens stay tierNone so the registry recomputes them from the final
	// ratings (which may still change if this line merges into a duplicate).
	rankD := optionalTier(parts, 6)
	rankO := optionalTier(parts, 7)
	rankA := optionalTier(parts, 8)

	return player{
		Display: parts[0],
		Offense: off,
		Defense: def,
		Played:  played,
		Wins:    wins,
		Avg:     avg,
		RankO:   rankO,
		RankD:   rankD,
		RankA:   rankA,
	}, true
}

func optionalTier(parts []string, idx int) tier {
	if idx < len(parts) {
		if t, ok := parseTier(parts[idx]); ok {
			return t
		}
	}
	return tierNone
}

func (f *fileStore) save(players []player) error {
	dir := filepath.Dir(f.filename)
	tmp, err := os.CreateTemp(dir, ".elo-*")
	if err != nil {
		return errors.Wrap(err, "unable to create snapshot file")
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, p := range players {
		fmt.Fprintf(w, "%s, %d, %d, %d, %d, %d, %s, %s, %s.\n",
			p.Display, p.Offense, p.Defense, p.Played, p.winRate(), p.Avg,
			p.RankD, p.RankO, p.RankA)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "unable to write snapshot")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "unable to close snapshot")
	}

	return errors.Wrapf(os.Rename(tmp.Name(), f.filename), "unable to replace %s", f.filename)
}
