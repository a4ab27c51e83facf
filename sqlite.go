package main

import (
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type sqlite struct {
	db *sqlx.DB
}

// playerRow is the players table shape; rank columns hold canonical tier
// tokens.
type playerRow struct {
	Key     string `db:"key"`
	Display string `db:"display"`
	Offense int    `db:"offense"`
	Defense int    `db:"defense"`
	Played  int    `db:"played"`
	Wins    int    `db:"wins"`
	Avg     int    `db:"avg"`
	RankD   string `db:"rank_d"`
	RankO   string `db:"rank_o"`
	RankA   string `db:"rank_a"`
}

func NewSqlite(filename string) (store, error) {
	db, err := sqlx.Connect("sqlite3", filename)
	if err != nil {
		return nil, err
	}

	s := sqlite{db: db}

	if err := s.createPlayersTable(); err != nil {
		return nil, err
	}

	return &s, nil
}

func (s *sqlite) Close() error {
	return errors.Wrap(s.db.Close(), "unable to close database")
}

func (s *sqlite) createPlayersTable() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS players (
		key TEXT NOT NULL PRIMARY KEY,
		display TEXT,
		offense INTEGER,
		defense INTEGER,
		played INTEGER,
		wins INTEGER,
		avg INTEGER,
		rank_d TEXT,
		rank_o TEXT,
		rank_a TEXT
	)`)

	return errors.Wrap(err, "unable to create table players")
}

func (s *sqlite) load() ([]player, error) {
	rows := []playerRow{}
	err := s.db.Select(&rows, `SELECT key, display, offense, defense, played, wins, avg, rank_d, rank_o, rank_a FROM players`)
	if err != nil {
		return nil, errors.Wrap(err, "unable to select from players")
	}

	players := make([]player, 0, len(rows))
	for _, row := range rows {
		p := player{
			Display: row.Display,
			Offense: row.Offense,
			Defense: row.Defense,
			Played:  row.Played,
			Wins:    row.Wins,
			Avg:     row.Avg,
			RankD:   rowTier(row.RankD, row.Defense),
			RankO:   rowTier(row.RankO, row.Offense),
			RankA:   rowTier(row.RankA, row.Avg),
		}
		players = append(players, p)
	}

	return players, nil
}

func rowTier(token string, rating int) tier {
	if t, ok := parseTier(token); ok {
		return t
	}
	return computedTier(rating)
}

func (s *sqlite) save(players []player) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return errors.Wrap(err, "unable to begin transaction")
	}

	if _, err := tx.Exec(`DELETE FROM players`); err != nil {
		tx.Rollback()
		return errors.Wrap(err, "unable to clear players")
	}

	for _, p := range players {
		row := playerRow{
			Key:     p.key(),
			Display: p.Display,
			Offense: p.Offense,
			Defense: p.Defense,
			Played:  p.Played,
			Wins:    p.Wins,
			Avg:     p.Avg,
			RankD:   p.RankD.String(),
			RankO:   p.RankO.String(),
			RankA:   p.RankA.String(),
		}
		if _, err := tx.NamedExec(`INSERT OR REPLACE INTO players
			(key, display, offense, defense, played, wins, avg, rank_d, rank_o, rank_a)
			VALUES(:key, :display, :offense, :defense, :played, :wins, :avg, :rank_d, :rank_o, :rank_a)`, &row); err != nil {
			tx.Rollback()
			return errors.Wrap(err, "unable to insert into players")
		}
	}

	return errors.Wrap(tx.Commit(), "unable to commit transaction")
}
