package main

// store persists the full board. Loading happens once at startup; saving
// rewrites the whole snapshot after every mutating command.
type store interface {
	Close() error
	load() ([]player, error)
	save(players []player) error
}
