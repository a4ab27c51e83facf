package main

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	accessToken    = ""
	dataFile       = "elo.txt"
	hiddenFragment = "zhong"
)

func init() {
	godotenv.Load()

	if t := os.Getenv("ACCESS_TOKEN"); t != "" {
		accessToken = t
	}
	if f := os.Getenv("FOOSBALL_FILE"); f != "" {
		dataFile = f
	}
	if h, ok := os.LookupEnv("HIDDEN_FRAGMENT"); ok {
		hiddenFragment = h
	}
}

// hiddenPredicate builds the identity rule for players whose ranks stay
// hidden. An empty fragment disables the rule.
func hiddenPredicate() func(string) bool {
	fragment := hiddenFragment
	if fragment == "" {
		return nil
	}
	return func(key string) bool {
		return strings.Contains(key, fragment)
	}
}
