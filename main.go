package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

func init() {
	rand.Seed(time.Now().UnixNano())
}

func openStore(kind, filename string) (store, error) {
	switch kind {
	case "file":
		return newFileStore(filename)
	case "sqlite":
		return NewSqlite(filename)
	case "boltdb":
		return NewBoltDB(filename)
	}

	return nil, errors.Errorf("invalid database argument %q", kind)
}

func transferData(input, output store) error {
	Debug("transfering data")
	reg, err := loadRegistry(input)
	if err != nil {
		return err
	}

	Debugf("Got %d players", len(reg.players))
	return output.save(reg.snapshot())
}

func loadRegistry(db store) (*registry, error) {
	players, err := db.load()
	if err != nil {
		return nil, err
	}

	reg := newRegistry(hiddenPredicate())
	for _, p := range players {
		reg.addLoaded(p)
	}

	return reg, nil
}

func repl(reg *registry, db store) error {
	fmt.Println("Foosball ELO System")
	fmt.Println("Commands: pp, best, combine, name, help, exit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "exit") {
			break
		}

		reply, mutated := runCommand(reg, line)
		if mutated {
			if err := db.save(reg.snapshot()); err != nil {
				log.Printf("%+v", err)
			}
		}
		if reply != "" {
			fmt.Println(reply)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "unable to read input")
	}

	return db.save(reg.snapshot())
}

func main() {
	debug := flag.Bool("debug", false, "enable debugging")
	database := flag.String("database", "file", "[file, sqlite, boltdb]")
	filename := flag.String("filename", dataFile, "filename for the database")
	transfer := flag.String("transfer", "", "[file, sqlite, boltdb] database to transfer to")
	output := flag.String("output", "database.db", "filename for transfer to")
	slackMode := flag.Bool("slack", false, "run as a slack bot instead of the console")
	flag.Parse()

	setDebug(*debug)

	db, err := openStore(*database, *filename)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatal(err)
		}
	}()

	if *transfer != "" {
		out, err := openStore(*transfer, *output)
		if err != nil {
			log.Fatalf("%+v", err)
		}
		defer func() {
			if err := out.Close(); err != nil {
				log.Fatal(err)
			}
		}()

		if err := transferData(db, out); err != nil {
			log.Fatalf("%+v", err)
		}

		return
	}

	reg, err := loadRegistry(db)
	if err != nil {
		log.Fatalf("%+v", err)
	}

	log.Println("started", os.Args[0])
	log.Println("using", *database, "for a database")

	if *slackMode {
		if err := runSlack(reg, db); err != nil {
			log.Fatalf("%+v", err)
		}
		return
	}

	if err := repl(reg, db); err != nil {
		log.Fatalf("%+v", err)
	}
}
