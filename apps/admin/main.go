package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/duotask/duotask/core"
	kvdb "github.com/duotask/duotask/storage/database/kv"
	"github.com/duotask/duotask/storage/kvstore"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	db, err := kvstore.OpenBolt(filepath.Join(conf.WorkDir, conf.Database.Path))
	errAndDie(err)
	defer db.Close()

	// start CLI
	cli := commandLine{
		usrRepo: kvdb.NewUserRepository(db),
		evtRepo: kvdb.NewEventRepository(db),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
