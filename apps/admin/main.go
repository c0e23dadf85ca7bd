package main

import (
	"os"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/submission"
	logsvc "github.com/trezcool/kazi/services/logger"
	"github.com/trezcool/kazi/storage"
	"github.com/trezcool/kazi/storage/kv/sqlkv"
	"github.com/trezcool/kazi/storage/local"
)

var logger core.Logger

func main() {
	defer os.Exit(0)

	conf, err := core.NewConfig()
	if err != nil {
		logsvc.NewZerologLogger(os.Stderr, "", "console", "admin").Fatal("loading config", err)
	}
	logger = logsvc.New(logsvc.NewZerologLogger(os.Stderr, conf.Log.Level, "console", conf.AppName+" admin"), conf)

	loc, err := conf.Location()
	errAndDie(err)

	// set up storage
	store, err := storage.Open(conf)
	errAndDie(err)
	defer store.Close()

	state, err := local.Load(store)
	errAndDie(err)

	// start CLI
	validate, _ := core.NewValidator()
	cli := commandLine{
		out:           os.Stdout,
		loc:           loc,
		assignmentSvc: assignment.NewService(state, validate),
		submissionSvc: submission.NewService(state, conf.StudentName),
	}
	if s, ok := store.(*sqlkv.Store); ok {
		cli.db = s.DB()
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		_ = store.Close()
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal("setting up", err)
	}
}
