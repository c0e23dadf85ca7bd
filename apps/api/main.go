package main

import (
	"context"
	"expvar"
	"fmt"
	"net/http"
	_ "net/http/pprof" // registers /debug/pprof on http.DefaultServeMux
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	echoapi "github.com/trezcool/kazi/apps/api/echo"
	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/reminder"
	"github.com/trezcool/kazi/core/submission"
	emailsvc "github.com/trezcool/kazi/services/email"
	logsvc "github.com/trezcool/kazi/services/logger"
	"github.com/trezcool/kazi/storage"
	"github.com/trezcool/kazi/storage/local"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}
	loc, err := conf.Location()
	if err != nil {
		return err
	}

	// set up logger
	logger := logsvc.New(logsvc.NewZerologLogger(os.Stdout, conf.Log.Level, conf.Log.Format, conf.AppName), conf)

	// set up storage
	store, err := storage.Open(conf)
	if err != nil {
		return errors.Wrapf(err, "opening %s storage", conf.Storage.Driver)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("closing storage", err)
		}
	}()

	state, err := local.Load(store)
	if err != nil {
		return errors.Wrap(err, "loading state")
	}

	// set up services
	validate, translator := core.NewValidator()
	mailSvc := emailsvc.New(conf, logger)
	assignmentSvc := assignment.NewService(state, validate)
	submissionSvc := submission.NewService(state, conf.StudentName)
	reminders := reminder.NewScheduler(state, state, state, reminder.Options{
		WindowDays: conf.Reminder.WindowDays,
		MailSvc:    mailSvc,
		Recipient:  conf.Reminder.Email,
	})

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	if conf.Server.DebugAddress != "" {
		expvar.NewString("build").Set(conf.Build)
		expvar.NewString("env").Set(conf.Env)

		go func() {
			if err := http.ListenAndServe(conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
				logger.Error("debug server closed", err)
			}
		}()
	}

	// =========================================================================
	// Start API Service

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	server := echoapi.NewServer(&echoapi.Options{
		Address:        conf.Server.Address,
		AppName:        conf.AppName,
		Debug:          conf.Debug,
		TestMode:       conf.TestMode,
		DisableReqLogs: conf.Server.DisableReqLogs,
		Location:       loc,
		Logger:         logger,
		Translator:     translator,
		SignalShutdown: func() {
			select {
			case shutdown <- syscall.SIGTERM:
			default: // already shutting down
			}
		},
		AssignmentSvc: assignmentSvc,
		SubmissionSvc: submissionSvc,
		Reminders:     reminders,
	})

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("API listening", map[string]interface{}{"address": conf.Server.Address})
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-serverErrors:
		return errors.Wrap(err, "server error")

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return errors.Wrap(err, "could not stop server gracefully")
		}
	}
	return nil
}
