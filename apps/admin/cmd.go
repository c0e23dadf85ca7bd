package main

import (
	"bufio"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/submission"
)

var (
	isTerminalFunc  = term.IsTerminal // mockable
	readConfirmFunc = readConfirm     // mockable

	errHelp      = errors.New("help provided")
	errCancelled = errors.New("cancelled")
	errNoSQLite  = errors.New("migrations only apply to the sqlite storage driver")
)

type commandLine struct {
	out           io.Writer
	loc           *time.Location
	db            *sql.DB // nil unless the sqlite driver is used
	assignmentSvc *assignment.Service
	submissionSvc *submission.Service
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  migrate COMMAND [ARGS]                      - run a goose command on the sqlite storage")
	fmt.Fprintln(cli.out, "  list                                        - list assignments with their due status")
	fmt.Fprintln(cli.out, "  publish -title T -subject S -date YYYY-MM-DD [-desc D] [-link URL] - publish an assignment")
	fmt.Fprintln(cli.out, "  done -id ID [-yes]                          - mark an assignment as submitted")
	fmt.Fprintln(cli.out, "  stats                                       - print the dashboard stats")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	publishCmd := flag.NewFlagSet("publish", flag.ContinueOnError)
	publishCmd.SetOutput(cli.out)
	publishTitle := publishCmd.String("title", "", "The assignment title.")
	publishSubject := publishCmd.String("subject", "", "The subject, eg. English.")
	publishDesc := publishCmd.String("desc", "", "An optional description.")
	publishLink := publishCmd.String("link", "", "An optional URL.")
	publishDate := publishCmd.String("date", "", "The due date (YYYY-MM-DD).")

	doneCmd := flag.NewFlagSet("done", flag.ContinueOnError)
	doneCmd.SetOutput(cli.out)
	doneID := doneCmd.String("id", "", "The assignment ID.")
	doneYes := doneCmd.Bool("yes", false, "Do not ask for confirmation.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	case "list":
		return cli.list()

	case "publish":
		if err := publishCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		return cli.publish(assignment.NewAssignment{
			Title:       *publishTitle,
			Subject:     *publishSubject,
			Description: *publishDesc,
			Link:        *publishLink,
			DueDate:     *publishDate,
		})

	case "done":
		if err := doneCmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *doneID == "" {
			doneCmd.Usage()
			return errHelp
		}
		id, err := strconv.ParseInt(*doneID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid assignment ID %q", *doneID)
		}
		return cli.markDone(id, *doneYes)

	case "stats":
		return cli.stats()

	default:
		cli.printUsage()
		return errHelp
	}
}

// confirm asks a yes/no question on the terminal. Without a terminal, -yes is required.
func (cli *commandLine) confirm(question string, yes bool) error {
	if yes {
		return nil
	}
	if !isTerminalFunc(int(os.Stdin.Fd())) {
		return errors.New("not a terminal: pass -yes to confirm")
	}
	fmt.Fprintf(cli.out, "%s [y/N] ", question)
	ok, err := readConfirmFunc(os.Stdin)
	if err != nil {
		return err
	}
	if !ok {
		return errCancelled
	}
	return nil
}

func readConfirm(r io.Reader) (bool, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
