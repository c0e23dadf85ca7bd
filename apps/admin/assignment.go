package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/trezcool/kazi/core"
	"github.com/trezcool/kazi/core/assignment"
	"github.com/trezcool/kazi/core/stats"
	"github.com/trezcool/kazi/core/submission"
)

func (cli *commandLine) list() error {
	as, err := cli.assignmentSvc.QueryAll()
	if err != nil {
		return err
	}
	subs, err := cli.submissionSvc.QueryAll()
	if err != nil {
		return err
	}
	if len(as) == 0 {
		fmt.Fprintln(cli.out, "No assignments yet!")
		return nil
	}

	today := core.Today(cli.loc)
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSUBJECT\tTITLE\tDUE\tDAYS LEFT\tSTATUS\tSUBMITTED")
	for _, a := range as {
		st := a.DueStatus(today)
		days := "-"
		if st.Status != assignment.StatusUnknown {
			days = fmt.Sprint(st.DaysLeft)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%t\n",
			a.ID, a.Subject, a.Title, a.DueDate, days, st.Status, submission.IsSubmitted(subs, a.ID))
	}
	return w.Flush()
}

func (cli *commandLine) publish(na assignment.NewAssignment) error {
	a, err := cli.assignmentSvc.Publish(na)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Assignment Published! (id: %d)\n", a.ID)
	return nil
}

// markDone records a submission for an existing assignment, after confirmation.
func (cli *commandLine) markDone(id int64, yes bool) error {
	a, err := cli.assignmentSvc.GetByID(id)
	if err != nil {
		return err
	}
	if err = cli.confirm(fmt.Sprintf("Mark %q as complete?", a.Title), yes); err != nil {
		return err
	}
	if _, err = cli.submissionSvc.Record(a.ID); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s submitted.\n", a.Title)
	return nil
}

func (cli *commandLine) stats() error {
	as, err := cli.assignmentSvc.QueryAll()
	if err != nil {
		return err
	}
	subs, err := cli.submissionSvc.QueryAll()
	if err != nil {
		return err
	}
	st := stats.Compute(as, subs)
	fmt.Fprintf(cli.out, "Total Assignments: %d\n", st.TotalAssignments)
	fmt.Fprintf(cli.out, "Completion Rate: %d%%\n", st.CompletionRate)
	fmt.Fprintf(cli.out, "Pending: %d\n", st.Pending)
	return nil
}
