package main

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	testutil "github.com/trezcool/alama/tests"
)

func Test_commandLine_shell(t *testing.T) {
	cli, out := setup(t)

	reportPath := filepath.Join(t.TempDir(), "report.txt")

	// add 101, update it, search a missing roll, view, export, delete 101,
	// then a bogus choice before exiting
	script := strings.Join([]string{
		"1", "101", "80", "90", "70", "60", "100",
		"4", "101", "90", "90", "90", "90", "90",
		"3", "404",
		"2",
		"6", reportPath,
		"5", "101", "y",
		"8",
		"7",
	}, "\n") + "\n"

	if err := cli.shell(strings.NewReader(script)); err != nil {
		t.Fatalf("cli.shell() failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"----- Student Grade Manager -----",
		"Record added: roll 101, total 400.00, average 80.00",
		"Record updated: roll 101, total 450.00, average 90.00",
		"No record found for roll 404.",
		"1 record(s)",
		"Report exported to " + reportPath,
		"Record deleted: roll 101",
		"Invalid choice, try again.",
		"Bye!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("cli.shell() out does not contain %q", want)
		}
	}

	report, err := ioutil.ReadFile(reportPath)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	for _, want := range []string{"101", "450.00", "1 record(s)"} {
		if !strings.Contains(string(report), want) {
			t.Errorf("report does not contain %q", want)
		}
	}

	records, err := grdRepo.QueryAllRecords()
	if err != nil {
		t.Fatalf("QueryAllRecords() failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("failed! %d record(s) left; want 0", len(records))
	}
}

func Test_commandLine_shell_badInput(t *testing.T) {
	cli, out := setup(t)

	testutil.CreateRecord(t, grdRepo, 101, []float64{80, 90, 70, 60, 100})

	// a bad roll then a bad mark both abort back to the menu
	script := strings.Join([]string{
		"1", "lol",
		"1", "102", "80", "nope",
		"7",
	}, "\n") + "\n"

	if err := cli.shell(strings.NewReader(script)); err != nil {
		t.Fatalf("cli.shell() failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Roll number must be a positive integer.",
		`Invalid mark "nope".`,
		"Bye!",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("cli.shell() out does not contain %q", want)
		}
	}

	records, err := grdRepo.QueryAllRecords()
	if err != nil {
		t.Fatalf("QueryAllRecords() failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("failed! %d record(s); want the book untouched", len(records))
	}
}

func Test_commandLine_shell_eof(t *testing.T) {
	cli, _ := setup(t)

	if err := cli.shell(strings.NewReader("")); err != nil {
		t.Fatalf("cli.shell() failed: %v", err)
	}
}
