package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/grade"
)

var (
	// mockable
	confirmFunc = askConfirm

	errHelp = errors.New("help provided")
)

type commandLine struct {
	grdSvc grade.Service
	out    io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "\tadd -roll ROLL -marks M1,M2,M3,M4,M5 - add a new student record")
	fmt.Fprintln(cli.out, "\tupdate -roll ROLL -marks M1,M2,M3,M4,M5 - replace the marks of an existing record")
	fmt.Fprintln(cli.out, "\tdelete -roll ROLL [-yes] - delete a student record")
	fmt.Fprintln(cli.out, "\tview - list all student records")
	fmt.Fprintln(cli.out, "\tsearch -roll ROLL - look up a student record")
	fmt.Fprintln(cli.out, "\texport -out FILE - export all records to a CSV file")
	fmt.Fprintln(cli.out, "\temailreport - mail the grade report to the configured recipients")
	fmt.Fprintln(cli.out, "\tshell - start the interactive menu")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addCmd := flag.NewFlagSet("add", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	deleteCmd := flag.NewFlagSet("delete", flag.ExitOnError)
	viewCmd := flag.NewFlagSet("view", flag.ExitOnError)
	searchCmd := flag.NewFlagSet("search", flag.ExitOnError)
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	emailReportCmd := flag.NewFlagSet("emailreport", flag.ExitOnError)
	shellCmd := flag.NewFlagSet("shell", flag.ExitOnError)

	addRoll := addCmd.Int("roll", 0, "Student roll number")
	addMarks := addCmd.String("marks", "", "Comma-separated marks, one per subject")
	updateRoll := updateCmd.Int("roll", 0, "Student roll number")
	updateMarks := updateCmd.String("marks", "", "Comma-separated marks, one per subject")
	deleteRoll := deleteCmd.Int("roll", 0, "Student roll number")
	deleteYes := deleteCmd.Bool("yes", false, "Skip the confirmation prompt")
	searchRoll := searchCmd.Int("roll", 0, "Student roll number")
	exportOut := exportCmd.String("out", "", "Destination CSV file")

	var err error
	switch args[1] {
	case "add":
		err = addCmd.Parse(args[2:])
	case "update":
		err = updateCmd.Parse(args[2:])
	case "delete":
		err = deleteCmd.Parse(args[2:])
	case "view":
		err = viewCmd.Parse(args[2:])
	case "search":
		err = searchCmd.Parse(args[2:])
	case "export":
		err = exportCmd.Parse(args[2:])
	case "emailreport":
		err = emailReportCmd.Parse(args[2:])
	case "shell":
		err = shellCmd.Parse(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
	if err != nil {
		return err
	}

	if addCmd.Parsed() {
		if *addRoll == 0 || *addMarks == "" {
			addCmd.Usage()
			return errHelp
		}
		marks, err := parseMarks(*addMarks)
		if err != nil {
			return err
		}
		return cli.addRecord(*addRoll, marks)
	}
	if updateCmd.Parsed() {
		if *updateRoll == 0 || *updateMarks == "" {
			updateCmd.Usage()
			return errHelp
		}
		marks, err := parseMarks(*updateMarks)
		if err != nil {
			return err
		}
		return cli.updateRecord(*updateRoll, marks)
	}
	if deleteCmd.Parsed() {
		if *deleteRoll == 0 {
			deleteCmd.Usage()
			return errHelp
		}
		return cli.deleteRecord(*deleteRoll, *deleteYes)
	}
	if viewCmd.Parsed() {
		return cli.viewRecords()
	}
	if searchCmd.Parsed() {
		if *searchRoll == 0 {
			searchCmd.Usage()
			return errHelp
		}
		return cli.searchRecord(*searchRoll)
	}
	if exportCmd.Parsed() {
		if *exportOut == "" {
			exportCmd.Usage()
			return errHelp
		}
		return cli.exportRecords(*exportOut)
	}
	if emailReportCmd.Parsed() {
		return cli.emailReport()
	}
	if shellCmd.Parsed() {
		return cli.shell(os.Stdin)
	}
	return nil
}

// parseMarks splits a comma-separated list of marks.
func parseMarks(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	marks := make([]float64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		mark, err := strconv.ParseFloat(part, 64)
		if err != nil {
			msg := fmt.Sprintf("invalid mark %q", part)
			return nil, core.NewValidationError(errors.New(msg), core.FieldError{Field: "marks", Error: msg})
		}
		marks = append(marks, mark)
	}
	return marks, nil
}

func askConfirm(prompt string) bool {
	fmt.Printf("%s (y/n): ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false
	}
	switch core.CleanString(scanner.Text(), true) {
	case "y", "yes":
		return true
	}
	return false
}
