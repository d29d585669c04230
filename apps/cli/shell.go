package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/grade"
)

// shell runs the interactive menu loop until the user exits.
func (cli *commandLine) shell(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintln(cli.out)
		fmt.Fprintln(cli.out, "----- Student Grade Manager -----")
		fmt.Fprintln(cli.out, "1. Add record")
		fmt.Fprintln(cli.out, "2. View all records")
		fmt.Fprintln(cli.out, "3. Search record")
		fmt.Fprintln(cli.out, "4. Update record")
		fmt.Fprintln(cli.out, "5. Delete record")
		fmt.Fprintln(cli.out, "6. Export report")
		fmt.Fprintln(cli.out, "7. Exit")

		choice, ok := cli.prompt(scanner, "Enter your choice: ")
		if !ok {
			return nil
		}
		switch choice {
		case "1":
			cli.shellAdd(scanner)
		case "2":
			cli.shellView()
		case "3":
			cli.shellSearch(scanner)
		case "4":
			cli.shellUpdate(scanner)
		case "5":
			cli.shellDelete(scanner)
		case "6":
			cli.shellExport(scanner)
		case "7":
			fmt.Fprintln(cli.out, "Bye!")
			return nil
		default:
			fmt.Fprintln(cli.out, "Invalid choice, try again.")
		}
	}
}

func (cli *commandLine) shellAdd(scanner *bufio.Scanner) {
	roll, ok := cli.promptRoll(scanner)
	if !ok {
		return
	}
	marks, ok := cli.promptMarks(scanner)
	if !ok {
		return
	}
	nr := grade.NewRecord{Roll: roll, Marks: marks}
	if err := nr.Validate(cli.grdSvc); err != nil {
		fmt.Fprintln(cli.out, translateErr(err))
		return
	}
	rec, err := cli.grdSvc.Create(nr)
	if err != nil {
		fmt.Fprintln(cli.out, translateErr(err))
		return
	}
	fmt.Fprintf(cli.out, "Record added: roll %d, total %.2f, average %.2f\n", rec.Roll, rec.Total, rec.Average)
}

func (cli *commandLine) shellView() {
	records, err := cli.grdSvc.QueryAll()
	if err != nil {
		fmt.Fprintln(cli.out, translateErr(err))
		return
	}
	_ = grade.WriteReport(cli.out, records)
}

func (cli *commandLine) shellSearch(scanner *bufio.Scanner) {
	roll, ok := cli.promptRoll(scanner)
	if !ok {
		return
	}
	rec, err := cli.grdSvc.GetByRoll(roll)
	if err != nil {
		if pkgerrors.Cause(err) == grade.ErrNotFound {
			fmt.Fprintf(cli.out, "No record found for roll %d.\n", roll)
		} else {
			fmt.Fprintln(cli.out, translateErr(err))
		}
		return
	}
	_ = grade.WriteReport(cli.out, []grade.Record{rec})
}

func (cli *commandLine) shellUpdate(scanner *bufio.Scanner) {
	roll, ok := cli.promptRoll(scanner)
	if !ok {
		return
	}
	if _, err := cli.grdSvc.GetByRoll(roll); err != nil {
		if pkgerrors.Cause(err) == grade.ErrNotFound {
			fmt.Fprintf(cli.out, "No record found for roll %d.\n", roll)
		} else {
			fmt.Fprintln(cli.out, translateErr(err))
		}
		return
	}
	marks, ok := cli.promptMarks(scanner)
	if !ok {
		return
	}
	ur := grade.UpdateRecord{Marks: marks}
	if err := ur.Validate(); err != nil {
		fmt.Fprintln(cli.out, translateErr(err))
		return
	}
	rec, err := cli.grdSvc.Update(roll, ur)
	if err != nil {
		fmt.Fprintln(cli.out, translateErr(err))
		return
	}
	fmt.Fprintf(cli.out, "Record updated: roll %d, total %.2f, average %.2f\n", rec.Roll, rec.Total, rec.Average)
}

func (cli *commandLine) shellDelete(scanner *bufio.Scanner) {
	roll, ok := cli.promptRoll(scanner)
	if !ok {
		return
	}
	rec, err := cli.grdSvc.GetByRoll(roll)
	if err != nil {
		if pkgerrors.Cause(err) == grade.ErrNotFound {
			fmt.Fprintf(cli.out, "No record found for roll %d.\n", roll)
		} else {
			fmt.Fprintln(cli.out, translateErr(err))
		}
		return
	}
	answer, ok := cli.prompt(scanner, fmt.Sprintf("Delete record for roll %d? (y/n): ", rec.Roll))
	if !ok {
		return
	}
	switch core.CleanString(answer, true) {
	case "y", "yes":
	default:
		fmt.Fprintln(cli.out, "Aborted.")
		return
	}
	if err := cli.grdSvc.Delete(rec.Roll); err != nil {
		fmt.Fprintln(cli.out, translateErr(err))
		return
	}
	fmt.Fprintf(cli.out, "Record deleted: roll %d\n", rec.Roll)
}

func (cli *commandLine) shellExport(scanner *bufio.Scanner) {
	path, ok := cli.prompt(scanner, "Enter output file path (default grades_report.txt): ")
	if !ok {
		return
	}
	if path == "" {
		path = "grades_report.txt"
	}
	records, err := cli.grdSvc.QueryAll()
	if err != nil {
		fmt.Fprintln(cli.out, translateErr(err))
		return
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(cli.out, "Cannot create %s: %s\n", path, err)
		return
	}
	defer f.Close()
	if err = grade.WriteReport(f, records); err != nil {
		fmt.Fprintf(cli.out, "Cannot write %s: %s\n", path, err)
		return
	}
	fmt.Fprintf(cli.out, "Report exported to %s\n", path)
}

func (cli *commandLine) prompt(scanner *bufio.Scanner, msg string) (string, bool) {
	fmt.Fprint(cli.out, msg)
	if !scanner.Scan() {
		return "", false
	}
	return core.CleanString(scanner.Text()), true
}

func (cli *commandLine) promptRoll(scanner *bufio.Scanner) (int, bool) {
	s, ok := cli.prompt(scanner, "Enter roll number: ")
	if !ok {
		return 0, false
	}
	roll, err := strconv.Atoi(s)
	if err != nil || roll < 1 {
		fmt.Fprintln(cli.out, "Roll number must be a positive integer.")
		return 0, false
	}
	return roll, true
}

func (cli *commandLine) promptMarks(scanner *bufio.Scanner) ([]float64, bool) {
	marks := make([]float64, 0, grade.NumSubjects)
	for _, subject := range grade.Subjects {
		s, ok := cli.prompt(scanner, fmt.Sprintf("Enter marks for %s: ", subject))
		if !ok {
			return nil, false
		}
		mark, err := strconv.ParseFloat(s, 64)
		if err != nil {
			fmt.Fprintf(cli.out, "Invalid mark %q.\n", s)
			return nil, false
		}
		marks = append(marks, mark)
	}
	return marks, true
}
