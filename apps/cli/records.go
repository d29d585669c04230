package main

import (
	"fmt"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/alama/core/grade"
)

func (cli *commandLine) addRecord(roll int, marks []float64) error {
	nr := grade.NewRecord{
		Roll:  roll,
		Marks: marks,
	}
	if err := nr.Validate(cli.grdSvc); err != nil {
		return err
	}
	rec, err := cli.grdSvc.Create(nr)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Record added: roll %d, total %.2f, average %.2f\n", rec.Roll, rec.Total, rec.Average)
	return nil
}

func (cli *commandLine) updateRecord(roll int, marks []float64) error {
	ur := grade.UpdateRecord{Marks: marks}
	if err := ur.Validate(); err != nil {
		return err
	}
	rec, err := cli.grdSvc.Update(roll, ur)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Record updated: roll %d, total %.2f, average %.2f\n", rec.Roll, rec.Total, rec.Average)
	return nil
}

func (cli *commandLine) deleteRecord(roll int, skipConfirm bool) error {
	rec, err := cli.grdSvc.GetByRoll(roll)
	if err != nil {
		return err
	}
	if !skipConfirm && !confirmFunc(fmt.Sprintf("Delete record for roll %d?", rec.Roll)) {
		fmt.Fprintln(cli.out, "Aborted.")
		return nil
	}
	if err := cli.grdSvc.Delete(rec.Roll); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Record deleted: roll %d\n", rec.Roll)
	return nil
}

func (cli *commandLine) viewRecords() error {
	records, err := cli.grdSvc.QueryAll()
	if err != nil {
		return err
	}
	return pkgerrors.Wrap(grade.WriteReport(cli.out, records), "writing report")
}

func (cli *commandLine) searchRecord(roll int) error {
	rec, err := cli.grdSvc.GetByRoll(roll)
	if err != nil {
		return err
	}
	return pkgerrors.Wrap(grade.WriteReport(cli.out, []grade.Record{rec}), "writing report")
}
