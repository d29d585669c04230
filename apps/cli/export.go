package main

import (
	"fmt"
	"os"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/alama/core/grade"
)

func (cli *commandLine) exportRecords(path string) error {
	records, err := cli.grdSvc.QueryAll()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return pkgerrors.Wrap(err, "creating export file")
	}
	defer f.Close()
	if err := grade.WriteCSV(f, records); err != nil {
		return pkgerrors.Wrap(err, "writing export file")
	}
	fmt.Fprintf(cli.out, "Exported %d record(s) to %s\n", len(records), path)
	return nil
}

func (cli *commandLine) emailReport() error {
	if err := cli.grdSvc.EmailReport(); err != nil {
		return err
	}
	fmt.Fprintln(cli.out, "The grade report is on its way to the configured recipients.")
	return nil
}
