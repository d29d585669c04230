package grade

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/trezcool/alama/core"
)

// CSVHeader is the column layout of gradebook CSV files and exports.
var CSVHeader = append(append([]string{"Roll"}, Subjects[:]...), "Total", "Average")

// WriteCSV writes records to w in the gradebook CSV layout, header included.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, rec := range records {
		if err := cw.Write(rec.csvRow()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r Record) csvRow() []string {
	row := make([]string, 0, len(CSVHeader))
	row = append(row, strconv.Itoa(r.Roll))
	for _, m := range r.Marks {
		row = append(row, strconv.FormatFloat(m, 'f', -1, 64))
	}
	row = append(row, strconv.FormatFloat(r.Total, 'f', -1, 64))
	row = append(row, strconv.FormatFloat(r.Average, 'f', 1, 64))
	return row
}

// WriteReport writes a plain-text grade report of records to w.
func WriteReport(w io.Writer, records []Record) error {
	var buff bytes.Buffer

	_, _ = fmt.Fprintf(&buff, "%-8s", "Roll")
	for _, subj := range Subjects {
		_, _ = fmt.Fprintf(&buff, "%-10s", subj)
	}
	_, _ = fmt.Fprintf(&buff, "%-10s%s\n", "Total", "Average")

	for _, rec := range records {
		_, _ = fmt.Fprintf(&buff, "%-8d", rec.Roll)
		for _, m := range rec.Marks {
			_, _ = fmt.Fprintf(&buff, "%-10.2f", m)
		}
		_, _ = fmt.Fprintf(&buff, "%-10.2f%.2f\n", rec.Total, rec.Average)
	}
	_, _ = fmt.Fprintf(&buff, "\n%d record(s)\n", len(records))

	_, err := w.Write(buff.Bytes())
	return err
}

// ReportData is the template context for the grade report email.
type ReportData struct {
	Count        int
	ClassAverage float64
	Records      []Record
}

// NewReportEmail builds the grade report email with the CSV export attached.
func NewReportEmail(records []Record) (*core.EmailMessage, error) {
	msg := &core.EmailMessage{
		To:           core.Conf.ReportAddresses(),
		Subject:      "Grade Report",
		TemplateName: "gradereport",
		TemplateData: ReportData{
			Count:        len(records),
			ClassAverage: ClassAverage(records),
			Records:      records,
		},
	}

	var buff bytes.Buffer
	if err := WriteCSV(&buff, records); err != nil {
		return nil, err
	}
	if err := msg.Attach(&buff, "grades.csv", "text/csv"); err != nil {
		return nil, err
	}
	return msg, nil
}
