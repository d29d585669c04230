package gradebook

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"

	"github.com/trezcool/alama/core/grade"
)

// csvCodec stores the gradebook in the same CSV layout as report exports.
// The Total and Average columns are ignored on load and recomputed.
type csvCodec struct{}

func (csvCodec) encode(records []grade.Record) ([]byte, error) {
	var buff bytes.Buffer
	if err := grade.WriteCSV(&buff, records); err != nil {
		return nil, err
	}
	return buff.Bytes(), nil
}

func (csvCodec) decode(data []byte) ([]grade.Record, error) {
	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1 // row length is checked in parseCSVRow

	var records []grade.Record
	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && len(row) > 0 && row[0] == grade.CSVHeader[0] {
			continue // header row
		}
		rec, err := parseCSVRow(row)
		if err != nil {
			log.Printf("gradebook: skipping line %d: %v", line, err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseCSVRow(row []string) (grade.Record, error) {
	if len(row) < 1+grade.NumSubjects {
		return grade.Record{}, fmt.Errorf("expected at least %d fields, got %d", 1+grade.NumSubjects, len(row))
	}
	roll, err := strconv.Atoi(row[0])
	if err != nil || roll < 1 {
		return grade.Record{}, fmt.Errorf("invalid roll %q", row[0])
	}
	marks := make([]float64, 0, grade.NumSubjects)
	for _, fld := range row[1 : 1+grade.NumSubjects] {
		m, err := strconv.ParseFloat(fld, 64)
		if err != nil {
			return grade.Record{}, fmt.Errorf("invalid mark %q", fld)
		}
		marks = append(marks, m)
	}
	if err := checkMarks(marks); err != nil {
		return grade.Record{}, err
	}
	return grade.Record{Roll: roll, Marks: marks}, nil
}
