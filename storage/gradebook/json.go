package gradebook

import (
	"encoding/json"
	"log"
	"strconv"

	"github.com/trezcool/alama/core/grade"
)

// jsonCodec stores the gradebook as a single JSON object keyed by stringified
// roll number, each value holding the bare marks. Derived stats are never
// persisted in this form; they are recomputed on load.
type jsonCodec struct{}

func (jsonCodec) encode(records []grade.Record) ([]byte, error) {
	book := make(map[string][]float64, len(records))
	for _, rec := range records {
		book[strconv.Itoa(rec.Roll)] = rec.Marks
	}
	return json.MarshalIndent(book, "", "    ")
}

func (jsonCodec) decode(data []byte) ([]grade.Record, error) {
	var book map[string][]float64
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, err
	}

	records := make([]grade.Record, 0, len(book))
	for key, marks := range book {
		roll, err := strconv.Atoi(key)
		if err != nil || roll < 1 {
			log.Printf("gradebook: skipping entry with invalid roll %q", key)
			continue
		}
		if err := checkMarks(marks); err != nil {
			log.Printf("gradebook: skipping roll %s: %v", key, err)
			continue
		}
		records = append(records, grade.Record{Roll: roll, Marks: marks})
	}
	return records, nil
}
