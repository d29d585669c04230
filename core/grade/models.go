package grade

import (
	"github.com/trezcool/alama/core"
)

// NumSubjects is the number of graded subjects per student record.
const NumSubjects = 5

// Subjects lists the graded subject column names, in storage order.
var Subjects = [NumSubjects]string{"Subject1", "Subject2", "Subject3", "Subject4", "Subject5"}

type Record struct {
	Roll    int       `json:"roll"`
	Marks   []float64 `json:"marks"`
	Total   float64   `json:"total"`
	Average float64   `json:"average"`
}

// ComputeStats refreshes the derived Total and Average from Marks.
func (r *Record) ComputeStats() {
	var total float64
	for _, m := range r.Marks {
		total += m
	}
	r.Total = total
	r.Average = total / NumSubjects
}

// ClassAverage returns the mean of the averages of records.
func ClassAverage(records []Record) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, rec := range records {
		sum += rec.Average
	}
	return sum / float64(len(records))
}

// NewRecord contains information needed to create a new Record.
type NewRecord struct {
	Roll  int       `json:"roll" validate:"required,min=1"`
	Marks []float64 `json:"marks"`
}

func (nr *NewRecord) Validate(svc Service) error {
	if err := core.Validate.Struct(nr); err != nil {
		return err
	}
	return svc.CheckUniqueness(nr.Roll)
}

// UpdateRecord defines what information may be provided to modify an existing Record.
// All marks are replaced at once; the roll number never changes.
type UpdateRecord struct {
	Marks []float64 `json:"marks"`
}

func (ur *UpdateRecord) Validate() error { return core.Validate.Struct(ur) }
