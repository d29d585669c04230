package grade

import (
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
)

func TestRecord_ComputeStats(t *testing.T) {
	tests := []struct {
		name        string
		marks       []float64
		wantTotal   float64
		wantAverage float64
	}{
		{name: "round numbers", marks: []float64{80, 90, 70, 60, 100}, wantTotal: 400, wantAverage: 80},
		{name: "all zeros", marks: []float64{0, 0, 0, 0, 0}},
		{name: "all max", marks: []float64{100, 100, 100, 100, 100}, wantTotal: 500, wantAverage: 100},
		{name: "decimals", marks: []float64{55.5, 60.25, 70, 80, 90}, wantTotal: 355.75, wantAverage: 71.15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := Record{Roll: 1, Marks: tt.marks}
			rec.ComputeStats()
			if rec.Total != tt.wantTotal {
				t.Errorf("ComputeStats() Total = %v; want %v", rec.Total, tt.wantTotal)
			}
			if rec.Average != tt.wantAverage {
				t.Errorf("ComputeStats() Average = %v; want %v", rec.Average, tt.wantAverage)
			}
		})
	}
}

func TestClassAverage(t *testing.T) {
	rec1 := Record{Roll: 1, Marks: []float64{80, 90, 70, 60, 100}}
	rec1.ComputeStats()
	rec2 := Record{Roll: 2, Marks: []float64{90, 90, 90, 90, 90}}
	rec2.ComputeStats()

	tests := []struct {
		name    string
		records []Record
		want    float64
	}{
		{name: "no records"},
		{name: "single record", records: []Record{rec1}, want: 80},
		{name: "multiple records", records: []Record{rec1, rec2}, want: 85},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassAverage(tt.records); got != tt.want {
				t.Errorf("ClassAverage() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestNewRecord_Validate(t *testing.T) {
	taken := Record{Roll: 7, Marks: []float64{50, 50, 50, 50, 50}}
	taken.ComputeStats()
	svc := NewService(newFakeRepo(taken), nil)

	validMarks := []float64{80, 90, 70, 60, 100}

	tests := []struct {
		name      string
		rec       NewRecord
		wantField string // "" = valid
	}{
		{name: "valid", rec: NewRecord{Roll: 1, Marks: validMarks}},
		{name: "boundary marks pass", rec: NewRecord{Roll: 2, Marks: []float64{0, 100, 0, 100, 50}}},
		{name: "roll required", rec: NewRecord{Marks: validMarks}, wantField: "roll"},
		{name: "negative roll", rec: NewRecord{Roll: -1, Marks: validMarks}, wantField: "roll"},
		{name: "marks required", rec: NewRecord{Roll: 3}, wantField: "marks"},
		{name: "too few marks", rec: NewRecord{Roll: 3, Marks: []float64{80, 90}}, wantField: "marks"},
		{name: "too many marks", rec: NewRecord{Roll: 3, Marks: []float64{80, 90, 70, 60, 100, 50}}, wantField: "marks"},
		{name: "mark below range", rec: NewRecord{Roll: 3, Marks: []float64{-1, 90, 70, 60, 100}}, wantField: "marks[0]"},
		{name: "mark above range", rec: NewRecord{Roll: 3, Marks: []float64{80, 101, 70, 60, 100}}, wantField: "marks[1]"},
		{name: "duplicate roll", rec: NewRecord{Roll: 7, Marks: validMarks}, wantField: "roll"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate(svc)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v; want nil", err)
				}
				return
			}
			assertFieldError(t, err, tt.wantField)
		})
	}
}

func TestUpdateRecord_Validate(t *testing.T) {
	tests := []struct {
		name      string
		rec       UpdateRecord
		wantField string
	}{
		{name: "valid", rec: UpdateRecord{Marks: []float64{0, 100, 55.5, 60, 70}}},
		{name: "marks required", wantField: "marks"},
		{name: "wrong length", rec: UpdateRecord{Marks: []float64{80, 90, 70}}, wantField: "marks"},
		{name: "mark out of range", rec: UpdateRecord{Marks: []float64{80, 90, 70, 60, 100.5}}, wantField: "marks[4]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rec.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("Validate() error = %v; want nil", err)
				}
				return
			}
			assertFieldError(t, err, tt.wantField)
		})
	}
}

// assertFieldError fails unless err reports an error on the given field.
func assertFieldError(t *testing.T, err error, field string) {
	t.Helper()
	switch tErr := err.(type) {
	case validator.ValidationErrors:
		for _, fErr := range tErr {
			if fErr.Field() == field {
				return
			}
		}
	case *core.ValidationError:
		for _, fErr := range tErr.Fields {
			if fErr.Field == field {
				return
			}
		}
	default:
		t.Fatalf("Validate() unexpected error type %T: %v", err, err)
	}
	t.Errorf("Validate() error = %v; want error on field %q", err, field)
}
