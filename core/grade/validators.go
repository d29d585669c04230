package grade

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/alama/core"
)

var (
	marksLenTag  = "markslen"
	marksLenText = fmt.Sprintf("exactly %d marks are required, one per subject", NumSubjects)

	markRangeTag  = "markrange"
	markRangeText = "marks must be between 0 and 100"
)

func init() {
	core.Validate.RegisterStructValidation(recordStructValidation, NewRecord{})
	core.Validate.RegisterStructValidation(recordStructValidation, UpdateRecord{})
	core.RegisterCustomTranslation(marksLenTag, marksLenText)
	core.RegisterCustomTranslation(markRangeTag, markRangeText)
}

// recordStructValidation does struct level validation on NewRecord and UpdateRecord structs.
func recordStructValidation(sl validator.StructLevel) {
	switch rec := sl.Current().Interface().(type) {
	case NewRecord:
		validateMarks(rec.Marks, sl)
	case UpdateRecord:
		validateMarks(rec.Marks, sl)
	}
}

// validateMarks checks that one mark per subject is provided, each on the 0-100 scale.
// Out-of-range errors are reported per failing index so callers can point at the exact subject.
func validateMarks(marks []float64, sl validator.StructLevel) {
	if len(marks) != NumSubjects {
		sl.ReportError(marks, "marks", "Marks", marksLenTag, "")
		return
	}
	for i, m := range marks {
		if m < 0 || m > 100 {
			sl.ReportError(m, fmt.Sprintf("marks[%d]", i), fmt.Sprintf("Marks[%d]", i), markRangeTag, "")
		}
	}
}
