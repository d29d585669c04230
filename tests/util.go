package testutil

import (
	"testing"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/grade"
)

// PrepareConf puts the global configuration in test mode so apps under test
// behave like production (structured errors, no debug shortcuts).
func PrepareConf() {
	core.Conf.Debug = false
	core.Conf.TestMode = true
}

func CreateRecord(t *testing.T, repo grade.Repository, roll int, marks []float64) grade.Record {
	rec := grade.Record{
		Roll:  roll,
		Marks: marks,
	}
	rec.ComputeStats()
	rec, err := repo.CreateRecord(rec)
	if err != nil {
		t.Fatalf("createRecord() failed: %v", err)
	}
	return rec
}
