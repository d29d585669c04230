package dummydb

import (
	"sort"

	"github.com/trezcool/alama/core/grade"
)

type gradeRepository struct {
	db *gradeTable
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *DB) grade.Repository {
	return &gradeRepository{db: db.grades}
}

func (repo *gradeRepository) query() []grade.Record {
	records := make([]grade.Record, 0, len(repo.db.table))
	for _, rec := range repo.db.table {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Roll < records[j].Roll })
	return records
}

func (repo *gradeRepository) CheckRollUniqueness(roll int) error {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if _, ok := repo.db.table[roll]; ok {
		return grade.ErrRollExists
	}
	return nil
}

func (repo *gradeRepository) CreateRecord(rec grade.Record) (grade.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[rec.Roll]; ok {
		return grade.Record{}, grade.ErrRollExists
	}
	repo.db.table[rec.Roll] = &rec
	return rec, nil
}

func (repo *gradeRepository) QueryAllRecords() ([]grade.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *gradeRepository) GetRecordByRoll(roll int) (grade.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if rec, ok := repo.db.table[roll]; ok {
		return *rec, nil
	}
	return grade.Record{}, grade.ErrNotFound
}

func (repo *gradeRepository) UpdateRecord(rec grade.Record) (grade.Record, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[rec.Roll]; !ok {
		return grade.Record{}, grade.ErrNotFound
	}
	repo.db.table[rec.Roll] = &rec
	return rec, nil
}

func (repo *gradeRepository) DeleteRecordsByRoll(rolls ...int) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, roll := range rolls {
		if _, ok := repo.db.table[roll]; !ok {
			return grade.ErrNotFound
		}
	}
	for _, roll := range rolls {
		delete(repo.db.table, roll)
	}
	return nil
}
