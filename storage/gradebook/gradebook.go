// Package gradebook implements grade.Repository on top of a single flat
// file, in either JSON or CSV format. The whole book is kept in memory and
// written back on every mutation.
package gradebook

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/alama/core/grade"
)

// Format selects the on-disk encoding of the gradebook file.
type Format string

const (
	JSON Format = "json"
	CSV  Format = "csv"
)

type codec interface {
	encode(records []grade.Record) ([]byte, error)
	decode(data []byte) ([]grade.Record, error)
}

type repository struct {
	mu      sync.RWMutex
	path    string
	codec   codec
	records map[int]*grade.Record
}

var _ grade.Repository = (*repository)(nil) // interface compliance check

// Open loads the gradebook file at path into memory and returns a
// grade.Repository backed by it. A missing or empty file is treated as an
// empty book; a corrupt one starts empty as well and is only overwritten
// on the next successful save.
func Open(format Format, path string) (grade.Repository, error) {
	var c codec
	switch format {
	case JSON:
		c = jsonCodec{}
	case CSV:
		c = csvCodec{}
	default:
		return nil, errors.Errorf("unsupported gradebook format %q", format)
	}

	repo := &repository{
		path:    path,
		codec:   c,
		records: make(map[int]*grade.Record),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (repo *repository) load() error {
	data, err := ioutil.ReadFile(repo.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "reading gradebook")
	}
	if len(data) == 0 {
		return nil
	}

	records, err := repo.codec.decode(data)
	if err != nil {
		log.Printf("gradebook: corrupt file %s, starting empty: %v", repo.path, err)
		return nil
	}
	for _, rec := range records {
		rec := rec
		rec.ComputeStats() // stored totals are not trusted
		if _, ok := repo.records[rec.Roll]; ok {
			log.Printf("gradebook: duplicate roll %d, keeping the last entry", rec.Roll)
		}
		repo.records[rec.Roll] = &rec
	}
	return nil
}

// save rewrites the backing file; callers must hold the write lock.
// The file is replaced atomically so a failed write never clobbers it.
func (repo *repository) save() error {
	data, err := repo.codec.encode(repo.all())
	if err != nil {
		return errors.Wrap(err, "encoding gradebook")
	}
	tmp := repo.path + ".tmp"
	if err := ioutil.WriteFile(tmp, data, 0644); err != nil {
		return errors.Wrap(err, "writing gradebook")
	}
	if err := os.Rename(tmp, repo.path); err != nil {
		return errors.Wrap(err, "writing gradebook")
	}
	return nil
}

func (repo *repository) all() []grade.Record {
	records := make([]grade.Record, 0, len(repo.records))
	for _, rec := range repo.records {
		records = append(records, *rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Roll < records[j].Roll })
	return records
}

func (repo *repository) CheckRollUniqueness(roll int) error {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if _, ok := repo.records[roll]; ok {
		return grade.ErrRollExists
	}
	return nil
}

func (repo *repository) CreateRecord(rec grade.Record) (grade.Record, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.records[rec.Roll]; ok {
		return grade.Record{}, grade.ErrRollExists
	}
	repo.records[rec.Roll] = &rec
	if err := repo.save(); err != nil {
		return grade.Record{}, err
	}
	return rec, nil
}

func (repo *repository) QueryAllRecords() ([]grade.Record, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return repo.all(), nil
}

func (repo *repository) GetRecordByRoll(roll int) (grade.Record, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	if rec, ok := repo.records[roll]; ok {
		return *rec, nil
	}
	return grade.Record{}, grade.ErrNotFound
}

func (repo *repository) UpdateRecord(rec grade.Record) (grade.Record, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, ok := repo.records[rec.Roll]; !ok {
		return grade.Record{}, grade.ErrNotFound
	}
	repo.records[rec.Roll] = &rec
	if err := repo.save(); err != nil {
		return grade.Record{}, err
	}
	return rec, nil
}

func (repo *repository) DeleteRecordsByRoll(rolls ...int) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, roll := range rolls {
		if _, ok := repo.records[roll]; !ok {
			return grade.ErrNotFound
		}
	}
	for _, roll := range rolls {
		delete(repo.records, roll)
	}
	return repo.save()
}

func checkMarks(marks []float64) error {
	if len(marks) != grade.NumSubjects {
		return fmt.Errorf("expected %d marks, got %d", grade.NumSubjects, len(marks))
	}
	for _, m := range marks {
		if m < 0 || m > 100 {
			return fmt.Errorf("mark %v is not between 0 and 100", m)
		}
	}
	return nil
}
