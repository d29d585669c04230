package grade

import (
	"errors"

	"github.com/trezcool/alama/core"
)

var (
	// errors
	ErrNotFound   = errors.New("record not found")
	ErrRollExists = errors.New("a record with this roll number already exists")
)

type (
	Repository interface {
		CheckRollUniqueness(roll int) error
		CreateRecord(rec Record) (Record, error)
		// QueryAllRecords returns all records sorted by roll number in ascending order.
		QueryAllRecords() ([]Record, error)
		GetRecordByRoll(roll int) (Record, error)
		UpdateRecord(rec Record) (Record, error)
		DeleteRecordsByRoll(rolls ...int) error
	}

	Service interface {
		CheckUniqueness(roll int) error
		Create(nr NewRecord) (Record, error)
		QueryAll() ([]Record, error)
		GetByRoll(roll int) (Record, error)
		Update(roll int, ur UpdateRecord) (Record, error)
		Delete(rolls ...int) error
		// EmailReport mails the grade report to the configured recipients.
		// Delivery happens in the background.
		EmailReport() error
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService) Service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
	}
}

func (svc *service) CheckUniqueness(roll int) error {
	if err := svc.repo.CheckRollUniqueness(roll); err != nil {
		if err == ErrRollExists {
			return core.NewValidationError(err, core.FieldError{Field: "roll", Error: err.Error()})
		}
		return err
	}
	return nil
}

func (svc *service) Create(nr NewRecord) (Record, error) {
	rec := Record{
		Roll:  nr.Roll,
		Marks: nr.Marks,
	}
	rec.ComputeStats()
	return svc.repo.CreateRecord(rec)
}

func (svc *service) QueryAll() ([]Record, error) {
	return svc.repo.QueryAllRecords()
}

func (svc *service) GetByRoll(roll int) (Record, error) {
	return svc.repo.GetRecordByRoll(roll)
}

func (svc *service) Update(roll int, ur UpdateRecord) (Record, error) {
	rec := Record{
		Roll:  roll,
		Marks: ur.Marks,
	}
	rec.ComputeStats()
	return svc.repo.UpdateRecord(rec)
}

func (svc *service) Delete(rolls ...int) error {
	return svc.repo.DeleteRecordsByRoll(rolls...)
}

func (svc *service) EmailReport() error {
	records, err := svc.repo.QueryAllRecords()
	if err != nil {
		return err
	}
	msg, err := NewReportEmail(records)
	if err != nil {
		return err
	}
	svc.mailSvc.SendMessages(msg)
	return nil
}
