package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/grade"
	emailsvc "github.com/trezcool/alama/services/email"
	logsvc "github.com/trezcool/alama/services/logger"
	"github.com/trezcool/alama/storage/gradebook"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)
	defer emailsvc.Wait()

	logger = log.New(os.Stdout, "CLI : ", log.LstdFlags)

	// set up storage
	repo, err := gradebook.Open(gradebook.Format(core.Conf.Gradebook.Format), core.Conf.GradebookPath())
	errAndDie(err)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		rlogger := logsvc.NewRollbarLogger(logger)
		rlogger.Enable(true)
		mailSvc = emailsvc.NewSendgridService(rlogger)
	}
	grdSvc := grade.NewService(repo, mailSvc)

	// start CLI
	cli := commandLine{
		grdSvc: grdSvc,
		out:    os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", translateErr(err))
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}

// translateErr renders validation errors in a human friendly form.
func translateErr(err error) string {
	switch tErr := pkgerrors.Cause(err).(type) {
	case validator.ValidationErrors:
		parts := make([]string, 0, len(tErr))
		for _, vErr := range tErr {
			parts = append(parts, fmt.Sprintf("%s: %s", vErr.Field(), vErr.Translate(core.Translator)))
		}
		return strings.Join(parts, "; ")
	case *core.ValidationError:
		if tErr.Fields != nil {
			parts := make([]string, 0, len(tErr.Fields))
			for _, fErr := range tErr.Fields {
				parts = append(parts, fmt.Sprintf("%s: %s", fErr.Field, fErr.Error))
			}
			return strings.Join(parts, "; ")
		}
		return tErr.Error()
	}
	return err.Error()
}
