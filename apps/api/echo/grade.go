package echoapi

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/grade"
)

var errInvalidRoll = "roll number must be a positive integer"

type gradeApi struct {
	svc grade.Service
}

func registerGradeAPI(g *echo.Group, svc grade.Service) {
	api := gradeApi{svc: svc}

	rg := g.Group("/records")
	rg.POST("", api.create)
	rg.GET("", api.query)
	rg.GET("/export", api.export)
	rg.GET("/report", api.report)
	rg.POST("/report/email", api.emailReport)

	// detail endpoints
	dg := rg.Group("/:roll")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update)
	dg.DELETE("", api.destroy)
}

// Handlers

func (api *gradeApi) create(ctx echo.Context) error {
	var data grade.NewRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRecord")
	}
	if err := data.Validate(api.svc); err != nil {
		return err
	}

	rec, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating record")
	}
	return ctx.JSON(http.StatusCreated, rec)
}

func (api *gradeApi) query(ctx echo.Context) error {
	records, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying records")
	}
	if records == nil {
		records = []grade.Record{}
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *gradeApi) retrieve(ctx echo.Context) error {
	roll, err := parseRoll(ctx)
	if err != nil {
		return err
	}

	rec, err := api.svc.GetByRoll(roll)
	if err != nil {
		if errors.Cause(err) == grade.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding record by roll")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *gradeApi) update(ctx echo.Context) error {
	roll, err := parseRoll(ctx)
	if err != nil {
		return err
	}

	var data grade.UpdateRecord
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateRecord")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	rec, err := api.svc.Update(roll, data)
	if err != nil {
		if errors.Cause(err) == grade.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating record")
	}
	return ctx.JSON(http.StatusOK, rec)
}

func (api *gradeApi) destroy(ctx echo.Context) error {
	roll, err := parseRoll(ctx)
	if err != nil {
		return err
	}

	if err := api.svc.Delete(roll); err != nil {
		if errors.Cause(err) == grade.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting record")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *gradeApi) export(ctx echo.Context) error {
	records, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying records")
	}

	var buff bytes.Buffer
	if err := grade.WriteCSV(&buff, records); err != nil {
		return errors.Wrap(err, "exporting records")
	}
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="grades.csv"`)
	return ctx.Blob(http.StatusOK, "text/csv", buff.Bytes())
}

func (api *gradeApi) report(ctx echo.Context) error {
	records, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying records")
	}

	var buff bytes.Buffer
	if err := grade.WriteReport(&buff, records); err != nil {
		return errors.Wrap(err, "building report")
	}
	return ctx.String(http.StatusOK, buff.String())
}

func (api *gradeApi) emailReport(ctx echo.Context) error {
	if err := api.svc.EmailReport(); err != nil {
		return errors.Wrap(err, "emailing report")
	}
	return ctx.JSON(http.StatusAccepted, SuccessResponse{
		Success: "The grade report is on its way to the configured recipients.",
	})
}

func parseRoll(ctx echo.Context) (int, error) {
	roll, err := strconv.Atoi(ctx.Param("roll"))
	if err != nil || roll < 1 {
		return 0, core.NewValidationError(nil, core.FieldError{Field: "roll", Error: errInvalidRoll})
	}
	return roll, nil
}

type SuccessResponse struct {
	Success string `json:"success"`
}
