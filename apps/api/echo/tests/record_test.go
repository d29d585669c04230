package tests

import (
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	echoapi "github.com/trezcool/alama/apps/api/echo"
	"github.com/trezcool/alama/core"
	"github.com/trezcool/alama/core/grade"
	emailsvc "github.com/trezcool/alama/services/email"
	testutil "github.com/trezcool/alama/tests"
)

var validMarks = []float64{80, 90, 70, 60, 100}

func Test_home(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
	}
	if want := "Welcome to Alama API!"; rec.Body.String() != want {
		t.Errorf("failed! data = %q; wantData %q", rec.Body.String(), want)
	}
}

func Test_gradeApi_create(t *testing.T) {
	app := setup(t)

	testutil.CreateRecord(t, grdRepo, 200, []float64{50, 50, 50, 50, 50})
	wantRec := grade.Record{Roll: 101, Marks: validMarks, Total: 400, Average: 80}

	tests := []httpTest{
		{
			name: "empty body", wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "Request body can't be empty"}),
		},
		{
			name: "required fields", wantCode: http.StatusBadRequest, body: marchallObj(t, echo.Map{}),
			wantData: marchallObj(t, echo.Map{
				"roll":  "this field is required",
				"marks": "exactly 5 marks are required, one per subject",
			}),
		},
		{
			name: "negative roll", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, grade.NewRecord{Roll: -1, Marks: validMarks}),
			wantData: marchallObj(t, echo.Map{"roll": "roll must be 1 or greater"}),
		},
		{
			name: "too few marks", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, grade.NewRecord{Roll: 101, Marks: []float64{80, 90}}),
			wantData: marchallObj(t, echo.Map{"marks": "exactly 5 marks are required, one per subject"}),
		},
		{
			name: "mark out of range", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, grade.NewRecord{Roll: 101, Marks: []float64{80, 101, 70, 60, 100}}),
			wantData: marchallObj(t, echo.Map{"marks[1]": "marks must be between 0 and 100"}),
		},
		{
			name: "duplicate roll", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, grade.NewRecord{Roll: 200, Marks: validMarks}),
			wantData: marchallObj(t, echo.Map{"roll": "a record with this roll number already exists"}),
		},
		{
			name: "ok", wantCode: http.StatusCreated,
			body:     marchallObj(t, grade.NewRecord{Roll: 101, Marks: validMarks}),
			wantData: marchallObj(t, wantRec),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/records"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// the new record must be persisted
	rec, err := grdRepo.GetRecordByRoll(101)
	if err != nil {
		t.Fatalf("GetRecordByRoll() failed: %v", err)
	}
	if rec.Total != 400 || rec.Average != 80 {
		t.Errorf("failed! stats = (%v, %v); want (400, 80)", rec.Total, rec.Average)
	}
}

func Test_gradeApi_query(t *testing.T) {
	app := setup(t)

	empty := marchallList(t, []interface{}{}...)
	req, rec := newRequest(http.MethodGet, "/v1/records")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{name: "empty book", wantCode: http.StatusOK, wantData: empty}, rec)

	// records come back sorted by roll
	rec103 := testutil.CreateRecord(t, grdRepo, 103, []float64{50, 50, 50, 50, 50})
	rec101 := testutil.CreateRecord(t, grdRepo, 101, validMarks)
	rec102 := testutil.CreateRecord(t, grdRepo, 102, []float64{70, 70, 70, 70, 70})

	req, rec2 := newRequest(http.MethodGet, "/v1/records")
	app.ServeHTTP(rec2, req)
	checkCodeAndData(t, httpTest{
		name: "all records", wantCode: http.StatusOK,
		wantData: marchallList(t, rec101, rec102, rec103),
	}, rec2)
}

func Test_gradeApi_retrieve(t *testing.T) {
	app := setup(t)

	rec101 := testutil.CreateRecord(t, grdRepo, 101, validMarks)
	errInvalidRoll := marchallObj(t, echo.Map{"roll": "roll number must be a positive integer"})

	tests := []httpTest{
		{name: "not found", path: "/v1/records/404", wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)},
		{name: "invalid roll", path: "/v1/records/abc", wantCode: http.StatusBadRequest, wantData: errInvalidRoll},
		{name: "zero roll", path: "/v1/records/0", wantCode: http.StatusBadRequest, wantData: errInvalidRoll},
		{name: "ok", path: "/v1/records/101", wantCode: http.StatusOK, wantData: marchallObj(t, rec101)},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_gradeApi_update(t *testing.T) {
	app := setup(t)

	testutil.CreateRecord(t, grdRepo, 101, validMarks)
	newMarks := []float64{90, 90, 90, 90, 90}
	wantRec := grade.Record{Roll: 101, Marks: newMarks, Total: 450, Average: 90}

	tests := []httpTest{
		{
			name: "not found", path: "/v1/records/404", wantCode: http.StatusNotFound,
			body: marchallObj(t, grade.UpdateRecord{Marks: newMarks}), wantData: marchallObj(t, errNotFound),
		},
		{
			name: "mark out of range", path: "/v1/records/101", wantCode: http.StatusBadRequest,
			body:     marchallObj(t, grade.UpdateRecord{Marks: []float64{90, 90, 90, 90, -1}}),
			wantData: marchallObj(t, echo.Map{"marks[4]": "marks must be between 0 and 100"}),
		},
		{
			name: "ok", path: "/v1/records/101", wantCode: http.StatusOK,
			body: marchallObj(t, grade.UpdateRecord{Marks: newMarks}), wantData: marchallObj(t, wantRec),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPut

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	rec, err := grdRepo.GetRecordByRoll(101)
	if err != nil {
		t.Fatalf("GetRecordByRoll() failed: %v", err)
	}
	if rec.Total != 450 {
		t.Errorf("failed! Total = %v; want 450", rec.Total)
	}
}

func Test_gradeApi_destroy(t *testing.T) {
	app := setup(t)

	testutil.CreateRecord(t, grdRepo, 101, validMarks)

	req, rec := newRequest(http.MethodDelete, "/v1/records/404")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{name: "not found", wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)

	req, rec = newRequest(http.MethodDelete, "/v1/records/101")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("failed! data = %q; want empty body", rec.Body.String())
	}
	if _, err := grdRepo.GetRecordByRoll(101); err != grade.ErrNotFound {
		t.Errorf("GetRecordByRoll() error = %v; want %v", err, grade.ErrNotFound)
	}
}

func Test_gradeApi_export(t *testing.T) {
	app := setup(t)

	testutil.CreateRecord(t, grdRepo, 101, validMarks)

	req, rec := newRequest(http.MethodGet, "/v1/records/export")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/csv" {
		t.Errorf("failed! Content-Type = %q; want \"text/csv\"", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); cd != `attachment; filename="grades.csv"` {
		t.Errorf("failed! Content-Disposition = %q", cd)
	}
	want := "Roll,Subject1,Subject2,Subject3,Subject4,Subject5,Total,Average\n101,80,90,70,60,100,400,80.0\n"
	if rec.Body.String() != want {
		t.Errorf("failed! data = %q; wantData %q", rec.Body.String(), want)
	}
}

func Test_gradeApi_report(t *testing.T) {
	app := setup(t)

	testutil.CreateRecord(t, grdRepo, 101, validMarks)

	req, rec := newRequest(http.MethodGet, "/v1/records/report")
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
	}
	got := rec.Body.String()
	for _, want := range []string{"Roll", "Subject1", "101", "400.00", "80.00", "1 record(s)"} {
		if !strings.Contains(got, want) {
			t.Errorf("failed! report does not contain %q:\n%s", want, got)
		}
	}
}

func Test_gradeApi_emailReport(t *testing.T) {
	app := setup(t)

	origRecipients := core.Conf.ReportRecipients
	core.Conf.ReportRecipients = []string{"staff@alama.test"}
	defer func() { core.Conf.ReportRecipients = origRecipients }()

	testutil.CreateRecord(t, grdRepo, 101, validMarks)

	emailsvc.SentMessages = nil // reset
	req, rec := newRequest(http.MethodPost, "/v1/records/report/email")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		name: "accepted", wantCode: http.StatusAccepted,
		wantData: marchallObj(t, echoapi.SuccessResponse{Success: "The grade report is on its way to the configured recipients."}),
	}, rec)

	if len(emailsvc.SentMessages) != 1 {
		t.Fatalf("failed! len(SentMessages) = %d; want 1", len(emailsvc.SentMessages))
	}
	msg := emailsvc.SentMessages[0]
	if msg.Subject != "Grade Report" {
		t.Errorf("failed! Subject = %q; want \"Grade Report\"", msg.Subject)
	}
	if msg.To[0].Address != "staff@alama.test" {
		t.Errorf("failed! To = %v", msg.To)
	}
	if !msg.HasAttachments() {
		t.Error("failed! message has no attachments; want the CSV export")
	}
}
