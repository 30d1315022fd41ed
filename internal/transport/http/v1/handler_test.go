package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/xiaot623/gogo/venueboard/internal/config"
	"github.com/xiaot623/gogo/venueboard/internal/domain"
	"github.com/xiaot623/gogo/venueboard/internal/service"
	"github.com/xiaot623/gogo/venueboard/internal/testutil"
)

func newTestHandler(t *testing.T) (*Handler, *service.Service) {
	t.Helper()
	compiled, err := config.DefaultPipeline().Compile(context.Background(), time.UTC, nil)
	require.NoError(t, err)
	svc := service.New(testutil.NewTestSQLiteStore(t), compiled, nil, nil)
	return NewHandler(svc), svc
}

func seed(t *testing.T, svc *service.Service) {
	t.Helper()
	_, err := svc.ImportRows(context.Background(), "seed", []domain.RawRow{
		{
			domain.ColumnMatchcode:  "A/1",
			domain.ColumnStart:      45000.0,
			domain.ColumnEventStart: 45001.0,
			domain.ColumnEventEnd:   45002.0,
			domain.ColumnEnd:        45003.0,
			domain.ColumnHalls:      "H1",
		},
	})
	require.NoError(t, err)
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestHealth(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)
	require.NoError(t, h.Health(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestImportRows(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	t.Run("success", func(t *testing.T) {
		body := `{"source":"ops","rows":[
			{"MATCHCODE":"A/1","Beginn Mantelzeit":45000,"Ende Mantelzeit":45003},
			{"MATCHCODE":"W","Veranstaltungsart":"Wartung","Beginn Mantelzeit":45000}
		]}`
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/v1/datasets/rows", body), rec)

		require.NoError(t, h.ImportRows(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp service.Summary
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "ops", resp.Source)
		assert.Equal(t, 1, resp.Records)
		assert.Len(t, resp.Excluded, 1)
	})

	t.Run("missing rows", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/v1/datasets/rows", `{}`), rec)
		require.NoError(t, h.ImportRows(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed row", func(t *testing.T) {
		body := `{"rows":[{"MATCHCODE":"A","Beginn Mantelzeit":"gestern"}]}`
		rec := httptest.NewRecorder()
		c := e.NewContext(jsonRequest(http.MethodPost, "/v1/datasets/rows", body), rec)
		require.NoError(t, h.ImportRows(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "row 0")
	})
}

func TestUploadSpreadsheet(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{domain.ColumnMatchcode, domain.ColumnStart, domain.ColumnEnd}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"X/9", 45000, 45002}))
	wb, err := f.WriteToBuffer()
	require.NoError(t, err)
	f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "belegung.xlsx")
	require.NoError(t, err)
	_, err = part.Write(wb.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/datasets/upload", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.UploadSpreadsheet(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp service.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "belegung.xlsx", resp.Source)
	assert.Equal(t, 1, resp.Records)
}

func TestUploadSpreadsheetMissingFile(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/datasets/upload", nil), rec)
	require.NoError(t, h.UploadSpreadsheet(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSnapshotExportAndImport(t *testing.T) {
	e := echo.New()
	h, svc := newTestHandler(t)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/datasets/snapshot", nil), rec)
	require.NoError(t, h.ExportSnapshot(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	seed(t, svc)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/datasets/snapshot", nil), rec)
	require.NoError(t, h.ExportSnapshot(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")
	snapshot := rec.Body.String()
	assert.Contains(t, snapshot, `"id": "A-bs-1"`)

	rec = httptest.NewRecorder()
	c = e.NewContext(jsonRequest(http.MethodPost, "/v1/datasets/snapshot?source=backup.json", snapshot), rec)
	require.NoError(t, h.ImportSnapshot(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp service.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "backup.json", resp.Source)
	assert.Equal(t, service.FormatSnapshot, resp.Format)
	assert.Equal(t, 1, resp.Records)
}

func TestGetCurrentDatasetAndImports(t *testing.T) {
	e := echo.New()
	h, svc := newTestHandler(t)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/datasets/current", nil), rec)
	require.NoError(t, h.GetCurrentDataset(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	seed(t, svc)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/datasets/current", nil), rec)
	require.NoError(t, h.GetCurrentDataset(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"source":"seed"`)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/imports?limit=5", nil), rec)
	require.NoError(t, h.ListImports(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Imports []domain.Import `json:"imports"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Imports, 1)
	assert.Equal(t, "seed", resp.Imports[0].Source)
}

func TestEvents(t *testing.T) {
	e := echo.New()
	h, svc := newTestHandler(t)
	seed(t, svc)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/events", nil), rec)
	require.NoError(t, h.ListEvents(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Events []domain.ChartTask `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Events, 1)
	assert.Equal(t, "A-bs-1", list.Events[0].ID)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/events/A-bs-1", nil), rec)
	c.SetParamNames("event_id")
	c.SetParamValues("A-bs-1")
	require.NoError(t, h.GetEvent(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got domain.EventRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []string{"H1"}, got.Halls)
	assert.Equal(t, (3 * 24 * time.Hour).Milliseconds(), got.Times.Duration)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/events/A-bs-1/gradients", nil), rec)
	c.SetParamNames("event_id")
	c.SetParamValues("A-bs-1")
	require.NoError(t, h.GetEventGradients(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var g domain.Gradients
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	assert.Len(t, g.Plan, 6)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/events/nope", nil), rec)
	c.SetParamNames("event_id")
	c.SetParamValues("nope")
	require.NoError(t, h.GetEvent(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTodoLifecycle(t *testing.T) {
	e := echo.New()
	h, svc := newTestHandler(t)
	seed(t, svc)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/events/A-bs-1/todos", `{"text":"Bühne prüfen"}`), rec)
	c.SetParamNames("event_id")
	c.SetParamValues("A-bs-1")
	require.NoError(t, h.CreateTodo(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var todo domain.Todo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todo))
	assert.Equal(t, "Bühne prüfen", todo.Text)

	rec = httptest.NewRecorder()
	c = e.NewContext(jsonRequest(http.MethodPatch, "/v1/todos/"+todo.TodoID, `{"done":true}`), rec)
	c.SetParamNames("todo_id")
	c.SetParamValues(todo.TodoID)
	require.NoError(t, h.UpdateTodo(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todo))
	assert.True(t, todo.Done)
	assert.Equal(t, "Bühne prüfen", todo.Text)

	rec = httptest.NewRecorder()
	c = e.NewContext(jsonRequest(http.MethodPatch, "/v1/todos/"+todo.TodoID, `{}`), rec)
	c.SetParamNames("todo_id")
	c.SetParamValues(todo.TodoID)
	require.NoError(t, h.UpdateTodo(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/v1/todos/"+todo.TodoID+"/toggle", nil), rec)
	c.SetParamNames("todo_id")
	c.SetParamValues(todo.TodoID)
	require.NoError(t, h.ToggleTodo(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &todo))
	assert.False(t, todo.Done)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/events/A-bs-1/todos", nil), rec)
	c.SetParamNames("event_id")
	c.SetParamValues("A-bs-1")
	require.NoError(t, h.ListTodos(c))
	var list struct {
		Todos []domain.Todo `json:"todos"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Todos, 1)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodDelete, "/v1/todos/"+todo.TodoID, nil), rec)
	c.SetParamNames("todo_id")
	c.SetParamValues(todo.TodoID)
	require.NoError(t, h.DeleteTodo(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodDelete, "/v1/todos/"+todo.TodoID, nil), rec)
	c.SetParamNames("todo_id")
	c.SetParamValues(todo.TodoID)
	require.NoError(t, h.DeleteTodo(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateTodoUnknownEvent(t *testing.T) {
	e := echo.New()
	h, svc := newTestHandler(t)
	seed(t, svc)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPost, "/v1/events/nope/todos", `{"text":"x"}`), rec)
	c.SetParamNames("event_id")
	c.SetParamValues("nope")
	require.NoError(t, h.CreateTodo(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestErrorStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, errorStatus(domain.ErrNoDataset))
	assert.Equal(t, http.StatusUnprocessableEntity, errorStatus(&domain.RowError{Row: 2, Err: domain.ErrMalformedValue}))
	assert.Equal(t, http.StatusInternalServerError, errorStatus(&domain.RowError{Row: 2, Err: domain.ErrPredicateFailed}))
	assert.Equal(t, http.StatusInternalServerError, errorStatus(context.DeadlineExceeded))
}
