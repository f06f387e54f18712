package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldtrak/fieldtrak/modules/takeoff/services"
	"github.com/fieldtrak/fieldtrak/pkg/configuration"
)

func testRouter(t *testing.T) *mux.Router {
	t.Helper()
	limits := configuration.ImportOptions{
		MaxFileSize:     1 << 20,
		MaxRows:         100,
		MaxPayloadBytes: 256,
		BatchSize:       50,
		YieldEvery:      10,
		SampleSize:      5,
	}
	parser := services.NewParseService(limits)
	previews := services.NewPreviewService(parser, nil, nil, nil, limits)
	imports := services.NewImportService(nil, nil, nil, nil, nil, limits)

	r := mux.NewRouter()
	NewImportController(previews, imports, limits).Register(r)
	return r
}

func TestImportController_BadProjectID(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/takeoff/projects/not-a-uuid/imports", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_BAD_PROJECT_ID")
}

func TestImportController_PreviewRequiresFileField(t *testing.T) {
	r := testRouter(t)

	var body bytes.Buffer
	req := httptest.NewRequest(http.MethodPost, "/takeoff/projects/1b4e28ba-2fa1-11d2-883f-0016d3cca427/imports/preview", &body)
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportController_ExecuteRejectsBadJSON(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/takeoff/projects/1b4e28ba-2fa1-11d2-883f-0016d3cca427/imports", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_BAD_JSON")
}

func TestImportController_ExecuteRejectsEmptyRows(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/takeoff/projects/1b4e28ba-2fa1-11d2-883f-0016d3cca427/imports", strings.NewReader(`{"rows":[]}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_INVALID_PAYLOAD")
}

func TestImportController_ExecuteRejectsOversizedPayload(t *testing.T) {
	r := testRouter(t)

	big := `{"rows":[` + strings.Repeat(`{"row":1},`, 100) + `{"row":2}]}`
	require.Greater(t, len(big), 256)

	req := httptest.NewRequest(http.MethodPost, "/takeoff/projects/1b4e28ba-2fa1-11d2-883f-0016d3cca427/imports", strings.NewReader(big))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
