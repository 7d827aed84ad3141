package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief"
	"github.com/ukaji3/dtcbrief-go/pkg/dtcbrief/output"
	"github.com/xuri/excelize/v2"
)

// workbookBytes renders an xlsx with the given sheets and cell values.
func workbookBytes(t *testing.T, sheets map[string]map[string]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for name, cells := range sheets {
		_, err := f.NewSheet(name)
		require.NoError(t, err)
		for cell, value := range cells {
			require.NoError(t, f.SetCellValue(name, cell, value))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func calendar(t *testing.T) []byte {
	return workbookBytes(t, map[string]map[string]string{
		"Wk6": {
			"B2": "Date of Send",
			"D2": "2/17/2025",
			"E2": "2/19/2025",
			"B6": "Campaign Name",
			"D6": "Spring Sale",
			"E6": "Team Spotlight",
		},
		"Wk7": {
			"B2": "Date of Send",
			"D2": "2/24/2025",
			"B6": "Campaign Name",
			"D6": "Spring Sale Week 2",
		},
	})
}

func uploadRequest(t *testing.T, path string, file []byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if file != nil {
		fw, err := mw.CreateFormFile("file", "calendar.xlsx")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newTestServer() *Server {
	opts := dtcbrief.DefaultOptions()
	opts.ReferenceYear = 2025
	return New(Config{Defaults: opts})
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := serve(newTestServer(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRequestIDPropagated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	w := serve(newTestServer(), req)
	assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
}

func TestWeeks(t *testing.T) {
	w := serve(newTestServer(), uploadRequest(t, "/api/weeks", calendar(t), nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp weeksResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "calendar.xlsx", resp.BookName)
	assert.Equal(t, []string{"Wk6", "Wk7"}, resp.Weeks)
}

func TestWeeksWithoutWeeklySheets(t *testing.T) {
	file := workbookBytes(t, map[string]map[string]string{"Template": {"A1": "x"}})
	w := serve(newTestServer(), uploadRequest(t, "/api/weeks", file, nil))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, weeklySheetHint, resp.Hint)
}

func TestConvertCSV(t *testing.T) {
	w := serve(newTestServer(), uploadRequest(t, "/api/convert", calendar(t), map[string]string{
		"brand": "tgw",
		"weeks": "Wk6",
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, `attachment; filename="TGW_ClickUp_Import.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", w.Header().Get(HeaderTaskCount))
	assert.Equal(t, "0", w.Header().Get(HeaderRejectionCount))

	tasks, err := output.ReadCSV(w.Body)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "[Week 6] Spring Sale", tasks[0].Name)
	assert.Equal(t, "TGW", tasks[0].Tags[0])
}

func TestConvertJSON(t *testing.T) {
	w := serve(newTestServer(), uploadRequest(t, "/api/convert", calendar(t), map[string]string{"format": "json"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var result struct {
		Brand string `json:"brand"`
		Stats struct {
			TotalTasks int `json:"total_tasks"`
		} `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "PB", result.Brand)
	assert.Equal(t, 3, result.Stats.TotalTasks)
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name   string
		file   []byte
		fields map[string]string
		status int
	}{
		{"missing file", nil, nil, http.StatusBadRequest},
		{"bad format", []byte("x"), map[string]string{"format": "xml"}, http.StatusBadRequest},
		{"not a workbook", []byte("not a workbook"), nil, http.StatusUnprocessableEntity},
		{"unknown brand", nil, map[string]string{"brand": "XYZ"}, http.StatusBadRequest},
		{"unknown week", nil, map[string]string{"weeks": "Wk6,Wk40"}, http.StatusBadRequest},
		{"bad launches flag", nil, map[string]string{"launches": "yes"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := tt.file
			if file == nil && tt.name != "missing file" {
				file = calendar(t)
			}
			w := serve(newTestServer(), uploadRequest(t, "/api/convert", file, tt.fields))
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestConvertLaunchesFlag(t *testing.T) {
	file := workbookBytes(t, map[string]map[string]string{
		"Wk6": {
			"B2": "Date of Send",
			"D2": "2/17/2025",
			"B6": "Campaign Name",
			"D6": "Spring Sale",
		},
		"Product Launch Calendar": {
			"A1": "Description",
			"B1": "Launch Date",
			"A2": "Home Jersey 2025",
			"B2": "3/1/2025",
		},
	})

	w := serve(newTestServer(), uploadRequest(t, "/api/convert", file, map[string]string{"launches": "true"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "2", w.Header().Get(HeaderTaskCount))

	w = serve(newTestServer(), uploadRequest(t, "/api/convert", file, map[string]string{"launches": "false"}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "1", w.Header().Get(HeaderTaskCount))
}

func TestUploadLimit(t *testing.T) {
	opts := dtcbrief.DefaultOptions()
	s := New(Config{MaxUploadBytes: 64, Defaults: opts})
	w := serve(s, uploadRequest(t, "/api/weeks", calendar(t), nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
