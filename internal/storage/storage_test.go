package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/thedittmer/mlb-wire/internal/daterange"
	"github.com/thedittmer/mlb-wire/internal/models"
	"github.com/thedittmer/mlb-wire/internal/search"
)

func testArticles() []models.MatchedArticle {
	return []models.MatchedArticle{{
		Article: models.Article{
			Title:      "Dodgers acquire reliever",
			Link:       "https://example.com/a",
			Published:  time.Date(2025, 7, 15, 9, 30, 0, 0, time.UTC),
			FeedSource: "MLB.com",
		},
		MatchReason: "Matches team: Dodgers",
	}}
}

func TestSaveRunWritesJSON(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	res := search.Result{
		RunID: "run-1",
		Window: daterange.Window{
			Start:       time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
			End:         time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC),
			Description: "on July 14, 2025",
			TotalDays:   1,
		},
		Articles: testArticles(),
		Stats:    models.Stats{SourcesAttempted: 6, SourcesSuccessful: 6, UniqueArticles: 1},
	}

	path := filepath.Join(t.TempDir(), "out", "run.json")
	require.NoError(t, s.SaveRun(path, res))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got RunExport
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "run-1", got.RunID)
	assert.Equal(t, "on July 14, 2025", got.Window.Description)
	assert.Equal(t, 6, got.Stats.SourcesSuccessful)
	require.Len(t, got.Articles, 1)
	assert.Equal(t, "Matches team: Dodgers", got.Articles[0].MatchReason)
}

func TestNewRunExportEmptyArticles(t *testing.T) {
	exp := NewRunExport(search.Result{}, time.Now())
	data, err := json.Marshal(exp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"articles":[]`)
}

func TestSpreadsheetIDRoundTrip(t *testing.T) {
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.LoadSpreadsheetID()
	assert.Error(t, err)

	require.NoError(t, s.SaveSpreadsheetID("abc123"))
	id, err := s.LoadSpreadsheetID()
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
}

func TestArticleRows(t *testing.T) {
	exported := time.Date(2025, 7, 16, 8, 0, 0, 0, time.UTC)
	rows := articleRows(testArticles(), exported)

	require.Len(t, rows, 1)
	assert.Equal(t, []interface{}{
		"Dodgers acquire reliever",
		"https://example.com/a",
		"MLB.com",
		"2025-07-15 09:30:00",
		"Matches team: Dodgers",
		"2025-07-16 08:00:00",
	}, rows[0])
}

type sheetsRecorder struct {
	mu       sync.Mutex
	creates  int
	appends  []string
	appended []string
}

func newSheetsServer(t *testing.T, rec *sheetsRecorder) *sheets.Service {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		defer rec.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v4/spreadsheets":
			rec.creates++
			_, _ = io.WriteString(w, `{"spreadsheetId":"new-sheet"}`)
		case strings.HasSuffix(r.URL.Path, ":append"):
			rec.appends = append(rec.appends, r.URL.Path)
			rec.appended = append(rec.appended, string(body))
			_, _ = io.WriteString(w, `{}`)
		default:
			http.Error(w, "unexpected "+r.URL.Path, http.StatusNotFound)
		}
	}))
	t.Cleanup(ts.Close)

	srv, err := sheets.NewService(context.Background(),
		option.WithEndpoint(ts.URL+"/"),
		option.WithHTTPClient(ts.Client()),
	)
	require.NoError(t, err)
	return srv
}

func TestExportToSheetsCreatesAndRemembers(t *testing.T) {
	rec := &sheetsRecorder{}
	srv := newSheetsServer(t, rec)
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	res := s.ExportToSheets(context.Background(), srv, testArticles(), "")
	require.NoError(t, res.Error)
	assert.True(t, res.Created)
	assert.Equal(t, "new-sheet", res.SpreadsheetID)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/new-sheet/edit", res.URL)
	assert.Equal(t, 1, rec.creates)
	require.Len(t, rec.appended, 1)
	assert.Contains(t, rec.appended[0], "Match Reason")
	assert.Contains(t, rec.appended[0], "Dodgers acquire reliever")

	// second export reuses the remembered spreadsheet without a header
	res = s.ExportToSheets(context.Background(), srv, testArticles(), "")
	require.NoError(t, res.Error)
	assert.False(t, res.Created)
	assert.Equal(t, 1, rec.creates)
	require.Len(t, rec.appended, 2)
	assert.NotContains(t, rec.appended[1], "Match Reason")
	assert.Contains(t, rec.appends[1], "new-sheet")
}

func TestExportToSheetsExplicitID(t *testing.T) {
	rec := &sheetsRecorder{}
	srv := newSheetsServer(t, rec)
	s, err := NewStorage(t.TempDir())
	require.NoError(t, err)

	res := s.ExportToSheets(context.Background(), srv, testArticles(), "given")
	require.NoError(t, res.Error)
	assert.Equal(t, 0, rec.creates)
	require.Len(t, rec.appends, 1)
	assert.Contains(t, rec.appends[0], "/v4/spreadsheets/given/")
}

func TestSheetsClientMissingCredentials(t *testing.T) {
	_, err := SheetsClient(context.Background(), filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
