package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/thedittmer/mlb-wire/internal/logger"
	"github.com/thedittmer/mlb-wire/internal/models"
)

const (
	sheetName       = "Articles"
	spreadsheetFile = "spreadsheet.json"
	rowTimeFormat   = "2006-01-02 15:04:05"
)

var sheetHeader = []interface{}{
	"Title", "Link", "Source", "Published Date", "Match Reason", "Exported Date",
}

type ExportResult struct {
	SpreadsheetID string
	URL           string
	Created       bool
	Rows          int
	Error         error
}

// SheetsClient builds a Sheets service from a service account key file.
func SheetsClient(ctx context.Context, credentialsFile string) (*sheets.Service, error) {
	credentials, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}
	jwt, err := google.JWTConfigFromJSON(credentials, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets client: %w", err)
	}
	return srv, nil
}

// ExportToSheets appends articles to spreadsheetID. An empty ID reuses the
// last spreadsheet this data directory exported to, and creates a new one
// when there is none.
func (s *Storage) ExportToSheets(ctx context.Context, srv *sheets.Service, articles []models.MatchedArticle, spreadsheetID string) ExportResult {
	if spreadsheetID == "" {
		if id, err := s.LoadSpreadsheetID(); err == nil {
			spreadsheetID = id
		}
	}

	created := false
	if spreadsheetID == "" {
		id, err := createSpreadsheet(ctx, srv, time.Now())
		if err != nil {
			return ExportResult{Error: err}
		}
		spreadsheetID, created = id, true
		if err := s.SaveSpreadsheetID(spreadsheetID); err != nil {
			return ExportResult{Error: fmt.Errorf("failed to save spreadsheet ID: %w", err)}
		}
	}

	values := articleRows(articles, time.Now())
	if created {
		values = append([][]interface{}{sheetHeader}, values...)
	}

	if len(values) > 0 {
		_, err := srv.Spreadsheets.Values.Append(spreadsheetID, sheetName+"!A1", &sheets.ValueRange{Values: values}).
			ValueInputOption("RAW").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).
			Do()
		if err != nil {
			return ExportResult{Error: fmt.Errorf("unable to update spreadsheet: %w", err)}
		}
	}

	logger.Infof("exported %d articles to spreadsheet %s", len(articles), spreadsheetID)
	return ExportResult{
		SpreadsheetID: spreadsheetID,
		URL:           fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/edit", spreadsheetID),
		Created:       created,
		Rows:          len(articles),
	}
}

// createSpreadsheet makes a new spreadsheet with a frozen header row.
func createSpreadsheet(ctx context.Context, srv *sheets.Service, now time.Time) (string, error) {
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: "MLB Wire Articles - " + now.Format("2006-01-02-15-04-05"),
		},
		Sheets: []*sheets.Sheet{{
			Properties: &sheets.SheetProperties{
				Title:          sheetName,
				GridProperties: &sheets.GridProperties{FrozenRowCount: 1},
			},
		}},
	}

	spreadsheet, err := srv.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}
	if spreadsheet.SpreadsheetId == "" {
		return "", errors.New("spreadsheet created without an id")
	}
	return spreadsheet.SpreadsheetId, nil
}

func articleRows(articles []models.MatchedArticle, exported time.Time) [][]interface{} {
	rows := make([][]interface{}, 0, len(articles))
	for _, a := range articles {
		rows = append(rows, []interface{}{
			a.Title,
			a.Link,
			a.FeedSource,
			a.Published.Format(rowTimeFormat),
			a.MatchReason,
			exported.Format(rowTimeFormat),
		})
	}
	return rows
}

func (s *Storage) SaveSpreadsheetID(id string) error {
	path := filepath.Join(s.dataDir, spreadsheetFile)
	jsonData, err := json.MarshalIndent(map[string]string{"id": id}, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling spreadsheet ID: %w", err)
	}
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("error saving spreadsheet ID: %w", err)
	}
	return nil
}

func (s *Storage) LoadSpreadsheetID() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dataDir, spreadsheetFile))
	if err != nil {
		return "", fmt.Errorf("error reading spreadsheet ID: %w", err)
	}
	var saved map[string]string
	if err := json.Unmarshal(data, &saved); err != nil {
		return "", fmt.Errorf("error parsing spreadsheet ID: %w", err)
	}
	return saved["id"], nil
}
