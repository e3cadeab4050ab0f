package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/thedittmer/mlb-wire/internal/logger"
	"github.com/thedittmer/mlb-wire/internal/models"
	"github.com/thedittmer/mlb-wire/internal/search"
)

// Storage owns the data directory used for exports.
type Storage struct {
	dataDir string
}

// NewStorage creates dataDir if needed.
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return &Storage{dataDir: dataDir}, nil
}

// RunExport is the JSON document written for one search run.
type RunExport struct {
	RunID       string                  `json:"run_id"`
	GeneratedAt time.Time               `json:"generated_at"`
	Window      WindowExport            `json:"window"`
	Stats       models.Stats            `json:"stats"`
	Articles    []models.MatchedArticle `json:"articles"`
}

type WindowExport struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Description string    `json:"description"`
	TotalDays   int       `json:"total_days"`
}

// NewRunExport snapshots res.
func NewRunExport(res search.Result, now time.Time) RunExport {
	articles := res.Articles
	if articles == nil {
		articles = []models.MatchedArticle{}
	}
	return RunExport{
		RunID:       res.RunID,
		GeneratedAt: now,
		Window: WindowExport{
			Start:       res.Window.Start,
			End:         res.Window.End,
			Description: res.Window.Description,
			TotalDays:   res.Window.TotalDays,
		},
		Stats:    res.Stats,
		Articles: articles,
	}
}

// SaveRun writes res as indented JSON. Relative paths are resolved against
// the working directory. The file is replaced atomically.
func (s *Storage) SaveRun(path string, res search.Result) error {
	data, err := json.MarshalIndent(NewRunExport(res, time.Now()), "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling run: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating export directory: %w", err)
		}
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("error writing temporary export: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("error saving export: %w", err)
	}

	logger.Infof("saved %d articles to %s", len(res.Articles), path)
	return nil
}
