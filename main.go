package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/thedittmer/mlb-wire/internal/config"
	"github.com/thedittmer/mlb-wire/internal/daterange"
	"github.com/thedittmer/mlb-wire/internal/fetcher"
	"github.com/thedittmer/mlb-wire/internal/logger"
	"github.com/thedittmer/mlb-wire/internal/models"
	"github.com/thedittmer/mlb-wire/internal/search"
	"github.com/thedittmer/mlb-wire/internal/storage"
	"github.com/thedittmer/mlb-wire/internal/ui"
)

const dayLayout = "2006-01-02"

var version = "dev"

type searchFlags struct {
	configPath string
	team       string
	players    []string
	types      []string
	hours      int
	date       string
	startDate  string
	endDate    string
	verbose    bool
	compact    bool
	jsonOut    string
	sheets     bool
	sheetID    string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	f := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "mlb-wire",
		Short: "Search MLB news feeds for trades, signings and roster moves",
		Long: `mlb-wire queries a fixed set of baseball news feeds one after another,
keeps the stories that fall inside a date window and mention the requested
team or players, and prints them newest first.

Examples:
  # Everything from the last day
  mlb-wire

  # Yankees trade chatter over the last three days
  mlb-wire --team Yankees --type Trade --hours 72

  # A specific player across a date range
  mlb-wire --player "Juan Soto" --start-date 2025-07-01 --end-date 2025-07-31`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd.Context(), cmd, f)
		},
	}

	fl := cmd.Flags()
	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "config file (default ~/.mlb-wire/config.yaml)")
	fl.StringVarP(&f.team, "team", "t", models.AllTeams, "team nickname, or All")
	fl.StringSliceVarP(&f.players, "player", "p", nil, "player name to match (repeatable)")
	fl.StringSliceVar(&f.types, "type", nil, "source type: Trade, Roster, Transaction, Signing, Acquisition, General or All (repeatable)")
	fl.IntVar(&f.hours, "hours", daterange.DefaultHours, "look back this many hours")
	fl.StringVar(&f.date, "date", "", "a single day, YYYY-MM-DD")
	fl.StringVar(&f.startDate, "start-date", "", "range start, YYYY-MM-DD")
	fl.StringVar(&f.endDate, "end-date", "", "range end, YYYY-MM-DD (inclusive)")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log per-source progress")
	fl.BoolVar(&f.compact, "compact", false, "omit descriptions")
	fl.StringVar(&f.jsonOut, "json", "", "also write the run to this JSON file")
	fl.BoolVar(&f.sheets, "sheets", false, "append matches to a Google Sheet")
	fl.StringVar(&f.sheetID, "sheet-id", "", "spreadsheet to append to (default: last used or new)")

	cmd.MarkFlagsMutuallyExclusive("date", "start-date")
	cmd.MarkFlagsMutuallyExclusive("date", "end-date")
	cmd.MarkFlagsMutuallyExclusive("date", "hours")
	cmd.MarkFlagsMutuallyExclusive("hours", "start-date")
	cmd.MarkFlagsMutuallyExclusive("hours", "end-date")

	cmd.AddCommand(sourcesCommand(), teamsCommand(), configCommand(f))
	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, f *searchFlags) error {
	cfg, err := loadConfig(f.configPath)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if f.verbose {
		level = "debug"
	}
	if err := logger.Init(logger.Config{
		Level:      level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
	}); err != nil {
		return err
	}
	defer logger.Sync()
	ui.ApplyTheme(cfg.Theme.Dark, cfg.Theme.AccentColor)

	q, err := buildQuery(f)
	if err != nil {
		return err
	}

	in, err := buildInput(cmd, f)
	if err != nil {
		return err
	}
	window, err := daterange.Resolve(in, time.Now())
	if err != nil {
		return err
	}

	client := fetcher.New(cfg.Behavior.FetchTimeout, cfg.Behavior.UserAgent)
	pipeline := search.New(client, search.Options{
		Delay:        cfg.Behavior.RequestDelay,
		WindowBuffer: cfg.Behavior.WindowBuffer,
		MaxPerFeed:   cfg.Behavior.MaxArticlesPerFeed,
	})

	res, runErr := pipeline.Run(ctx, q, window)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.Render(res.Articles, res.Stats, res.Window, ui.Options{
		Compact:          f.compact || cfg.Display.CompactView,
		DateFormat:       cfg.Display.DateFormat,
		DescriptionWidth: cfg.Display.DescriptionWidth,
		Width:            ui.Width(),
		NoSources:        res.NoSources,
	}))
	if runErr != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.WarningStyle.Render("Search interrupted, results are partial."))
		return nil
	}

	return export(ctx, cmd, cfg, f, res)
}

func export(ctx context.Context, cmd *cobra.Command, cfg *config.Config, f *searchFlags, res search.Result) error {
	jsonPath := f.jsonOut
	if jsonPath == "" {
		jsonPath = cfg.Export.JSONPath
	}
	if jsonPath == "" && !f.sheets {
		return nil
	}

	dataDir, err := config.DataDir()
	if err != nil {
		return err
	}
	store, err := storage.NewStorage(dataDir)
	if err != nil {
		return err
	}

	if jsonPath != "" {
		if err := store.SaveRun(jsonPath, res); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessStyle.Render("Saved run to "+jsonPath))
	}

	if f.sheets {
		srv, err := storage.SheetsClient(ctx, cfg.Export.Sheets.CredentialsFile)
		if err != nil {
			return err
		}
		id := f.sheetID
		if id == "" {
			id = cfg.Export.Sheets.SpreadsheetID
		}
		out := store.ExportToSheets(ctx, srv, res.Articles, id)
		if out.Error != nil {
			return out.Error
		}
		fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessStyle.Render(
			fmt.Sprintf("Exported %d articles to %s", out.Rows, out.URL)))
	}
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return config.LoadConfig(path)
}

func buildQuery(f *searchFlags) (models.Query, error) {
	team, err := models.ParseTeam(f.team)
	if err != nil {
		return models.Query{}, err
	}

	q := models.Query{Team: team, Verbose: f.verbose}
	for _, p := range f.players {
		if p = strings.TrimSpace(p); p != "" {
			q.Players = append(q.Players, p)
		}
	}
	for _, t := range f.types {
		st, err := models.ParseSourceType(t)
		if err != nil {
			return models.Query{}, err
		}
		q.Types = append(q.Types, st)
	}
	return q, nil
}

// buildInput only forwards --hours when it was given explicitly, so a date
// or range flag is never reported as conflicting with the default.
func buildInput(cmd *cobra.Command, f *searchFlags) (daterange.Input, error) {
	var in daterange.Input
	if cmd.Flags().Changed("hours") {
		in.HoursBack = f.hours
	}

	var err error
	if in.Date, err = parseDay("date", f.date); err != nil {
		return in, err
	}
	if in.StartDate, err = parseDay("start-date", f.startDate); err != nil {
		return in, err
	}
	if in.EndDate, err = parseDay("end-date", f.endDate); err != nil {
		return in, err
	}
	return in, nil
}

func parseDay(flag, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dayLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q, expected YYYY-MM-DD", flag, s)
	}
	return t, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
