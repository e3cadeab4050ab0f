// Package search runs the fetch, filter and dedup pipeline over the
// configured sources.
package search

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/thedittmer/mlb-wire/internal/daterange"
	"github.com/thedittmer/mlb-wire/internal/dedup"
	"github.com/thedittmer/mlb-wire/internal/feed"
	"github.com/thedittmer/mlb-wire/internal/logger"
	"github.com/thedittmer/mlb-wire/internal/matcher"
	"github.com/thedittmer/mlb-wire/internal/models"
)

const (
	// DefaultWindowBuffer widens the window on both sides to absorb the gap
	// between when a story is published and when the feed lists it.
	DefaultWindowBuffer = 6 * time.Hour
	DefaultDelay        = time.Second
)

// Fetcher returns the raw entries of one source.
type Fetcher interface {
	Fetch(ctx context.Context, src models.SourceSpec) ([]feed.RawItem, error)
}

// Options tune a Pipeline. Zero values select the defaults, except Delay
// where a negative value disables the pause between sources.
type Options struct {
	Delay        time.Duration
	WindowBuffer time.Duration
	MaxPerFeed   int
	Sources      []models.SourceSpec // nil selects models.Sources
}

// Result is everything a run produced.
type Result struct {
	RunID     string
	Window    daterange.Window
	Articles  []models.MatchedArticle
	Stats     models.Stats
	NoSources bool
}

// Pipeline queries sources strictly one after another.
type Pipeline struct {
	fetcher Fetcher
	opts    Options
}

// New builds a Pipeline around f.
func New(f Fetcher, opts Options) *Pipeline {
	if opts.Delay == 0 {
		opts.Delay = DefaultDelay
	}
	if opts.WindowBuffer == 0 {
		opts.WindowBuffer = DefaultWindowBuffer
	}
	return &Pipeline{fetcher: f, opts: opts}
}

// Run searches the sources selected by q for articles inside w. A failing
// source is recorded and skipped; the only error returned is ctx's.
func (p *Pipeline) Run(ctx context.Context, q models.Query, w daterange.Window) (Result, error) {
	res := Result{RunID: uuid.NewString(), Window: w}
	log := logger.L.With("run", res.RunID)

	sources := p.selectSources(q.Types)
	if len(sources) == 0 {
		log.Infof("no sources selected")
		res.NoSources = true
		return res, nil
	}

	m := matcher.New(q.Team, q.Players)
	limiter := p.limiter()

	log.Infof("searching %d sources %s", len(sources), w.Description)

	var matched []models.MatchedArticle
	for _, src := range sources {
		if err := limiter.Wait(ctx); err != nil {
			return p.finish(res, matched), err
		}

		res.Stats.SourcesAttempted++
		found, ok := p.searchSource(ctx, log, src, q, w, m, &res.Stats)
		if ok {
			res.Stats.SourcesSuccessful++
		} else {
			res.Stats.SourcesFailed = append(res.Stats.SourcesFailed, src.Name)
		}
		matched = append(matched, found...)

		if err := ctx.Err(); err != nil {
			return p.finish(res, matched), err
		}
	}

	res = p.finish(res, matched)
	log.Infof("checked %d items from %d/%d sources: %d matched, %d unique",
		res.Stats.ItemsChecked, res.Stats.SourcesSuccessful, res.Stats.SourcesAttempted,
		res.Stats.ItemsMatched, res.Stats.UniqueArticles)
	return res, nil
}

// searchSource fetches one source and returns its matches. ok reports
// whether the source yielded at least one usable item.
func (p *Pipeline) searchSource(ctx context.Context, log *zap.SugaredLogger, src models.SourceSpec,
	q models.Query, w daterange.Window, m *matcher.Matcher, stats *models.Stats) ([]models.MatchedArticle, bool) {

	raw, err := p.fetcher.Fetch(ctx, src)
	if err != nil {
		var parseErr *feed.FeedParseError
		if errors.As(err, &parseErr) {
			log.Warnf("[%s] unreadable feed: %v", src.Name, err)
		} else {
			log.Warnf("[%s] fetch failed: %v", src.Name, err)
		}
		return nil, false
	}

	var (
		found  []models.MatchedArticle
		usable int
	)
	for _, item := range raw {
		if p.opts.MaxPerFeed > 0 && usable >= p.opts.MaxPerFeed {
			break
		}
		stats.ItemsChecked++

		a, err := feed.Normalize(item)
		if err != nil {
			stats.ItemsDropped++
			if q.Verbose {
				log.Debugf("[%s] %v", src.Name, err)
			}
			continue
		}
		usable++

		if !w.Contains(a.Published, p.opts.WindowBuffer) {
			if q.Verbose {
				log.Debugf("[%s] outside window (%s): %s", src.Name, a.Published.Format(time.RFC3339), a.Title)
			}
			continue
		}

		reason, ok := m.Match(a)
		if !ok {
			if q.Verbose {
				log.Debugf("[%s] not relevant: %s", src.Name, a.Title)
			}
			continue
		}
		if q.Verbose {
			kw, _ := m.Keyword(a)
			log.Debugf("[%s] matched (%s, keyword %q): %s", src.Name, reason, kw, a.Title)
		}
		found = append(found, models.MatchedArticle{Article: a, MatchReason: reason})
	}

	stats.ItemsMatched += len(found)
	log.Debugf("[%s] %d items, %d usable, %d matched", src.Name, len(raw), usable, len(found))
	return found, usable > 0
}

// selectSources uses the built-in table unless Options.Sources replaced it.
func (p *Pipeline) selectSources(types []models.SourceType) []models.SourceSpec {
	if p.opts.Sources == nil {
		return models.SelectSources(types)
	}
	return models.FilterSources(p.opts.Sources, types)
}

func (p *Pipeline) finish(res Result, matched []models.MatchedArticle) Result {
	res.Articles = dedup.Articles(matched)
	res.Stats.UniqueArticles = len(res.Articles)
	return res
}

func (p *Pipeline) limiter() *rate.Limiter {
	if p.opts.Delay < 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(p.opts.Delay), 1)
}
