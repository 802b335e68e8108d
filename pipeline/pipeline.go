// Package pipeline runs extract → save → fetch as one unit of work.
//
// Run executes synchronously. Start executes on its own goroutine and reports
// progress as Events, so an interactive front end never has to touch
// pipeline state from its own thread.
package pipeline

import (
	"context"
	"fmt"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/gaurav-prasanna/linkharvest/core"
	"github.com/gaurav-prasanna/linkharvest/core/extract"
	"github.com/gaurav-prasanna/linkharvest/core/fetch"
	"github.com/gaurav-prasanna/linkharvest/core/store"
	"github.com/gaurav-prasanna/linkharvest/logging"
	"github.com/google/uuid"
)

// Result summarizes a completed run.
type Result struct {
	RunID     string
	Extracted int // unique links found in the HTML
	Saved     int // lines written to the URL file
	Fetched   int // URLs processed by the fetch stage
	Failed    int // URLs whose fetch produced an inline error
}

type options struct {
	logger   *log.Logger
	reader   core.ContentReader
	observer func(Event)
}

// Option configures Run and Start.
type Option func(*options)

// WithLogger sets the logger. Every line carries the run ID.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithReader overrides the content reader built from Config.
func WithReader(r core.ContentReader) Option {
	return func(o *options) { o.reader = r }
}

// WithObserver registers a callback for progress events. It is called on the
// goroutine executing the run.
func WithObserver(fn func(Event)) Option {
	return func(o *options) { o.observer = fn }
}

// Run executes the configured stages in order. The first local failure
// (reading, writing, validation) aborts the run; per-URL fetch failures
// don't.
func Run(ctx context.Context, cfg Config, opts ...Option) (*Result, error) {
	o := options{logger: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	res := &Result{RunID: uuid.NewString()}
	logger := o.logger.With("run", res.RunID)
	emit := func(ev Event) {
		if o.observer != nil {
			o.observer(ev)
		}
	}

	if err := run(ctx, cfg, o, logger, emit, res); err != nil {
		logger.Error("Run failed", "err", err)
		emit(Event{Kind: EventFailed, Status: StatusFailed, Err: err})
		return res, err
	}

	logger.Info("Task completed successfully")
	emit(Event{Kind: EventCompleted, Status: StatusCompleted})
	return res, nil
}

func run(ctx context.Context, cfg Config, o options, logger *log.Logger, emit func(Event), res *Result) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	status := func(s string) {
		logger.Info(s)
		emit(Event{Kind: EventStatus, Status: s})
	}

	if cfg.Extract {
		status(StatusReadingHTML)
		filter := cfg.Filter
		if cfg.SameHost {
			filter.SameHost = hostOf(cfg.BaseURL)
		}
		extractor := extract.NewLinkExtractor(filter)

		status(StatusExtracting)
		set, err := extractor.ExtractFile(cfg.InputFile, cfg.BaseURL)
		if err != nil {
			return err
		}
		res.Extracted = set.Len()
		logger.Info("Extracted links", "count", res.Extracted)

		status(StatusSavingLinks)
		n, err := store.Save(set.Sorted(), cfg.URLFile)
		if err != nil {
			return err
		}
		res.Saved = n
		logger.Info("Saved links", "count", n, "path", cfg.URLFile)
	}

	if !cfg.Fetch {
		return nil
	}

	status(StatusReadingURLs)
	urls, err := store.Load(cfg.URLFile)
	if err != nil {
		return err
	}
	logger.Info("Loaded URLs", "count", len(urls), "path", cfg.URLFile)
	if len(urls) == 0 {
		logger.Warn("No URLs found in the URL file", "path", cfg.URLFile)
	}

	reader := o.reader
	if reader == nil {
		reader = NewReader(cfg)
	}

	status(StatusFetching)
	fetcher := fetch.New(reader,
		fetch.WithDelay(cfg.Delay),
		fetch.WithLogger(logger),
		fetch.WithProgress(func(rec core.FetchRecord, total int) {
			emit(Event{
				Kind:   EventProgress,
				Status: StatusFetching,
				Index:  rec.Index,
				Total:  total,
				URL:    rec.URL,
				Err:    rec.Err,
			})
		}),
	)

	summary, err := fetcher.FetchAll(ctx, urls, cfg.ContentFile)
	res.Fetched = summary.Processed
	res.Failed = summary.Failed
	if err != nil {
		return fmt.Errorf("fetching content: %w", err)
	}
	return nil
}

// NewReader builds the content reader selected by cfg.
func NewReader(cfg Config) core.ContentReader {
	if cfg.Reader == ReaderLocal {
		return fetch.NewLocalReader(fetch.LocalOptions{
			Timeout:       cfg.Timeout,
			UserAgent:     cfg.UserAgent,
			Format:        fetch.LocalFormat(cfg.LocalFormat),
			RespectRobots: cfg.RespectRobots,
		})
	}
	return fetch.NewEndpointReader(cfg.Endpoint, cfg.APIKey,
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithUserAgent(cfg.UserAgent),
	)
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Host
}
