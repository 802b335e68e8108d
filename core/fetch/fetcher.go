package fetch

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gaurav-prasanna/linkharvest/core"
	"github.com/gaurav-prasanna/linkharvest/core/output"
)

// DefaultDelay is the pause after each request before the next one starts.
const DefaultDelay = time.Second

// ErrorText is the inline body written for a URL that could not be read.
func ErrorText(err error) string {
	return "Error fetching URL: " + err.Error()
}

// Fetcher reads a list of URLs one at a time and writes a divider block per
// URL. A failing URL is written as an inline error and never stops the run.
type Fetcher struct {
	reader   core.ContentReader
	delay    time.Duration
	logger   *log.Logger
	progress core.ProgressFunc
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithDelay sets the pause after each completed request. No pause follows
// the last URL. Zero disables pacing.
func WithDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		if d >= 0 {
			f.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithProgress registers a callback invoked after each record is written.
func WithProgress(fn core.ProgressFunc) Option {
	return func(f *Fetcher) { f.progress = fn }
}

// New creates a Fetcher that reads through reader.
func New(reader core.ContentReader, opts ...Option) *Fetcher {
	f := &Fetcher{
		reader: reader,
		delay:  DefaultDelay,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchAll truncates outPath and writes one block per URL in input order.
// Zero URLs produce an empty file.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string, outPath string) (core.FetchSummary, error) {
	cw, err := output.Create(outPath)
	if err != nil {
		return core.FetchSummary{}, err
	}

	summary, err := f.FetchTo(ctx, urls, cw)
	if cerr := cw.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return summary, err
	}

	f.logger.Info("Saved content", "processed", summary.Processed, "failed", summary.Failed, "path", outPath)
	return summary, nil
}

// FetchTo writes one block per URL to cw. Only a write failure or context
// cancellation ends the run early; the summary counts what was written.
func (f *Fetcher) FetchTo(ctx context.Context, urls []string, cw *output.ContentWriter) (core.FetchSummary, error) {
	var summary core.FetchSummary

	total := len(urls)
	for i, pageURL := range urls {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if i > 0 {
			if err := sleep(ctx, f.delay); err != nil {
				return summary, err
			}
		}

		index := i + 1
		f.logger.Info("Processing URL", "index", index, "total", total, "url", pageURL)

		body, err := f.reader.Read(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			f.logger.Error("Error fetching URL", "url", pageURL, "err", err)
			body = ErrorText(err)
			summary.Failed++
		}

		if werr := cw.WriteRecord(index, pageURL, body); werr != nil {
			return summary, werr
		}
		summary.Processed++

		if f.progress != nil {
			f.progress(core.FetchRecord{Index: index, URL: pageURL, Body: body, Err: err}, total)
		}
	}

	return summary, nil
}

// sleep pauses for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
