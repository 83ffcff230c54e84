// Package correction runs scientific names through a NameMatcher, one at a
// time and in order, turning every answer into a CorrectionRecord.
package correction

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"namecorrector/domain/taxon"
	"namecorrector/internal"
	"namecorrector/ports"
)

// StatusLabels provides the localized status strings of unmatched and
// failed rows
type StatusLabels interface {
	NotFound() string
	HTTPError(code int) string
	ConnectionError() string
}

// ProgressFunc is called after each row with the number of rows done
type ProgressFunc func(done, total int)

// Engine corrects sequences of names against a matcher
type Engine struct {
	matcher  ports.NameMatcher
	labels   StatusLabels
	logger   *internal.Logger
	progress ProgressFunc
}

// NewEngine creates a correction engine
func NewEngine(matcher ports.NameMatcher, labels StatusLabels, logger *internal.Logger) *Engine {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Engine{
		matcher: matcher,
		labels:  labels,
		logger:  logger.With("Engine"),
	}
}

// WithProgress registers a per-row progress callback
func (e *Engine) WithProgress(fn ProgressFunc) *Engine {
	e.progress = fn
	return e
}

// Correct returns exactly one record per name, in input order. A failed
// lookup is recorded in that row's status and the loop moves on; only
// cancellation of ctx stops it early.
func (e *Engine) Correct(ctx context.Context, names []string) ([]taxon.CorrectionRecord, error) {
	return e.CorrectWithProgress(ctx, names, e.progress)
}

// CorrectWithProgress is Correct reporting to progress instead of the
// engine's registered callback
func (e *Engine) CorrectWithProgress(ctx context.Context, names []string, progress ProgressFunc) ([]taxon.CorrectionRecord, error) {
	startTime := time.Now()
	records := make([]taxon.CorrectionRecord, len(names))
	matched := 0

	e.logger.Info("correcting %d names", len(names))
	for i, name := range names {
		if err := ctx.Err(); err != nil {
			e.logger.Warn("run cancelled after %d/%d names: %v", i, len(names), err)
			return nil, err
		}

		record, err := e.correctOne(ctx, name)
		if err != nil {
			e.logger.Warn("run cancelled at name %d/%d: %v", i+1, len(names), err)
			return nil, err
		}
		if record.Matched() {
			matched++
		}
		records[i] = record

		if progress != nil {
			progress(i+1, len(names))
		}
	}

	e.logger.Info("corrected %d names in %s (%d matched)", len(names), time.Since(startTime).Round(time.Millisecond), matched)
	return records, nil
}

// correctOne resolves a single name. The returned error is non-nil only when
// the context was cancelled during the lookup.
func (e *Engine) correctOne(ctx context.Context, name string) (taxon.CorrectionRecord, error) {
	query := NormalizeName(name)

	result, err := e.matcher.Match(ctx, query)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return taxon.CorrectionRecord{}, ctxErr
		}
		var coder ports.StatusCoder
		if errors.As(err, &coder) {
			e.logger.Debug("name %q: http %d", query, coder.StatusCode())
			return taxon.Unmatched(e.labels.HTTPError(coder.StatusCode())), nil
		}
		e.logger.Warn("name %q: lookup failed: %v", query, err)
		return taxon.Unmatched(e.labels.ConnectionError()), nil
	}

	if result == nil || !result.MatchType.Matched() {
		e.logger.Trace("name %q: no match", query)
		return taxon.Unmatched(e.labels.NotFound()), nil
	}

	e.logger.Trace("name %q: %s %q (confidence %d)", query, result.MatchType, result.ScientificName, result.Confidence)
	return taxon.FromMatch(result), nil
}

// NormalizeName trims surrounding and repeated whitespace and applies NFC so
// that visually identical names produce the same query
func NormalizeName(name string) string {
	return norm.NFC.String(strings.Join(strings.Fields(name), " "))
}
