package snapcell

import (
	"github.com/joeycumines/logiface"
)

// cellOptions holds configuration resolved from Option values.
type cellOptions struct {
	logger     *logiface.Logger[logiface.Event]
	usageGuard bool
	stats      bool
}

// Option configures a [Cell] (and, transitively, the gated types that own
// one).
type Option interface {
	applyCell(*cellOptions)
}

// cellOptionImpl implements Option.
type cellOptionImpl struct {
	applyCellFunc func(*cellOptions)
}

func (o *cellOptionImpl) applyCell(opts *cellOptions) {
	o.applyCellFunc(opts)
}

// WithLogger attaches a structured logger, used exclusively on cold paths:
// sweep reclamation (debug), close-time leak detection (warning), and usage
// guard violations (error, logged before panicking). Steady-state operations
// (Acquire, gated reads) never log. A nil logger is equivalent to no logger.
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &cellOptionImpl{func(opts *cellOptions) {
		opts.logger = logger
	}}
}

// WithUsageGuard enables best-effort detection of usage contract violations
// that cannot be checked for free: concurrent writers on one cell, and
// closing a cell with snapshots still outstanding (upgraded from an error
// return to a panic). Intended for test and debug configurations; without
// the guard, the writer path performs no locking whatsoever, and a violated
// single-writer contract has unspecified behavior.
func WithUsageGuard(enabled bool) Option {
	return &cellOptionImpl{func(opts *cellOptions) {
		opts.usageGuard = enabled
	}}
}

// WithStats enables runtime counters, accessible via [Cell.Stats]. The
// overhead is a handful of atomic increments on writer-side operations and
// one on each acquire; disabled (the default), no counter exists at all.
func WithStats(enabled bool) Option {
	return &cellOptionImpl{func(opts *cellOptions) {
		opts.stats = enabled
	}}
}

// resolveCellOptions applies Option instances to a fresh cellOptions.
func resolveCellOptions(opts []Option) *cellOptions {
	cfg := &cellOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue // Skip nil options gracefully
		}
		opt.applyCell(cfg)
	}
	return cfg
}
