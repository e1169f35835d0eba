package utils

import (
	"time"

	"github.com/iov-one/jointbank"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ jointbank.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (r Logging) Check(ctx jointbank.Context, store jointbank.KVStore, tx jointbank.Tx, next jointbank.Checker) (*jointbank.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx jointbank.Context, store jointbank.KVStore, tx jointbank.Tx, next jointbank.Deliverer) (*jointbank.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	var resLog string
	if err == nil {
		resLog = res.Log
	}
	logDuration(ctx, tx, start, resLog, err, false)
	return res, err
}

// logDuration writes information about the time and result to the logger
func logDuration(ctx jointbank.Context, tx jointbank.Tx, start time.Time, msg string, err error, lowPrio bool) {
	delta := time.Since(start)
	logger := jointbank.GetLogger(ctx).With(
		"path", jointbank.GetPath(tx),
		"duration", delta/time.Microsecond,
	)

	// An empty message still carries the path and the duration.
	switch {
	case err != nil:
		if lowPrio {
			logger.Info(msg, "err", err)
		} else {
			logger.Error(msg, "err", err)
		}
	case lowPrio:
		logger.Debug(msg)
	default:
		logger.Info(msg)
	}
}
