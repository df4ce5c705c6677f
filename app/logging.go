package app

import (
	"time"

	"github.com/craig-iam-smith/graphene"
)

// Logging is a decorator that logs the message path, the processing duration
// and the outcome of every transaction passing through.
type Logging struct{}

var _ graphene.Decorator = Logging{}

// NewLogging creates a logging decorator.
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info and passes the call through.
func (l Logging) Check(ctx graphene.Context, store graphene.KVStore, tx graphene.Tx, next graphene.Checker) (*graphene.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	logDuration(ctx, start, graphene.GetPath(tx), err)
	return res, err
}

// Deliver logs error -> info and passes the call through.
func (l Logging) Deliver(ctx graphene.Context, store graphene.KVStore, tx graphene.Tx, next graphene.Deliverer) (*graphene.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	logDuration(ctx, start, graphene.GetPath(tx), err)
	return res, err
}

// logDuration writes a line with the message path, the duration in
// microseconds, and the error if present.
func logDuration(ctx graphene.Context, start time.Time, path string, err error) {
	delta := time.Now().Sub(start)
	logger := graphene.GetLogger(ctx).With("duration", delta/time.Microsecond)
	if err != nil {
		logger.With("err", err).Error(path)
	} else {
		logger.Info(path)
	}
}
