package graphene

import (
	"context"
	"time"

	"github.com/craig-iam-smith/graphene/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Context is just the request-scoped context.Context, with well known keys
// set by the surrounding application: block height, block time, logger, and
// whatever authentication extensions add.
type Context = context.Context

type contextKey int

const (
	contextKeyHeight contextKey = iota
	contextKeyTime
	contextKeyLogger
)

// DefaultLogger is used for all contexts that have not set anything
// themselves.
var DefaultLogger = log.NewNopLogger()

// WithHeight sets the block height into the Context.
// Must not be called with height set.
func WithHeight(ctx Context, height int64) Context {
	if _, ok := GetHeight(ctx); ok {
		panic("can't set height twice")
	}
	return context.WithValue(ctx, contextKeyHeight, height)
}

// GetHeight returns the current block height and true, or false if not set.
func GetHeight(ctx Context) (int64, bool) {
	val, ok := ctx.Value(contextKeyHeight).(int64)
	return val, ok
}

// WithBlockTime sets the block time into the Context. Block time is always
// represented in UTC.
func WithBlockTime(ctx Context, t time.Time) Context {
	return context.WithValue(ctx, contextKeyTime, t.UTC())
}

// BlockTime returns the block time as declared in the Context.
func BlockTime(ctx Context) (time.Time, error) {
	val, ok := ctx.Value(contextKeyTime).(time.Time)
	if !ok {
		return time.Time{}, errors.ErrHuman.New("block time not present in the context")
	}
	if val.IsZero() {
		return val, errors.ErrHuman.New("zero block time in the context")
	}
	return val, nil
}

// IsExpired returns true if given time is in the past as compared to the
// "now" as declared for the block. Expiration is inclusive, meaning that if
// current time is equal to the expiration time then this function returns
// true.
//
// This function panics if the block time is not present in the context.
func IsExpired(ctx Context, t UnixTime) bool {
	blockNow, err := BlockTime(ctx)
	if err != nil {
		panic(errors.Wrap(err, "cannot check expiration"))
	}
	return t <= AsUnixTime(blockNow)
}

// InThePast returns true if given time is in the past compared to the
// current time as declared in the context. Keep in mind that this function
// is not inclusive of current time. If given time is equal to "now" then
// this function returns false.
//
// This function panics if the block time is not present in the context.
func InThePast(ctx Context, t time.Time) bool {
	blockNow, err := BlockTime(ctx)
	if err != nil {
		panic(errors.Wrap(err, "cannot check time"))
	}
	return t.Before(blockNow)
}

// WithLogger sets the logger into the Context.
func WithLogger(ctx Context, logger log.Logger) Context {
	// Logger can be overridden below... no problem
	return context.WithValue(ctx, contextKeyLogger, logger)
}

// GetLogger returns the logger from the Context, or DefaultLogger if none
// was set.
func GetLogger(ctx Context) log.Logger {
	val, ok := ctx.Value(contextKeyLogger).(log.Logger)
	if !ok {
		return DefaultLogger
	}
	return val
}

// WithLogInfo accepts keyvalue pairs, and returns another
// context like this, after passing all the keyvals to the
// logger
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	logger := GetLogger(ctx).With(keyvals...)
	return WithLogger(ctx, logger)
}
