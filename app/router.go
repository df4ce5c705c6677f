package app

import (
	"fmt"
	"regexp"

	"github.com/craig-iam-smith/graphene"
	"github.com/craig-iam-smith/graphene/errors"
)

var isPath = regexp.MustCompile(`^[a-z0-9_/]{4,40}$`).MatchString

// Router allows us to register many handlers with different paths and then
// direct each message to the registered handler.
type Router struct {
	handlers map[string]graphene.Handler
}

var _ graphene.Registry = (*Router)(nil)
var _ graphene.Handler = (*Router)(nil)

// NewRouter initializes a router with no routes.
func NewRouter() *Router {
	return &Router{
		handlers: make(map[string]graphene.Handler),
	}
}

// Handle implements Registry interface. Assigns given handler to messages
// with the same path as the given message. Handle panics if a handler was
// already registered for that path or if the path is invalid.
func (r *Router) Handle(m graphene.Msg, h graphene.Handler) {
	path := m.Path()
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path %q", path))
	}
	if _, ok := r.handlers[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.handlers[path] = h
}

// handler returns the registered Handler for this message path.
// If no path is found, returns a noSuchPathHandler.
func (r *Router) handler(m graphene.Msg) graphene.Handler {
	path := m.Path()
	if h, ok := r.handlers[path]; ok {
		return h
	}
	return noSuchPathHandler{path}
}

// Check dispatches to the proper handler based on path
func (r *Router) Check(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.CheckResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h := r.handler(msg)
	return h.Check(ctx, db, tx)
}

// Deliver dispatches to the proper handler based on path
func (r *Router) Deliver(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	h := r.handler(msg)
	return h.Deliver(ctx, db, tx)
}

// noSuchPathHandler always returns ErrNotFound, it is a handler assigned to
// all paths that have no other handler registered.
type noSuchPathHandler struct {
	path string
}

var _ graphene.Handler = noSuchPathHandler{}

func (h noSuchPathHandler) Check(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}

func (h noSuchPathHandler) Deliver(ctx graphene.Context, db graphene.KVStore, tx graphene.Tx) (*graphene.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", h.path)
}
