package api

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devportfolio/portfolio-backend/errs"
)

// store is the repository surface a resource handler needs. Every repo in
// the database package satisfies it for its own entity and input types.
type store[E any, I any] interface {
	FindAll(ctx context.Context) ([]E, error)
	FindByID(ctx context.Context, id uint) (*E, error)
	Add(ctx context.Context, in I) (*E, error)
	Update(ctx context.Context, id uint, in I) (*E, error)
	Delete(ctx context.Context, id uint) error
}

// resourceHandler serves the five CRUD endpoints of one resource.
type resourceHandler[E any, I any] struct {
	responder Responder
	logger    zerolog.Logger
	store     store[E, I]

	entity          string
	notFoundMessage string
	// updateExcept names input fields that are optional on update only.
	updateExcept []string
	// onCreate runs after a successful create.
	onCreate func(ctx context.Context, created E)
}

type resourceOption[E any, I any] func(*resourceHandler[E, I])

func withUpdateExcept[E any, I any](fields ...string) resourceOption[E, I] {
	return func(h *resourceHandler[E, I]) {
		h.updateExcept = fields
	}
}

func withOnCreate[E any, I any](fn func(ctx context.Context, created E)) resourceOption[E, I] {
	return func(h *resourceHandler[E, I]) {
		h.onCreate = fn
	}
}

func newResourceHandler[E any, I any](entity, notFoundMessage string, s store[E, I], opts ...resourceOption[E, I]) resourceHandler[E, I] {
	logger := log.With().Str("handlerName", entity+"Handler").Logger()

	h := resourceHandler[E, I]{
		responder:       NewResponder(logger),
		logger:          logger,
		store:           s,
		entity:          entity,
		notFoundMessage: notFoundMessage,
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// list returns every row with its relations.
func (h resourceHandler[E, I]) list() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.store.FindAll(r.Context())
		if err != nil {
			h.writeStoreError(w, "find", err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, items)
	}
}

// get returns one row by id, 404 when it does not exist.
func (h resourceHandler[E, I]) get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError(h.notFoundMessage))
			return
		}

		item, err := h.store.FindByID(r.Context(), id)
		if err != nil {
			h.writeStoreError(w, "find", err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, item)
	}
}

func (h resourceHandler[E, I]) create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in I
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateInput(&in); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		created, err := h.store.Add(r.Context(), in)
		if err != nil {
			h.writeStoreError(w, "create", err)
			return
		}

		h.logger.Info().Str("requestId", requestIDFromContext(r.Context())).Msgf("Created %s", h.entity)
		if h.onCreate != nil {
			h.onCreate(r.Context(), *created)
		}
		h.responder.WriteJSON(w, http.StatusCreated, created)
	}
}

func (h resourceHandler[E, I]) update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError(h.notFoundMessage))
			return
		}

		var in I
		if err := decodeJSON(w, r, &in); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validateInput(&in, h.updateExcept...); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		updated, err := h.store.Update(r.Context(), id, in)
		if err != nil {
			h.writeStoreError(w, "update", err)
			return
		}
		h.responder.WriteJSON(w, http.StatusOK, updated)
	}
}

func (h resourceHandler[E, I]) remove() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(r)
		if !ok {
			h.responder.WriteError(w, errs.NewNotFoundError(h.notFoundMessage))
			return
		}

		if err := h.store.Delete(r.Context(), id); err != nil {
			h.writeStoreError(w, "delete", err)
			return
		}
		h.responder.WriteNoContent(w)
	}
}

// writeStoreError answers a repository failure. Missing rows get the
// resource's own not-found message.
func (h resourceHandler[E, I]) writeStoreError(w http.ResponseWriter, operation string, err error) {
	if errs.IsNotFound(err) {
		h.responder.WriteError(w, errs.NewNotFoundError(h.notFoundMessage))
		return
	}
	h.responder.WriteError(w, wrapDatabaseError(operation, h.entity, err))
}
