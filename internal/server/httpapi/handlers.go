// Package httpapi exposes the document store over a json-server style REST
// interface: one CRUD surface per collection, plain JSON in and out, and
// query-parameter equality filters on list requests.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/avilov/triplog/internal/logging"
	"github.com/avilov/triplog/internal/server/storage"
)

// Handler serves the resource endpoints over a storage.Store.
type Handler struct {
	store  storage.Store
	logger logging.Logger
}

// NewHandler constructs a Handler over the given store.
func NewHandler(store storage.Store, logger logging.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// list handles GET /{collection}. Every query parameter is an equality
// filter on a top-level field of the documents; numbers and booleans are
// compared against the parameter's string form.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	collection := chi.URLParam(r, "collection")

	docs, err := h.store.List(ctx, collection)
	if err != nil {
		h.logger.Error(ctx, "list failed", "collection", collection, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	filters := r.URL.Query()
	if len(filters) == 0 {
		writeJSON(w, http.StatusOK, docs)
		return
	}

	out := []json.RawMessage{}
	for _, doc := range docs {
		if matches(doc, filters) {
			out = append(out, doc)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// matches reports whether every query parameter equals the corresponding
// top-level field of the document.
func matches(doc json.RawMessage, filters map[string][]string) bool {
	var fields map[string]any
	if err := json.Unmarshal(doc, &fields); err != nil {
		return false
	}
	for key, want := range filters {
		if len(want) == 0 {
			continue
		}
		v, ok := fields[key]
		if !ok || fieldString(v) != want[0] {
			return false
		}
	}
	return true
}

func fieldString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// get handles GET /{collection}/{id}.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	doc, err := h.store.Get(ctx, collection, id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return
	}
	if err != nil {
		h.logger.Error(ctx, "get failed", "collection", collection, "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// create handles POST /{collection}. A document without an id gets a
// generated one; a document that carries an id keeps it, even if that
// overwrites an existing record.
func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	collection := chi.URLParam(r, "collection")

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil || fields == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	id, _ := fields["id"].(string)
	if id == "" {
		id = uuid.NewString()
		fields["id"] = id
	}

	doc, err := json.Marshal(fields)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document"})
		return
	}

	if err := h.store.Put(ctx, collection, id, doc); err != nil {
		h.logger.Error(ctx, "create failed", "collection", collection, "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusCreated, json.RawMessage(doc))
}

// update handles PUT /{collection}/{id}: a full replace. The id in the path
// wins over any id in the body.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil || fields == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}
	fields["id"] = id

	doc, err := json.Marshal(fields)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid document"})
		return
	}

	if err := h.store.Put(ctx, collection, id, doc); err != nil {
		h.logger.Error(ctx, "update failed", "collection", collection, "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, json.RawMessage(doc))
}

// remove handles DELETE /{collection}/{id}.
func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	collection := chi.URLParam(r, "collection")
	id := chi.URLParam(r, "id")

	err := h.store.Delete(ctx, collection, id)
	if errors.Is(err, storage.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{})
		return
	}
	if err != nil {
		h.logger.Error(ctx, "delete failed", "collection", collection, "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{})
}
