package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/schema"
	"github.com/goliatone/go-formkit/pkg/store"
)

// SchemaController serves the schema store CRUD surface plus a rendering
// endpoint for stored schemas. Output formats resolve through the renderer
// registry; vanilla HTML is registered by default.
type SchemaController struct {
	store     store.Store
	renderers *render.Registry
	logger    *zap.Logger
}

// NewSchemaController wires the controller with the default vanilla renderer.
func NewSchemaController(s store.Store, logger *zap.Logger) (*SchemaController, error) {
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	registry := render.NewRegistry()
	if err := registry.Register(html); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SchemaController{store: s, renderers: registry, logger: logger}, nil
}

// RegisterRenderer adds an output format selectable via the renderer query
// parameter on the render endpoint.
func (c *SchemaController) RegisterRenderer(renderer render.Renderer) error {
	return c.renderers.Register(renderer)
}

// AddRoutes implements Controller.
func (c *SchemaController) AddRoutes(router *http.ServeMux) {
	router.Handle("POST /v1/schemas", http.HandlerFunc(c.create))
	router.Handle("PUT /v1/schemas/{id}", http.HandlerFunc(c.update))
	router.Handle("GET /v1/schemas", http.HandlerFunc(c.listOrLookup))
	router.Handle("GET /v1/schemas/{id}", http.HandlerFunc(c.get))
	router.Handle("GET /v1/schemas/{id}/render", http.HandlerFunc(c.renderSchema))
	router.Handle("DELETE /v1/schemas/{id}", http.HandlerFunc(c.delete))
}

func (c *SchemaController) create(w http.ResponseWriter, r *http.Request) {
	var record store.Record
	if err := decodeJSONBody(r, &record); err != nil {
		replyWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	record.ID = 0

	if !c.validateBlob(w, record.SchemaJSON) {
		return
	}

	saved, err := c.store.Save(r.Context(), record)
	if err != nil {
		c.logger.Error("save schema", zap.Error(err))
		replyWithError(w, http.StatusInternalServerError, "saving schema")
		return
	}
	replyJSON(w, http.StatusCreated, saved)
}

func (c *SchemaController) update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var record store.Record
	if err := decodeJSONBody(r, &record); err != nil {
		replyWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	record.ID = id

	if !c.validateBlob(w, record.SchemaJSON) {
		return
	}

	saved, err := c.store.Save(r.Context(), record)
	if errors.Is(err, store.ErrNotFound) {
		replyWithError(w, http.StatusNotFound, "schema not found")
		return
	}
	if err != nil {
		c.logger.Error("update schema", zap.Int64("id", id), zap.Error(err))
		replyWithError(w, http.StatusInternalServerError, "saving schema")
		return
	}
	replyJSON(w, http.StatusOK, saved)
}

func (c *SchemaController) listOrLookup(w http.ResponseWriter, r *http.Request) {
	if contextTag := strings.TrimSpace(r.URL.Query().Get("context")); contextTag != "" {
		record, err := c.store.LoadByContext(r.Context(), contextTag)
		if errors.Is(err, store.ErrNotFound) {
			replyWithError(w, http.StatusNotFound, "no active schema for context "+contextTag)
			return
		}
		if err != nil {
			c.logger.Error("lookup schema by context", zap.String("context", contextTag), zap.Error(err))
			replyWithError(w, http.StatusInternalServerError, "loading schema")
			return
		}
		replyJSON(w, http.StatusOK, record)
		return
	}

	records, err := c.store.List(r.Context())
	if err != nil {
		c.logger.Error("list schemas", zap.Error(err))
		replyWithError(w, http.StatusInternalServerError, "listing schemas")
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	replyJSON(w, http.StatusOK, records)
}

func (c *SchemaController) get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	record, err := c.store.Load(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		replyWithError(w, http.StatusNotFound, "schema not found")
		return
	}
	if err != nil {
		c.logger.Error("load schema", zap.Int64("id", id), zap.Error(err))
		replyWithError(w, http.StatusInternalServerError, "loading schema")
		return
	}
	replyJSON(w, http.StatusOK, record)
}

func (c *SchemaController) renderSchema(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	name := r.URL.Query().Get("renderer")
	if name == "" {
		name = "vanilla"
	}
	renderer, err := c.renderers.Get(name)
	if err != nil {
		replyWithError(w, http.StatusBadRequest, "unknown renderer "+name)
		return
	}

	record, err := c.store.Load(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		replyWithError(w, http.StatusNotFound, "schema not found")
		return
	}
	if err != nil {
		c.logger.Error("load schema", zap.Int64("id", id), zap.Error(err))
		replyWithError(w, http.StatusInternalServerError, "loading schema")
		return
	}

	// Fail closed: a blob that no longer parses renders nothing at all.
	form, err := schema.Parse([]byte(record.SchemaJSON))
	if err != nil {
		c.logger.Warn("stored schema unparseable", zap.Int64("id", id), zap.Error(err))
		replyWithError(w, http.StatusUnprocessableEntity, "form unavailable")
		return
	}

	markup, err := renderer.Render(r.Context(), form, render.Options{})
	if err != nil {
		c.logger.Error("render schema", zap.Int64("id", id), zap.Error(err))
		replyWithError(w, http.StatusInternalServerError, "rendering schema")
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(http.StatusOK)
	w.Write(markup)
}

func (c *SchemaController) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := c.store.Delete(r.Context(), id); err != nil {
		c.logger.Error("delete schema", zap.Int64("id", id), zap.Error(err))
		replyWithError(w, http.StatusInternalServerError, "deleting schema")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validateBlob rejects payloads whose schema blob cannot round-trip, so the
// store never holds a blob that later fails closed on load.
func (c *SchemaController) validateBlob(w http.ResponseWriter, blob string) bool {
	if strings.TrimSpace(blob) == "" {
		replyWithError(w, http.StatusBadRequest, "schemaJson is required")
		return false
	}
	if _, err := schema.Parse([]byte(blob)); err != nil {
		replyWithError(w, http.StatusUnprocessableEntity, "schemaJson does not parse: "+err.Error())
		return false
	}
	return true
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		replyWithError(w, http.StatusBadRequest, "invalid schema id")
		return 0, false
	}
	return id, true
}
