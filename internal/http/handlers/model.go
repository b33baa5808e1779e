package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stratahub/strata-portal/internal/clients/redis"
	"github.com/stratahub/strata-portal/internal/components"
	"github.com/stratahub/strata-portal/internal/http/response"
	pkgerrors "github.com/stratahub/strata-portal/internal/pkg/errors"
	"github.com/stratahub/strata-portal/internal/platform/logger"
	"github.com/stratahub/strata-portal/internal/registry"
	"github.com/stratahub/strata-portal/internal/repos"
)

// The generated components are consumed through small behavior interfaces so
// override classes can swap in their own implementations.
type listSerializer interface {
	Serialize(entity any) map[string]any
	SerializeList(entities any) []map[string]any
}

type queryFilter interface {
	Apply(db *gorm.DB, values url.Values) *gorm.DB
}

type formDecoder interface {
	Fields() []components.FormField
	Decode(payload map[string]any) map[string]any
}

type tableRenderer interface {
	Render(entities any) components.TableData
}

type csvResource interface {
	Header() []string
	ExportCSV(w io.Writer, entities any) error
	ImportCSV(r io.Reader) ([]map[string]any, error)
}

// ModelHandler serves the generated CRUD surface for every registered model.
// The model is picked by URL slug; everything else comes from the registry.
type ModelHandler struct {
	log      *logger.Logger
	registry *registry.Registry
	repo     repos.EntityRepo
	cache    *redis.ListCache
}

func NewModelHandler(
	log *logger.Logger, reg *registry.Registry, repo repos.EntityRepo, cache *redis.ListCache,
) *ModelHandler {
	return &ModelHandler{
		log:      log.With("handler", "ModelHandler"),
		registry: reg,
		repo:     repo,
		cache:    cache,
	}
}

func (mh *ModelHandler) config(c *gin.Context) (*registry.ModelConfig, bool) {
	cfg, err := mh.registry.GetBySlug(c.Param("model"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "unknown_model", err)
		return nil, false
	}
	return cfg, true
}

// component builds a model's component and maps generation failures onto the
// HTTP surface. Configuration authoring bugs surface as 500s on first use.
func (mh *ModelHandler) component(c *gin.Context, cfg *registry.ModelConfig, kind registry.Kind) (registry.Component, bool) {
	comp, err := cfg.Component(kind)
	if err != nil {
		mh.log.Error("Component generation failed",
			"model", cfg.ModelType().Name(), "kind", string(kind), "error", err)
		response.RespondError(c, http.StatusInternalServerError, "component_generation_failed", err)
		return nil, false
	}
	return comp, true
}

// GET /api/:model
func (mh *ModelHandler) List(c *gin.Context) {
	cfg, ok := mh.config(c)
	if !ok {
		return
	}

	if payload, hit := mh.cache.Get(c.Request.Context(), cfg.Slug(), c.Request.URL.RawQuery); hit {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	entities, ok := mh.loadList(c, cfg)
	if !ok {
		return
	}

	comp, ok := mh.component(c, cfg, registry.KindSerializer)
	if !ok {
		return
	}
	ser, ok := comp.(listSerializer)
	if !ok {
		response.RespondError(c, http.StatusInternalServerError, "component_mismatch",
			fmt.Errorf("serializer component of %s does not serialize", cfg.ModelType().Name()))
		return
	}

	items := ser.SerializeList(entities)
	envelope := gin.H{"items": items, "count": len(items)}
	if payload, err := json.Marshal(envelope); err == nil {
		mh.cache.Set(c.Request.Context(), cfg.Slug(), c.Request.URL.RawQuery, payload)
	}
	response.RespondOK(c, envelope)
}

// GET /api/:model/_table
func (mh *ModelHandler) Table(c *gin.Context) {
	cfg, ok := mh.config(c)
	if !ok {
		return
	}
	entities, ok := mh.loadList(c, cfg)
	if !ok {
		return
	}
	comp, ok := mh.component(c, cfg, registry.KindTable)
	if !ok {
		return
	}
	table, ok := comp.(tableRenderer)
	if !ok {
		response.RespondError(c, http.StatusInternalServerError, "component_mismatch",
			fmt.Errorf("table component of %s does not render", cfg.ModelType().Name()))
		return
	}
	response.RespondOK(c, table.Render(entities))
}

// GET /api/:model/_schema
func (mh *ModelHandler) Schema(c *gin.Context) {
	cfg, ok := mh.config(c)
	if !ok {
		return
	}
	comp, ok := mh.component(c, cfg, registry.KindForm)
	if !ok {
		return
	}
	form, ok := comp.(formDecoder)
	if !ok {
		response.RespondError(c, http.StatusInternalServerError, "component_mismatch",
			fmt.Errorf("form component of %s does not describe fields", cfg.ModelType().Name()))
		return
	}
	response.RespondOK(c, gin.H{
		"model":        cfg.ModelType().Name(),
		"display_name": cfg.DisplayName,
		"fields":       form.Fields(),
	})
}

// GET /api/:model/:id
func (mh *ModelHandler) Get(c *gin.Context) {
	cfg, ok := mh.config(c)
	if !ok {
		return
	}
	entity, ok := mh.loadOne(c, cfg)
	if !ok {
		return
	}
	comp, ok := mh.component(c, cfg, registry.KindSerializer)
	if !ok {
		return
	}
	ser, ok := comp.(listSerializer)
	if !ok {
		response.RespondError(c, http.StatusInternalServerError, "component_mismatch",
			fmt.Errorf("serializer component of %s does not serialize", cfg.ModelType().Name()))
		return
	}
	response.RespondOK(c, ser.Serialize(entity))
}

// POST /api/:model
func (mh *ModelHandler) Create(c *gin.Context) {
	cfg, ok := mh.config(c)
	if !ok {
		return
	}
	entity, ok := mh.decodeInto(c, cfg, reflect.New(cfg.ModelType()).Interface())
	if !ok {
		return
	}
	if err := mh.repo.Create(c.Request.Context(), nil, entity); err != nil {
		mh.log.Error("Create failed", "model", cfg.ModelType().Name(), "error", err)
		response.RespondError(c, http.StatusBadRequest, "create_failed", err)
		return
	}
	mh.cache.Invalidate(c.Request.Context(), cfg.Slug())
	response.RespondCreated(c, entity)
}

// PATCH /api/:model/:id
func (mh *ModelHandler) Update(c *gin.Context) {
	cfg, ok := mh.config(c)
	if !ok {
		return
	}
	entity, ok := mh.loadOne(c, cfg)
	if !ok {
		return
	}
	entity, ok = mh.decodeInto(c, cfg, entity)
	if !ok {
		return
	}
	if err := mh.repo.Save(c.Request.Context(), nil, entity); err != nil {
		mh.log.Error("Update failed", "model", cfg.ModelType().Name(), "error", err)
		response.RespondError(c, http.StatusBadRequest, "update_failed", err)
		return
	}
	mh.cache.Invalidate(c.Request.Context(), cfg.Slug())
	response.RespondOK(c, entity)
}

// DELETE /api/:model/:id
func (mh *ModelHandler) Delete(c *gin.Context) {
	cfg, ok := mh.config(c)
	if !ok {
		return
	}
	err := mh.repo.DeleteByID(c.Request.Context(), nil, cfg.ModelType(), c.Param("id"))
	if errors.Is(err, pkgerrors.ErrNotFound) {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return
	}
	if err != nil {
		mh.log.Error("Delete failed", "model", cfg.ModelType().Name(), "error", err)
		response.RespondError(c, http.StatusInternalServerError, "delete_failed", err)
		return
	}
	mh.cache.Invalidate(c.Request.Context(), cfg.Slug())
	response.RespondOK(c, gin.H{"ok": true})
}

// GET /api/:model/_export
func (mh *ModelHandler) Export(c *gin.Context) {
	cfg, ok := mh.config(c)
	if !ok {
		return
	}
	entities, ok := mh.loadList(c, cfg)
	if !ok {
		return
	}
	comp, ok := mh.component(c, cfg, registry.KindResource)
	if !ok {
		return
	}
	resource, ok := comp.(csvResource)
	if !ok {
		response.RespondError(c, http.StatusInternalServerError, "component_mismatch",
			fmt.Errorf("resource component of %s does not export", cfg.ModelType().Name()))
		return
	}
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", cfg.Slug()+".csv"))
	c.Status(http.StatusOK)
	if err := resource.ExportCSV(c.Writer, entities); err != nil {
		mh.log.Error("Export failed", "model", cfg.ModelType().Name(), "error", err)
	}
}

// POST /api/:model/_import
func (mh *ModelHandler) Import(c *gin.Context) {
	cfg, ok := mh.config(c)
	if !ok {
		return
	}
	comp, ok := mh.component(c, cfg, registry.KindResource)
	if !ok {
		return
	}
	resource, ok := comp.(csvResource)
	if !ok {
		response.RespondError(c, http.StatusInternalServerError, "component_mismatch",
			fmt.Errorf("resource component of %s does not import", cfg.ModelType().Name()))
		return
	}

	rows, err := resource.ImportCSV(c.Request.Body)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "import_failed", err)
		return
	}
	created := 0
	for _, row := range rows {
		entity, err := instantiate(cfg.ModelType(), row)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "import_failed", err)
			return
		}
		if err := mh.repo.Create(c.Request.Context(), nil, entity); err != nil {
			response.RespondError(c, http.StatusBadRequest, "import_failed",
				fmt.Errorf("row %d: %w", created+1, err))
			return
		}
		created++
	}
	mh.cache.Invalidate(c.Request.Context(), cfg.Slug())
	response.RespondCreated(c, gin.H{"created": created})
}

func (mh *ModelHandler) loadList(c *gin.Context, cfg *registry.ModelConfig) (any, bool) {
	var scopes []func(*gorm.DB) *gorm.DB
	if comp, err := cfg.Component(registry.KindFilterSet); err == nil {
		if fs, ok := comp.(queryFilter); ok {
			query := c.Request.URL.Query()
			scopes = append(scopes, func(db *gorm.DB) *gorm.DB {
				return fs.Apply(db, query)
			})
		}
	} else {
		mh.log.Error("FilterSet generation failed",
			"model", cfg.ModelType().Name(), "error", err)
		response.RespondError(c, http.StatusInternalServerError, "component_generation_failed", err)
		return nil, false
	}

	entities, err := mh.repo.List(c.Request.Context(), nil, cfg.ModelType(), scopes...)
	if err != nil {
		mh.log.Error("List failed", "model", cfg.ModelType().Name(), "error", err)
		response.RespondError(c, http.StatusInternalServerError, "list_failed", err)
		return nil, false
	}
	return entities, true
}

func (mh *ModelHandler) loadOne(c *gin.Context, cfg *registry.ModelConfig) (any, bool) {
	entity, err := mh.repo.GetByID(c.Request.Context(), nil, cfg.ModelType(), c.Param("id"))
	if errors.Is(err, pkgerrors.ErrNotFound) {
		response.RespondError(c, http.StatusNotFound, "not_found", err)
		return nil, false
	}
	if err != nil {
		mh.log.Error("Get failed", "model", cfg.ModelType().Name(), "error", err)
		response.RespondError(c, http.StatusInternalServerError, "get_failed", err)
		return nil, false
	}
	return entity, true
}

// decodeInto filters the JSON body through the model's form and applies the
// surviving attributes to the entity. The form is the only write path, so
// fields outside it can never be set over HTTP.
func (mh *ModelHandler) decodeInto(c *gin.Context, cfg *registry.ModelConfig, entity any) (any, bool) {
	comp, ok := mh.component(c, cfg, registry.KindForm)
	if !ok {
		return nil, false
	}
	form, ok := comp.(formDecoder)
	if !ok {
		response.RespondError(c, http.StatusInternalServerError, "component_mismatch",
			fmt.Errorf("form component of %s does not decode", cfg.ModelType().Name()))
		return nil, false
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return nil, false
	}
	if err := applyAttributes(entity, form.Decode(body)); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return nil, false
	}
	return entity, true
}

// applyAttributes writes snake-named attribute values onto a model instance
// through its json tags.
func applyAttributes(entity any, attrs map[string]any) error {
	raw, err := json.Marshal(attrs)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, entity)
}

// instantiate creates a model instance from imported attributes, ignoring
// relational path columns (export-only context).
func instantiate(modelType reflect.Type, row map[string]any) (any, error) {
	attrs := make(map[string]any, len(row))
	for k, v := range row {
		if v == nil {
			continue
		}
		attrs[k] = v
	}
	entity := reflect.New(modelType).Interface()
	if err := applyAttributes(entity, attrs); err != nil {
		return nil, err
	}
	return entity, nil
}
