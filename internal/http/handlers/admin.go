package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stratahub/strata-portal/internal/components"
	"github.com/stratahub/strata-portal/internal/http/response"
	"github.com/stratahub/strata-portal/internal/platform/logger"
	"github.com/stratahub/strata-portal/internal/registry"
)

type panelProvider interface {
	Panel() components.Panel
}

// AdminHandler exposes the registry's model catalogue for administrative UIs.
type AdminHandler struct {
	log      *logger.Logger
	registry *registry.Registry
}

func NewAdminHandler(log *logger.Logger, reg *registry.Registry) *AdminHandler {
	return &AdminHandler{log: log.With("handler", "AdminHandler"), registry: reg}
}

// GET /admin/models — every registered model in registration order, optionally
// narrowed with ?category=.
func (ah *AdminHandler) ListModels(c *gin.Context) {
	configs := ah.registry.All()
	if raw, present := c.GetQuery("category"); present {
		configs = ah.registry.ByCategory(registry.Category(raw))
	}

	models := make([]gin.H, 0, len(configs))
	for _, cfg := range configs {
		models = append(models, gin.H{
			"model":        cfg.ModelType().Name(),
			"slug":         cfg.Slug(),
			"display_name": cfg.DisplayName,
			"category":     cfg.Category(),
		})
	}
	response.RespondOK(c, gin.H{"models": models, "count": len(models)})
}

// GET /admin/models/:model — the admin panel descriptor for one model.
func (ah *AdminHandler) GetModel(c *gin.Context) {
	cfg, err := ah.registry.GetBySlug(c.Param("model"))
	if err != nil {
		response.RespondError(c, http.StatusNotFound, "unknown_model", err)
		return
	}
	comp, err := cfg.Component(registry.KindAdmin)
	if err != nil {
		ah.log.Error("Admin panel generation failed",
			"model", cfg.ModelType().Name(), "error", err)
		response.RespondError(c, http.StatusInternalServerError, "component_generation_failed", err)
		return
	}
	admin, ok := comp.(panelProvider)
	if !ok {
		response.RespondError(c, http.StatusInternalServerError, "component_mismatch",
			fmt.Errorf("admin component of %s does not provide a panel", cfg.ModelType().Name()))
		return
	}
	response.RespondOK(c, admin.Panel())
}
