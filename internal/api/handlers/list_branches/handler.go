package list_branches

import (
	"net/http"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branches, err := h.service.ListBranches(r.Context())
	if err != nil {
		h.logger.Error("GET /branches - Failed to list branches: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /branches - Branches retrieved successfully: count=%d", len(branches))
	handlers.RespondJSON(w, http.StatusOK, fromServiceBranches(branches))
}
