package list_branch_services

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SchedulingService/internal/api/handlers"
	"github.com/m04kA/SMC-SchedulingService/internal/service/catalog"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgBranchNotFound  = "филиал не найден"
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

// Handle GET /api/v1/branches/{branchId}/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := uuid.Parse(mux.Vars(r)["branchId"])
	if err != nil {
		h.logger.Warn("GET /branches/{id}/services - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	services, err := h.service.ListBranchServices(r.Context(), branchID)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id}/services - Branch not found: branch_id=%s", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		default:
			h.logger.Error("GET /branches/{id}/services - Failed to list services: branch_id=%s, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/services - Services retrieved successfully: branch_id=%s, count=%d",
		branchID, len(services))
	handlers.RespondJSON(w, http.StatusOK, fromServiceServices(services))
}
