package handler

import (
	"net/http"

	"github.com/cradoe/safetrain/internal/errHandler"
	"github.com/cradoe/safetrain/internal/repository"
	"github.com/cradoe/safetrain/internal/response"
	"github.com/cradoe/safetrain/internal/version"
)

type HealthHandler struct {
	DB         repository.Database
	ErrHandler *errHandler.ErrorHandler
}

func NewHealthHandler(handler *HealthHandler) *HealthHandler {
	return &HealthHandler{
		DB:         handler.DB,
		ErrHandler: handler.ErrHandler,
	}
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// HandleHealthCheck answers 200 while the database is reachable and 503 with the error envelope otherwise.
func (h *HealthHandler) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	data := healthResponse{
		Status:  "available",
		Version: version.Get(),
	}

	if err := h.DB.Ping(r.Context()); err != nil {
		h.ErrHandler.ReportServerError(r, err)

		data.Status = "degraded"
		err = response.JSONErrorResponse(w, data, "Database is unreachable", http.StatusServiceUnavailable, nil)
		if err != nil {
			h.ErrHandler.ServerError(w, r, err)
		}
		return
	}

	err := response.JSONOk(w, data)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
