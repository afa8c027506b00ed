package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ormawadev/orgapi/internal"
	"github.com/ormawadev/orgapi/internal/pagination"
	"github.com/ormawadev/orgapi/pkg/logger"
)

// BaseHandler provides the envelope writers shared by all endpoint handlers.
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.L()
	}
	return &BaseHandler{Logger: lg}
}

// WritePage writes a 200 success envelope around a result page.
func (h *BaseHandler) WritePage(w http.ResponseWriter, data any, meta pagination.Metadata) {
	h.writeJSON(w, http.StatusOK, NewSuccessEnvelope(data, meta))
}

// WriteAppError writes the uniform error envelope for err. Anything that is
// not an AppError is wrapped as an internal error first so no raw failure
// leaks to the client unshaped.
func (h *BaseHandler) WriteAppError(w http.ResponseWriter, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		appErr = internal.NewInternalError("Internal server error", err)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		h.Logger.Error("request failed", "code", appErr.Code, "error", appErr.Error())
	} else {
		h.Logger.Warn("request rejected", "code", appErr.Code, "message", appErr.Message)
	}

	h.writeJSON(w, appErr.StatusCode, NewErrorEnvelope(appErr.Message, string(appErr.Code), appErr.Metadata))
}

func (h *BaseHandler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}
