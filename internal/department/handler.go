package department

import (
	"context"
	"net/http"

	"github.com/ormawadev/orgapi/internal/pagination"
	"github.com/ormawadev/orgapi/internal/transport"
)

type ServiceAPI interface {
	ListDepartments(ctx context.Context, q ListQuery) ([]*Department, pagination.Metadata, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// ListDepartments handles GET /departments.
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	q, err := ParseListQuery(r.URL.Query())
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	departments, meta, err := h.Service.ListDepartments(r.Context(), q)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WritePage(w, departments, meta)
}
