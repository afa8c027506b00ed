package user

import (
	"context"
	"net/http"

	"github.com/ormawadev/orgapi/internal/pagination"
	"github.com/ormawadev/orgapi/internal/transport"
)

type ServiceAPI interface {
	ListUsers(ctx context.Context, q ListQuery) ([]*User, pagination.Metadata, error)
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

// ListUsers handles GET /users.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := ParseListQuery(r.URL.Query())

	users, meta, err := h.Service.ListUsers(r.Context(), q)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WritePage(w, users, meta)
}
