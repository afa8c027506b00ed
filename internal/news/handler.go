package news

import (
	"context"
	"net/http"

	"github.com/ormawadev/orgapi/internal/pagination"
	"github.com/ormawadev/orgapi/internal/transport"
)

type ServiceAPI interface {
	ListNews(ctx context.Context, q ListQuery) ([]*Post, pagination.Metadata, error)
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

// ListNews handles GET /news.
func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	q := ParseListQuery(r.URL.Query())

	posts, meta, err := h.Service.ListNews(r.Context(), q)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WritePage(w, posts, meta)
}
