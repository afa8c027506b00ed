package news

import (
	"context"
	"log/slog"

	"github.com/ormawadev/orgapi/internal"
	"github.com/ormawadev/orgapi/internal/pagination"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ListNews returns one page of published news posts. Page and count queries
// run concurrently; they are independent reads.
func (s *Service) ListNews(ctx context.Context, q ListQuery) ([]*Post, pagination.Metadata, error) {
	var (
		posts []*Post
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.repo.List(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, q)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to list news", "error", err, "search", q.Search)
		return nil, pagination.Metadata{}, internal.NewInternalError("Internal server error", err)
	}

	return posts, pagination.NewMetadata(total, q.Page), nil
}
