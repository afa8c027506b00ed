package department

import (
	"context"
	"log/slog"

	"github.com/ormawadev/orgapi/internal"
	"github.com/ormawadev/orgapi/internal/pagination"
	"golang.org/x/sync/errgroup"
)

// Service assembles one listing page. The windowed query and the count query
// have no data dependency, so they run concurrently; slight inconsistency
// between page and total under concurrent writes is accepted.
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

func (s *Service) ListDepartments(ctx context.Context, q ListQuery) ([]*Department, pagination.Metadata, error) {
	var (
		departments []*Department
		total       int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		departments, err = s.repo.List(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, q)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to list departments", "error", err)
		return nil, pagination.Metadata{}, internal.NewInternalError("Internal server error", err)
	}

	return departments, pagination.NewMetadata(total, q.Page), nil
}
