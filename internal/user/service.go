package user

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

// ListUsers returns one page of members with their association arrays.
// Page and count queries run concurrently.
func (s *Service) ListUsers(ctx context.Context, q ListQuery) ([]*User, pagination.Metadata, error) {
	var (
		users []*User
		total int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = s.repo.List(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, q)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, pagination.Metadata{}, internal.NewInternalError("Internal server error", err)
	}

	return users, pagination.NewMetadata(total, q.Page), nil
}
