package department_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/ormawadev/orgapi/internal"
	"github.com/ormawadev/orgapi/internal/department"
	"github.com/ormawadev/orgapi/internal/pagination"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type stubRepository struct {
	departments []*department.Department
	total       int64
	listErr     error
	countErr    error

	listCalls  int
	countCalls int
}

func (s *stubRepository) List(ctx context.Context, q department.ListQuery) ([]*department.Department, error) {
	s.listCalls++
	return s.departments, s.listErr
}

func (s *stubRepository) Count(ctx context.Context, q department.ListQuery) (int64, error) {
	s.countCalls++
	return s.total, s.countErr
}

var _ = Describe("Department Service", func() {
	var (
		repo    *stubRepository
		service *department.Service
	)

	BeforeEach(func() {
		repo = &stubRepository{
			departments: []*department.Department{
				{ID: "dept-1", Acronym: "humas", Programs: []department.ProgramSummary{}},
				{ID: "dept-2", Acronym: "kominfo", Programs: []department.ProgramSummary{}},
			},
			total: 12,
		}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = department.NewService(repo, slogger)
	})

	It("should return the page with metadata from the count", func() {
		q := department.ListQuery{Page: pagination.Params{Page: 2, Limit: 5}}

		departments, meta, err := service.ListDepartments(context.Background(), q)
		Expect(err).NotTo(HaveOccurred())
		Expect(departments).To(HaveLen(2))
		Expect(meta.Total).To(Equal(int64(12)))
		Expect(meta.Page).To(Equal(2))
		Expect(meta.Limit).To(Equal(5))
		Expect(meta.TotalPages).To(Equal(int64(3)))
		Expect(repo.listCalls).To(Equal(1))
		Expect(repo.countCalls).To(Equal(1))
	})

	It("should wrap a repository failure as an internal error", func() {
		repo.listErr = errors.New("connection refused")

		_, _, err := service.ListDepartments(context.Background(), department.ListQuery{
			Page: pagination.Params{Page: 1, Limit: 10},
		})
		Expect(err).To(HaveOccurred())

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(500))
		Expect(appErr.Code).To(Equal(internal.ErrCodeInternal))
		Expect(appErr.Message).To(Equal("Internal server error"))
	})

	It("should surface a count failure the same way", func() {
		repo.countErr = errors.New("connection refused")

		_, _, err := service.ListDepartments(context.Background(), department.ListQuery{
			Page: pagination.Params{Page: 1, Limit: 10},
		})
		Expect(err).To(HaveOccurred())

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(internal.ErrCodeInternal))
	})
})
