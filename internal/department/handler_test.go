package department_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/ormawadev/orgapi/internal/core/datamodel/org"
	"github.com/ormawadev/orgapi/internal/department"
	departmentPostgres "github.com/ormawadev/orgapi/internal/department/postgres"
	"github.com/ormawadev/orgapi/internal/metrics"
	"github.com/ormawadev/orgapi/internal/ratelimit"
	"github.com/ormawadev/orgapi/internal/transport"
	"github.com/ormawadev/orgapi/internal/transport/middleware"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type denyAllLimiter struct {
	resetAt time.Time
}

func (d denyAllLimiter) Admit(ctx context.Context, identity string) (ratelimit.Result, error) {
	return ratelimit.Result{Allowed: false, ResetAt: d.resetAt}, nil
}

var _ = Describe("Department Handler Integration", func() {
	var (
		db      *gorm.DB
		handler *department.Handler
	)

	strPtr := func(s string) *string { return &s }

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&org.Period{}, &org.Department{}, &org.Program{})
		Expect(err).NotTo(HaveOccurred())

		repo := departmentPostgres.NewDepartmentRepository(db)
		service := department.NewService(repo, slogger)
		handler = department.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		period := &org.Period{ID: "period-2024", Logo: "logo.png", Name: "Kabinet Sinergi 2024", Year: 2024}
		Expect(db.Create(period).Error).NotTo(HaveOccurred())

		kominfo := &org.Department{
			ID: "dept-kominfo", Name: "Komunikasi dan Informasi", Acronym: "kominfo",
			Type: org.DepartmentTypeBE, PeriodYear: 2024, Image: strPtr("kominfo.png"),
		}
		humas := &org.Department{
			ID: "dept-humas", Name: "Hubungan Masyarakat", Acronym: "humas",
			Type: org.DepartmentTypeBE, PeriodYear: 2024,
		}
		Expect(db.Create(kominfo).Error).NotTo(HaveOccurred())
		Expect(db.Create(humas).Error).NotTo(HaveOccurred())

		programs := []*org.Program{
			{ID: "prog-1", Content: "Pelatihan desain grafis", DepartmentID: "dept-kominfo"},
			{ID: "prog-2", Content: "Pengelolaan media sosial", DepartmentID: "dept-kominfo"},
			{ID: "prog-3", Content: "Dokumentasi kegiatan", DepartmentID: "dept-kominfo"},
		}
		for _, p := range programs {
			Expect(db.Create(p).Error).NotTo(HaveOccurred())
		}
	})

	It("should list departments for a year with their nested programs", func() {
		req := httptest.NewRequest(http.MethodGet, "/departments?year=2024", nil)
		w := httptest.NewRecorder()

		handler.ListDepartments(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response struct {
			Data      []department.Department `json:"data"`
			Timestamp string                  `json:"timestamp"`
			Code      string                  `json:"code"`
			Metadata  struct {
				Total      int64 `json:"total"`
				Page       int   `json:"page"`
				Limit      int   `json:"limit"`
				TotalPages int64 `json:"totalPages"`
			} `json:"metadata"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).NotTo(HaveOccurred())

		Expect(response.Code).To(Equal("SUCCESS"))
		Expect(response.Timestamp).NotTo(BeEmpty())
		Expect(response.Data).To(HaveLen(2))
		Expect(response.Metadata.Total).To(Equal(int64(2)))
		Expect(response.Metadata.TotalPages).To(Equal(int64(1)))

		// acronym ascending puts humas first
		Expect(response.Data[0].Acronym).To(Equal("humas"))
		Expect(response.Data[0].Programs).To(BeEmpty())
		Expect(response.Data[1].Acronym).To(Equal("kominfo"))
		Expect(response.Data[1].Programs).To(HaveLen(3))
		Expect(response.Data[1].Period).NotTo(BeNil())
		Expect(response.Data[1].Period.Year).To(Equal(2024))
	})

	It("should keep programs a JSON array even when empty", func() {
		req := httptest.NewRequest(http.MethodGet, "/departments?acronym=humas", nil)
		w := httptest.NewRecorder()

		handler.ListDepartments(w, req)
		Expect(w.Code).To(Equal(http.StatusOK))

		var raw map[string]json.RawMessage
		Expect(json.Unmarshal(w.Body.Bytes(), &raw)).NotTo(HaveOccurred())
		Expect(string(raw["data"])).To(ContainSubstring(`"programs":[]`))
	})

	It("should reject an unknown type with the allowed values in metadata", func() {
		req := httptest.NewRequest(http.MethodGet, "/departments?type=abc", nil)
		w := httptest.NewRecorder()

		handler.ListDepartments(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var response struct {
			Error    string `json:"error"`
			Code     string `json:"code"`
			Metadata struct {
				AllowedTypes []string `json:"allowedTypes"`
			} `json:"metadata"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).NotTo(HaveOccurred())
		Expect(response.Code).To(Equal("BAD_REQUEST"))
		Expect(response.Metadata.AllowedTypes).To(Equal([]string{"be", "dp"}))
	})

	It("should not run any query for an over-quota client", func() {
		repo := &stubRepository{}
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service := department.NewService(repo, slogger)
		gated := middleware.RateLimit(denyAllLimiter{resetAt: time.Now().Add(10 * time.Second)}, metrics.Nop{}, slogger)(
			http.HandlerFunc(department.NewHandler(&transport.BaseHandler{Logger: slogger}, service).ListDepartments),
		)

		req := httptest.NewRequest(http.MethodGet, "/departments?type=be", nil)
		w := httptest.NewRecorder()

		gated.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusTooManyRequests))
		Expect(repo.listCalls).To(BeZero())
		Expect(repo.countCalls).To(BeZero())

		var response struct {
			Code     string `json:"code"`
			Metadata struct {
				ResetTimestamp int64 `json:"resetTimestamp"`
			} `json:"metadata"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).NotTo(HaveOccurred())
		Expect(response.Code).To(Equal("TOO_MANY_REQUESTS"))
		Expect(response.Metadata.ResetTimestamp).To(BeNumerically(">", 0))
	})

	It("should return an empty page past the end of the result set", func() {
		req := httptest.NewRequest(http.MethodGet, "/departments?page=5", nil)
		w := httptest.NewRecorder()

		handler.ListDepartments(w, req)
		Expect(w.Code).To(Equal(http.StatusOK))

		var response struct {
			Data     []department.Department `json:"data"`
			Metadata struct {
				Total int64 `json:"total"`
			} `json:"metadata"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&response)).NotTo(HaveOccurred())
		Expect(response.Data).To(BeEmpty())
		Expect(response.Metadata.Total).To(Equal(int64(2)))
	})
})
