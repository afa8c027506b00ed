package postgres_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/ormawadev/orgapi/internal/core/datamodel/org"
	"github.com/ormawadev/orgapi/internal/department"
	departmentPostgres "github.com/ormawadev/orgapi/internal/department/postgres"
	"github.com/ormawadev/orgapi/internal/pagination"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDepartmentPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Department Postgres Suite")
}

var _ = Describe("Department Repository", func() {
	var (
		db   *gorm.DB
		repo department.Repository
		ctx  context.Context
	)

	firstPage := pagination.Params{Page: 1, Limit: 10}

	BeforeEach(func() {
		var err error
		ctx = context.Background()

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&org.Period{}, &org.Department{}, &org.Program{})
		Expect(err).NotTo(HaveOccurred())

		repo = departmentPostgres.NewDepartmentRepository(db)

		periods := []*org.Period{
			{ID: "period-2023", Logo: "logo.png", Name: "Kabinet Karsa 2023", Year: 2023},
			{ID: "period-2024", Logo: "logo.png", Name: "Kabinet Sinergi 2024", Year: 2024},
		}
		for _, p := range periods {
			Expect(db.Create(p).Error).NotTo(HaveOccurred())
		}

		departments := []*org.Department{
			{ID: "dept-kominfo", Name: "Komunikasi dan Informasi", Acronym: "kominfo", Type: "BE", PeriodYear: 2024},
			{ID: "dept-humas", Name: "Hubungan Masyarakat", Acronym: "humas", Type: "BE", PeriodYear: 2024},
			{ID: "dept-komaspi", Name: "Komisi Aspirasi", Acronym: "komaspi", Type: "DP", PeriodYear: 2024},
			{ID: "dept-kominfo-23", Name: "Komunikasi dan Informasi", Acronym: "kominfo", Type: "BE", PeriodYear: 2023},
		}
		for _, d := range departments {
			Expect(db.Create(d).Error).NotTo(HaveOccurred())
		}

		programs := []*org.Program{
			{ID: "prog-1", Content: "Pelatihan desain grafis", DepartmentID: "dept-kominfo"},
			{ID: "prog-2", Content: "Pengelolaan media sosial", DepartmentID: "dept-kominfo"},
			{ID: "prog-3", Content: "Dokumentasi kegiatan", DepartmentID: "dept-kominfo"},
		}
		for _, p := range programs {
			Expect(db.Create(p).Error).NotTo(HaveOccurred())
		}
	})

	Describe("List", func() {
		It("should order by acronym ascending", func() {
			result, err := repo.List(ctx, department.ListQuery{Page: firstPage})
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(4))
			Expect(result[0].Acronym).To(Equal("humas"))
			Expect(result[1].Acronym).To(Equal("komaspi"))
			Expect(result[2].Acronym).To(Equal("kominfo"))
			Expect(result[3].Acronym).To(Equal("kominfo"))
		})

		It("should fold program rows into one entry per department", func() {
			year := 2024
			result, err := repo.List(ctx, department.ListQuery{Page: firstPage, Year: &year})
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(3))

			byID := map[string]*department.Department{}
			for _, d := range result {
				byID[d.ID] = d
			}
			Expect(byID["dept-kominfo"].Programs).To(HaveLen(3))
			Expect(byID["dept-humas"].Programs).NotTo(BeNil())
			Expect(byID["dept-humas"].Programs).To(BeEmpty())
		})

		It("should attach the period matched on year", func() {
			result, err := repo.List(ctx, department.ListQuery{Page: firstPage, Acronym: "humas"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].Period).NotTo(BeNil())
			Expect(result[0].Period.ID).To(Equal("period-2024"))
			Expect(result[0].Period.Name).To(Equal("Kabinet Sinergi 2024"))
		})

		It("should combine type and year conjunctively", func() {
			year := 2024
			result, err := repo.List(ctx, department.ListQuery{Page: firstPage, Type: "BE", Year: &year})
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(2))
			for _, d := range result {
				Expect(d.Type).To(Equal("BE"))
				Expect(d.PeriodYear).To(Equal(2024))
			}
		})

		It("should match acronym as a substring", func() {
			result, err := repo.List(ctx, department.ListQuery{Page: firstPage, Acronym: "kom"})
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(3))
		})

		It("should page at department granularity regardless of program fanout", func() {
			// limit 1 starting at the department with three programs
			year := 2024
			q := department.ListQuery{Page: pagination.Params{Page: 3, Limit: 1}, Year: &year}
			result, err := repo.List(ctx, q)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].ID).To(Equal("dept-kominfo"))
			Expect(result[0].Programs).To(HaveLen(3))
		})

		It("should return an empty slice past the last page", func() {
			result, err := repo.List(ctx, department.ListQuery{Page: pagination.Params{Page: 9, Limit: 10}})
			Expect(err).NotTo(HaveOccurred())
			Expect(result).NotTo(BeNil())
			Expect(result).To(BeEmpty())
		})
	})

	Describe("Count", func() {
		It("should count departments, not joined rows", func() {
			year := 2024
			total, err := repo.Count(ctx, department.ListQuery{Page: firstPage, Year: &year})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
		})

		It("should apply the same filters as List", func() {
			for i := 0; i < 3; i++ {
				d := &org.Department{
					ID:         fmt.Sprintf("dept-extra-%d", i),
					Name:       "Extra",
					Acronym:    fmt.Sprintf("extra%d", i),
					Type:       "DP",
					PeriodYear: 2023,
				}
				Expect(db.Create(d).Error).NotTo(HaveOccurred())
			}

			total, err := repo.Count(ctx, department.ListQuery{Page: firstPage, Type: "DP"})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(4)))
		})
	})
})
