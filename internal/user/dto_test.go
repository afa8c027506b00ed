package user_test

import (
	"net/url"
	"testing"

	"github.com/ormawadev/orgapi/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Suite")
}

var _ = Describe("ParseListQuery", func() {
	parse := func(raw string) user.ListQuery {
		values, err := url.ParseQuery(raw)
		Expect(err).NotTo(HaveOccurred())
		return user.ParseListQuery(values)
	}

	It("should default to name ascending with no filters", func() {
		q := parse("")
		Expect(q.OrderBy).To(Equal("name"))
		Expect(q.Order).To(Equal("asc"))
		Expect(q.PeriodYears).To(BeEmpty())
		Expect(q.DepartmentIDs).To(BeEmpty())
		Expect(q.PositionNames).To(BeEmpty())
	})

	It("should accept username as sort field", func() {
		q := parse("orderBy=username&order=desc")
		Expect(q.OrderBy).To(Equal("username"))
		Expect(q.Order).To(Equal("desc"))
	})

	It("should fall back silently on an unknown sort field", func() {
		q := parse("orderBy=email")
		Expect(q.OrderBy).To(Equal("name"))
	})

	It("should split list filters on commas", func() {
		q := parse("periodYears=2023,2024&departmentIds=dept-1,dept-2&positionNames=ketua,staff")
		Expect(q.PeriodYears).To(Equal([]int{2023, 2024}))
		Expect(q.DepartmentIDs).To(Equal([]string{"dept-1", "dept-2"}))
		Expect(q.PositionNames).To(Equal([]string{"ketua", "staff"}))
	})

	It("should drop blank and non-numeric tokens", func() {
		q := parse("periodYears=2024,,abc&departmentIds=,%20,dept-1")
		Expect(q.PeriodYears).To(Equal([]int{2024}))
		Expect(q.DepartmentIDs).To(Equal([]string{"dept-1"}))
	})
})
