package ratelimit_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ormawadev/orgapi/internal/ratelimit"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRateLimit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RateLimit Suite")
}

var _ = Describe("MemoryLimiter", func() {
	var limiter *ratelimit.MemoryLimiter

	AfterEach(func() {
		if limiter != nil {
			limiter.Stop()
		}
	})

	It("admits up to the quota and then rejects", func() {
		limiter = ratelimit.NewMemoryLimiter(3, time.Minute)

		for i := 0; i < 3; i++ {
			res, err := limiter.Admit(context.Background(), "10.0.0.1")
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Allowed).To(BeTrue())
		}

		res, err := limiter.Admit(context.Background(), "10.0.0.1")
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Allowed).To(BeFalse())
	})

	It("reports a reset time in the future when rejecting", func() {
		limiter = ratelimit.NewMemoryLimiter(1, time.Minute)

		_, err := limiter.Admit(context.Background(), "10.0.0.2")
		Expect(err).NotTo(HaveOccurred())

		res, err := limiter.Admit(context.Background(), "10.0.0.2")
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Allowed).To(BeFalse())
		Expect(res.ResetAt).To(BeTemporally(">", time.Now()))
	})

	It("tracks identities independently", func() {
		limiter = ratelimit.NewMemoryLimiter(1, time.Minute)

		res, err := limiter.Admit(context.Background(), "10.0.0.3")
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Allowed).To(BeTrue())

		res, err = limiter.Admit(context.Background(), "10.0.0.4")
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Allowed).To(BeTrue())

		res, err = limiter.Admit(context.Background(), "10.0.0.3")
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Allowed).To(BeFalse())
	})
})

var _ = Describe("ClientIP", func() {
	It("prefers the first X-Forwarded-For hop", func() {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.168.1.9:43210"
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 198.51.100.2")

		Expect(ratelimit.ClientIP(req)).To(Equal("203.0.113.7"))
	})

	It("falls back to X-Real-IP", func() {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.168.1.9:43210"
		req.Header.Set("X-Real-IP", "203.0.113.8")

		Expect(ratelimit.ClientIP(req)).To(Equal("203.0.113.8"))
	})

	It("strips the port from RemoteAddr", func() {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.168.1.9:43210"

		Expect(ratelimit.ClientIP(req)).To(Equal("192.168.1.9"))
	})
})
