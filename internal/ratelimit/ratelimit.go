// Package ratelimit is the admission-control gate in front of the listing
// endpoints. Every inbound request consumes one unit of its client's quota
// before any query work happens; over-quota clients are turned away with the
// window's reset time.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of one admission check.
type Result struct {
	Allowed   bool
	Remaining int64
	ResetAt   time.Time
}

// Limiter admits or rejects a request for the given client identity.
// Admit consumes quota on every call, allowed or not. An error means the
// quota store itself is unreachable; callers must treat that as fatal for
// the request, never as an implicit allow.
type Limiter interface {
	Admit(ctx context.Context, identity string) (Result, error)
}
