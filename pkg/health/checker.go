// Package health provides Kubernetes-style liveness and readiness checks.
package health

import (
	"context"
	"time"
)

// DefaultTimeout bounds how long a readiness probe may take.
const DefaultTimeout = 5 * time.Second

// Status is the health state of a dependency.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Result of a single check.
type Result struct {
	Status  Status
	Message string
}

// Checker is a named dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}
