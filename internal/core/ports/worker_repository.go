package ports

import (
	"context"

	"github.com/Arjunreddypulugu/timeclock-web/internal/core/domain"
)

// WorkerRepository defines persistence operations for the worker registry.
type WorkerRepository interface {
	// FindByDevice resolves a worker by the device identifier last bound to it.
	FindByDevice(ctx context.Context, deviceID string) (*domain.Worker, error)
	// FindByNumber resolves a worker by phone number, the natural key.
	FindByNumber(ctx context.Context, number string) (*domain.Worker, error)
	// RebindDevice points the worker's device binding at a new device.
	// Unknown numbers are a no-op.
	RebindDevice(ctx context.Context, number, deviceID string) error
	// Create inserts a new worker. Returns domain.ErrWorkerExists when the
	// number is already registered.
	Create(ctx context.Context, w *domain.Worker) error
}
