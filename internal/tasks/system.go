package tasks

import (
	"context"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/pkg/pagination"
)

// System defines the public contract for task domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Task], error)

	Find(ctx context.Context, id uuid.UUID) (*Task, error)
	FindBySystem(ctx context.Context, systemID uuid.UUID) ([]Task, error)
	Assign(ctx context.Context, id uuid.UUID, cmd AssignCommand) (*Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, cmd StatusCommand) (*Task, error)
}
