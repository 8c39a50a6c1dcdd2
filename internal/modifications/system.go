package modifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/pkg/pagination"
)

// System defines the public contract for modification domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[ModificationRecord], error)

	Find(ctx context.Context, id uuid.UUID) (*ModificationRecord, error)
	FindBySystem(ctx context.Context, systemID uuid.UUID) ([]ModificationRecord, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, cmd StatusCommand) (*ModificationRecord, error)
}
