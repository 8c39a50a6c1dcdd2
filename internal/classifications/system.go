package classifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/pkg/pagination"
)

// System defines the public contract for classification domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Classification], error)

	Find(ctx context.Context, id uuid.UUID) (*Classification, error)
	FindBySystem(ctx context.Context, systemID uuid.UUID) (*Classification, error)
	DismissReassessment(ctx context.Context, id uuid.UUID, cmd DismissCommand) (*Classification, error)
}
