package systems

import (
	"context"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/pkg/pagination"
)

// System defines the public contract for AI system domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[AISystem], error)

	Find(ctx context.Context, id uuid.UUID) (*AISystem, error)
	Create(ctx context.Context, cmd CreateCommand) (*EvaluationResult, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*EvaluationResult, error)
	Evaluate(ctx context.Context, id uuid.UUID) (*EvaluationResult, error)
	EvaluateAll(ctx context.Context) ([]EvaluationResult, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
