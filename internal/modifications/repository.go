package modifications

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/engine"
	"github.com/veridian-labs/regent/pkg/pagination"
	"github.com/veridian-labs/regent/pkg/query"
	"github.com/veridian-labs/regent/pkg/repository"
)

const returningColumns = `id, system_id, field, old_value, new_value,
		modification_type, requires_new_conformity, status, detected_at`

// validTransitions defines the allowed review status transitions. Complete
// and waived are terminal; waiving is only possible before completion.
var validTransitions = map[engine.ModificationStatus][]engine.ModificationStatus{
	engine.ModificationPending:    {engine.ModificationInProgress, engine.ModificationWaived},
	engine.ModificationInProgress: {engine.ModificationComplete, engine.ModificationWaived},
}

func transitionAllowed(from, to engine.ModificationStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// transitionSources returns the statuses a row may currently hold for a
// transition into to. The set rides in UpdateStatus's WHERE clause so the
// check and the write are a single statement.
func transitionSources(to engine.ModificationStatus) []engine.ModificationStatus {
	sources := make([]engine.ModificationStatus, 0, len(validTransitions))
	for from, allowed := range validTransitions {
		if slices.Contains(allowed, to) {
			sources = append(sources, from)
		}
	}
	slices.Sort(sources)
	return sources
}

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a modification repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "modifications"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[ModificationRecord], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Field", "OldValue", "NewValue")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count modifications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanModification)
	if err != nil {
		return nil, fmt.Errorf("query modifications: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*ModificationRecord, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	m, err := repository.QueryOne(ctx, r.db, q, args, scanModification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &m, nil
}

func (r *repo) FindBySystem(ctx context.Context, systemID uuid.UUID) ([]ModificationRecord, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("SystemID", &systemID).
		Build()

	return repository.QueryMany(ctx, r.db, q, args, scanModification)
}

func (r *repo) UpdateStatus(ctx context.Context, id uuid.UUID, cmd StatusCommand) (*ModificationRecord, error) {
	sources := transitionSources(cmd.Status)
	if len(sources) == 0 {
		current, err := r.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, cmd.Status)
	}

	placeholders := make([]string, len(sources))
	args := []any{cmd.Status, id}
	for i, from := range sources {
		placeholders[i] = fmt.Sprintf("$%d", i+3)
		args = append(args, from)
	}

	statusQ := fmt.Sprintf(`
		UPDATE modifications
		SET status = $1
		WHERE id = $2 AND status IN (%s)
		RETURNING `, strings.Join(placeholders, ", ")) + returningColumns

	m, err := repository.QueryOne(ctx, r.db, statusQ, args, scanModification)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			current, ferr := r.Find(ctx, id)
			if ferr != nil {
				return nil, ferr
			}
			return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, current.Status, cmd.Status)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("modification status updated",
		"id", m.ID,
		"system_id", m.SystemID,
		"field", m.Field,
		"status", m.Status,
	)
	return &m, nil
}

// InsertTx appends detected modifications for a system inside an open
// transaction. Records are append-only; existing history is never touched.
func InsertTx(
	ctx context.Context,
	tx *sql.Tx,
	systemID uuid.UUID,
	detected []engine.Modification,
) ([]ModificationRecord, error) {
	insertQ := `
		INSERT INTO modifications(
			system_id, field, old_value, new_value,
			modification_type, requires_new_conformity, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + returningColumns

	created := make([]ModificationRecord, 0, len(detected))
	for _, d := range detected {
		insertArgs := []any{
			systemID,
			d.Field,
			d.OldValue,
			d.NewValue,
			string(d.Type),
			d.RequiresNewConformity,
			string(d.Status),
		}

		m, err := repository.QueryOne(ctx, tx, insertQ, insertArgs, scanModification)
		if err != nil {
			return nil, fmt.Errorf("insert modification %s: %w", d.Field, err)
		}
		created = append(created, m)
	}

	return created, nil
}
