package tasks

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

const returningColumns = `id, system_id, task_type, title, description,
		priority, due_date, status, assignee, created_at, updated_at`

// validTransitions defines the allowed task status transitions. Done is
// terminal; waived tasks are dismissed rather than completed.
var validTransitions = map[Status][]Status{
	StatusOpen:       {StatusInProgress, StatusDone, StatusDismissed},
	StatusInProgress: {StatusDone, StatusDismissed},
	StatusDismissed:  {StatusOpen},
}

func transitionAllowed(from, to Status) bool {
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
func transitionSources(to Status) []Status {
	sources := make([]Status, 0, len(validTransitions))
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

// New creates a task repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "tasks"),
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
) (*pagination.PageResult[Task], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Title", "Description", "Type")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count tasks: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanTask)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Task, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	t, err := repository.QueryOne(ctx, r.db, q, args, scanTask)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &t, nil
}

func (r *repo) FindBySystem(ctx context.Context, systemID uuid.UUID) ([]Task, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("SystemID", &systemID).
		Build()

	return repository.QueryMany(ctx, r.db, q, args, scanTask)
}

func (r *repo) Assign(ctx context.Context, id uuid.UUID, cmd AssignCommand) (*Task, error) {
	assignQ := `
		UPDATE tasks
		SET assignee = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + returningColumns

	t, err := repository.QueryOne(ctx, r.db, assignQ, []any{cmd.Assignee, id}, scanTask)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("task assigned",
		"id", t.ID,
		"system_id", t.SystemID,
		"task_type", t.Type,
		"assignee", cmd.Assignee,
	)
	return &t, nil
}

func (r *repo) UpdateStatus(ctx context.Context, id uuid.UUID, cmd StatusCommand) (*Task, error) {
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
		UPDATE tasks
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status IN (%s)
		RETURNING `, strings.Join(placeholders, ", ")) + returningColumns

	t, err := repository.QueryOne(ctx, r.db, statusQ, args, scanTask)
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

	r.logger.Info("task status updated",
		"id", t.ID,
		"system_id", t.SystemID,
		"task_type", t.Type,
		"status", t.Status,
	)
	return &t, nil
}

// SyncTx inserts generated tasks for a system inside an open transaction,
// skipping any task type that already has an open or in-progress row. Done
// and dismissed tasks of the same type do not block re-creation.
func SyncTx(
	ctx context.Context,
	tx *sql.Tx,
	systemID uuid.UUID,
	desired []engine.ComplianceTask,
) ([]Task, error) {
	openQ := `
		SELECT task_type FROM tasks
		WHERE system_id = $1 AND status IN ('open', 'in_progress')`

	rows, err := tx.QueryContext(ctx, openQ, systemID)
	if err != nil {
		return nil, fmt.Errorf("query open tasks: %w", err)
	}
	defer rows.Close()

	open := make(map[string]bool)
	for rows.Next() {
		var taskType string
		if err := rows.Scan(&taskType); err != nil {
			return nil, fmt.Errorf("scan open task type: %w", err)
		}
		open[taskType] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate open tasks: %w", err)
	}

	insertQ := `
		INSERT INTO tasks(system_id, task_type, title, description, priority, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'open')
		RETURNING ` + returningColumns

	created := make([]Task, 0, len(desired))
	for _, d := range desired {
		if open[d.Type] {
			continue
		}

		insertArgs := []any{
			systemID,
			d.Type,
			d.Title,
			d.Description,
			string(d.Priority),
			d.DueDate,
		}

		t, err := repository.QueryOne(ctx, tx, insertQ, insertArgs, scanTask)
		if err != nil {
			return nil, fmt.Errorf("insert task %s: %w", d.Type, err)
		}
		created = append(created, t)
	}

	return created, nil
}
