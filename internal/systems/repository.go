package systems

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/veridian-labs/regent/engine"
	"github.com/veridian-labs/regent/internal/classifications"
	"github.com/veridian-labs/regent/internal/modifications"
	"github.com/veridian-labs/regent/internal/tasks"
	"github.com/veridian-labs/regent/pkg/pagination"
	"github.com/veridian-labs/regent/pkg/query"
	"github.com/veridian-labs/regent/pkg/repository"
)

const returningColumns = `id, name, description, lifecycle_status, vendor_id,
		intake_mode, profile, version, created_at, updated_at`

type repo struct {
	db          *sql.DB
	logger      *slog.Logger
	pagination  pagination.Config
	concurrency int
	now         func() time.Time
}

// New creates an AI system repository implementing the System interface.
// concurrency bounds the parallelism of bulk re-evaluation.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, concurrency int) System {
	if concurrency < 1 {
		concurrency = 1
	}

	return &repo{
		db:          db,
		logger:      logger.With("system", "systems"),
		pagination:  pagination,
		concurrency: concurrency,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[AISystem], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "Description")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count systems: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSystem)
	if err != nil {
		return nil, fmt.Errorf("query systems: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*AISystem, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	sys, err := repository.QueryOne(ctx, r.db, q, args, scanSystem)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &sys, nil
}

// Create registers an AI system and runs the first engine pass over it, all
// inside one transaction.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*EvaluationResult, error) {
	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*EvaluationResult, error) {
		id := uuid.New()
		profileJSON, err := json.Marshal(cmd.Profile)
		if err != nil {
			return nil, fmt.Errorf("marshal profile: %w", err)
		}

		insertQ := `
			INSERT INTO systems(id, name, description, lifecycle_status, vendor_id, intake_mode, profile, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7, 1)
			RETURNING ` + returningColumns

		insertArgs := []any{
			id,
			cmd.Name,
			cmd.Description,
			string(cmd.Profile.Lifecycle),
			cmd.Profile.VendorID,
			string(cmd.Profile.IntakeMode),
			profileJSON,
		}

		sys, err := repository.QueryOne(ctx, tx, insertQ, insertArgs, scanSystem)
		if err != nil {
			return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		return r.evaluateTx(ctx, tx, &sys, nil, false, sys.UpdatedAt)
	})

	if err != nil {
		return nil, err
	}

	r.logger.Info("system created",
		"id", result.System.ID,
		"name", result.System.Name,
		"risk_level", result.Classification.RiskLevel,
		"tasks_created", len(result.Tasks),
	)
	return result, nil
}

// Update persists a new revision of an AI system and runs a full engine pass
// over the (old, new) snapshot pair inside one transaction. The update is
// rejected with ErrVersionConflict when ExpectedVersion no longer matches
// the stored version.
func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*EvaluationResult, error) {
	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*EvaluationResult, error) {
		current, err := lockSystem(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		if current.Version != cmd.ExpectedVersion {
			return nil, fmt.Errorf("%w: expected version %d, stored version %d",
				ErrVersionConflict, cmd.ExpectedVersion, current.Version)
		}

		oldSnap := current.Snapshot()

		profileJSON, err := json.Marshal(cmd.Profile)
		if err != nil {
			return nil, fmt.Errorf("marshal profile: %w", err)
		}

		updateQ := `
			UPDATE systems
			SET name = $1, description = $2, lifecycle_status = $3, vendor_id = $4,
				intake_mode = $5, profile = $6, version = version + 1, updated_at = NOW()
			WHERE id = $7
			RETURNING ` + returningColumns

		updateArgs := []any{
			cmd.Name,
			cmd.Description,
			string(cmd.Profile.Lifecycle),
			cmd.Profile.VendorID,
			string(cmd.Profile.IntakeMode),
			profileJSON,
			id,
		}

		sys, err := repository.QueryOne(ctx, tx, updateQ, updateArgs, scanSystem)
		if err != nil {
			return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		return r.evaluateTx(ctx, tx, &sys, &oldSnap, false, sys.UpdatedAt)
	})

	if err != nil {
		return nil, err
	}

	r.logger.Info("system updated",
		"id", result.System.ID,
		"version", result.System.Version,
		"risk_level", result.Classification.RiskLevel,
		"tasks_created", len(result.Tasks),
		"modifications", len(result.Modifications),
		"reassess_flagged", result.Reassessment != nil,
	)
	return result, nil
}

// Evaluate re-runs the engine over a system's current snapshot without
// revising it. An explicit re-evaluation clears any standing reassessment
// flag, since the classification it pointed at has been redone.
func (r *repo) Evaluate(ctx context.Context, id uuid.UUID) (*EvaluationResult, error) {
	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*EvaluationResult, error) {
		sys, err := lockSystem(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		return r.evaluateTx(ctx, tx, sys, nil, true, r.now())
	})

	if err != nil {
		return nil, err
	}

	r.logger.Info("system evaluated",
		"id", result.System.ID,
		"risk_level", result.Classification.RiskLevel,
		"tasks_created", len(result.Tasks),
	)
	return result, nil
}

// EvaluateAll re-evaluates every registered system with bounded parallelism.
// Each system runs in its own transaction; the first failure cancels the
// remaining work.
func (r *repo) EvaluateAll(ctx context.Context) ([]EvaluationResult, error) {
	ids, err := repository.QueryMany(ctx, r.db,
		`SELECT id FROM systems ORDER BY name`, nil,
		func(s repository.Scanner) (uuid.UUID, error) {
			var id uuid.UUID
			err := s.Scan(&id)
			return id, err
		})
	if err != nil {
		return nil, fmt.Errorf("query system ids: %w", err)
	}

	results := make([]EvaluationResult, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, id := range ids {
		g.Go(func() error {
			res, err := r.Evaluate(ctx, id)
			if err != nil {
				return fmt.Errorf("evaluate system %s: %w", id, err)
			}
			results[i] = *res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	r.logger.Info("bulk evaluation complete", "systems", len(results))
	return results, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db, `DELETE FROM systems WHERE id = $1`, id)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("system deleted", "id", id)
	return nil
}

// evaluateTx runs a full engine pass over sys inside an open transaction and
// persists everything it derives. oldSnap enables the revision comparisons
// (modifications, reassessment triggers); nil skips them. resetFlag is set
// for explicit re-evaluation, which is one of the two ways the reassessment
// flag clears. asOf anchors due dates and the classification timestamp: the
// revision instant for create/update, the evaluation instant for explicit
// re-evaluation.
func (r *repo) evaluateTx(
	ctx context.Context,
	tx *sql.Tx,
	sys *AISystem,
	oldSnap *engine.Snapshot,
	resetFlag bool,
	asOf time.Time,
) (*EvaluationResult, error) {
	snap := sys.Snapshot()

	rc := engine.Classify(snap)
	snap = stampClassification(snap, rc)

	// Persist the derived verdicts back into the profile so the next
	// revision pair can detect classification drift.
	stampedJSON, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal stamped profile: %w", err)
	}

	if err := repository.ExecExpectOne(ctx, tx,
		`UPDATE systems SET profile = $1 WHERE id = $2`, stampedJSON, sys.ID); err != nil {
		return nil, fmt.Errorf("stamp profile: %w", err)
	}
	sys.Profile = snap

	c, err := classifications.UpsertTx(ctx, tx, sys.ID, rc, asOf, resetFlag)
	if err != nil {
		return nil, err
	}

	created, err := tasks.SyncTx(ctx, tx, sys.ID, engine.GenerateTasks(snap, rc, asOf))
	if err != nil {
		return nil, err
	}

	result := &EvaluationResult{
		System:         sys,
		Classification: c,
		Tasks:          created,
		Modifications:  []modifications.ModificationRecord{},
	}

	if oldSnap == nil {
		return result, nil
	}

	records, err := modifications.InsertTx(ctx, tx, sys.ID, engine.DetectModifications(*oldSnap, snap))
	if err != nil {
		return nil, err
	}
	result.Modifications = records

	flag := engine.BuildReassessmentFlag(engine.DetectReassessmentTriggers(*oldSnap, snap), asOf)
	if flag != nil {
		if err := classifications.SetReassessmentTx(ctx, tx, sys.ID, flag); err != nil {
			return nil, fmt.Errorf("set reassessment flag: %w", err)
		}
		c.ReassessFlagged = true
		c.ReassessReason = &flag.Reason
		c.ReassessFlaggedAt = &flag.FlaggedAt
		result.Reassessment = flag
	}

	return result, nil
}

func stampClassification(snap engine.Snapshot, rc engine.RiskClassification) engine.Snapshot {
	snap.AIScreeningResult = rc.AIScreen
	snap.ProhibitedScreeningResult = rc.ProhibitedScreen
	snap.HighRiskScreeningResult = rc.HighRiskScreen
	snap.TransparencyScreeningResult = rc.TransparencyScreen
	snap.RiskLevel = rc.Level
	return snap
}

func lockSystem(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*AISystem, error) {
	lockQ := `
		SELECT ` + returningColumns + `
		FROM systems
		WHERE id = $1
		FOR UPDATE`

	sys, err := repository.QueryOne(ctx, tx, lockQ, []any{id}, scanSystem)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &sys, nil
}
