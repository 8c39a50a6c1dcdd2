package classifications

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/veridian-labs/regent/engine"
	"github.com/veridian-labs/regent/pkg/pagination"
	"github.com/veridian-labs/regent/pkg/query"
	"github.com/veridian-labs/regent/pkg/repository"
)

const returningColumns = `id, system_id, risk_level, ai_screening_result,
		prohibited_screening_result, highrisk_screening_result,
		transparency_screening_result, triggered_checks, rationale,
		classified_at, reassess_flagged, reassess_reason, reassess_flagged_at`

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a classification repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "classifications"),
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
) (*pagination.PageResult[Classification], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Rationale", "RiskLevel")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count classifications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanClassification)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Classification, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanClassification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) FindBySystem(ctx context.Context, systemID uuid.UUID) (*Classification, error) {
	q, args := query.NewBuilder(projection).BuildSingle("SystemID", systemID)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanClassification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) DismissReassessment(ctx context.Context, id uuid.UUID, cmd DismissCommand) (*Classification, error) {
	dismissQ := `
		UPDATE classifications
		SET reassess_flagged = FALSE, reassess_reason = NULL, reassess_flagged_at = NULL
		WHERE id = $1 AND reassess_flagged = TRUE
		RETURNING ` + returningColumns

	c, err := repository.QueryOne(ctx, r.db, dismissQ, []any{id}, scanClassification)
	if err != nil {
		// distinguish a missing row from one that is simply not flagged
		if _, findErr := r.Find(ctx, id); findErr != nil {
			return nil, findErr
		}
		return nil, ErrNotFlagged
	}

	r.logger.Info("reassessment dismissed",
		"id", c.ID,
		"system_id", c.SystemID,
		"dismissed_by", cmd.DismissedBy,
	)
	return &c, nil
}

// UpsertTx replaces the stored classification for a system inside an open
// transaction. The reassessment flag columns are preserved unless resetFlag
// is set (an explicit re-classification clears the flag).
func UpsertTx(
	ctx context.Context,
	tx *sql.Tx,
	systemID uuid.UUID,
	rc engine.RiskClassification,
	asOf time.Time,
	resetFlag bool,
) (*Classification, error) {
	checksJSON, err := json.Marshal(rc.TriggeredChecks)
	if err != nil {
		return nil, fmt.Errorf("marshal triggered_checks: %w", err)
	}

	flagClause := ""
	if resetFlag {
		flagClause = `,
			reassess_flagged = FALSE,
			reassess_reason = NULL,
			reassess_flagged_at = NULL`
	}

	upsertQ := fmt.Sprintf(`
		INSERT INTO classifications(
			system_id, risk_level, ai_screening_result,
			prohibited_screening_result, highrisk_screening_result,
			transparency_screening_result, triggered_checks, rationale, classified_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (system_id) DO UPDATE SET
			risk_level = EXCLUDED.risk_level,
			ai_screening_result = EXCLUDED.ai_screening_result,
			prohibited_screening_result = EXCLUDED.prohibited_screening_result,
			highrisk_screening_result = EXCLUDED.highrisk_screening_result,
			transparency_screening_result = EXCLUDED.transparency_screening_result,
			triggered_checks = EXCLUDED.triggered_checks,
			rationale = EXCLUDED.rationale,
			classified_at = EXCLUDED.classified_at%s
		RETURNING %s`, flagClause, returningColumns)

	upsertArgs := []any{
		systemID,
		string(rc.Level),
		string(rc.AIScreen),
		string(rc.ProhibitedScreen),
		string(rc.HighRiskScreen),
		string(rc.TransparencyScreen),
		checksJSON,
		rc.Rationale,
		asOf,
	}

	c, err := repository.QueryOne(ctx, tx, upsertQ, upsertArgs, scanClassification)
	if err != nil {
		return nil, fmt.Errorf("upsert classification: %w", err)
	}
	return &c, nil
}

// SetReassessmentTx raises the reassessment flag for a system inside an open
// transaction. It only ever sets the flag; clearing requires an explicit
// dismissal or re-classification.
func SetReassessmentTx(
	ctx context.Context,
	tx *sql.Tx,
	systemID uuid.UUID,
	flag *engine.ReassessmentFlag,
) error {
	if flag == nil {
		return nil
	}

	return repository.ExecExpectOne(
		ctx, tx,
		`UPDATE classifications
		 SET reassess_flagged = TRUE, reassess_reason = $1, reassess_flagged_at = $2
		 WHERE system_id = $3`,
		flag.Reason, flag.FlaggedAt, systemID,
	)
}
