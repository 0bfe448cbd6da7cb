package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/zenithhr/procurement-workflow/internal/application/port"
	"github.com/zenithhr/procurement-workflow/internal/domain/entity"
	"github.com/zenithhr/procurement-workflow/pkg/database"
)

const requestColumns = `id, amount_cents, department, requester_id, vendor_name,
	description, priority, current_stage, version, requires_top_approval,
	created_at, updated_at`

// RequestRepository implements port.RequestStore on sqlite
type RequestRepository struct {
	db     *database.DB
	logger *zap.Logger
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(db *database.DB, logger *zap.Logger) port.RequestStore {
	return &RequestRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a new request at version 0
func (r *RequestRepository) Create(ctx context.Context, req *entity.PurchaseRequest) error {
	query := `
		INSERT INTO purchase_requests (
			id, amount_cents, department, requester_id, vendor_name,
			description, priority, current_stage, version,
			requires_top_approval, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		req.ID,
		req.AmountCents,
		req.Department,
		req.RequesterID,
		req.VendorName,
		req.Description,
		req.Priority,
		req.CurrentStage,
		req.Version,
		req.RequiresTopApproval,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create request", zap.Error(err))
		return fmt.Errorf("failed to create request: %w", err)
	}

	return nil
}

// Load retrieves a request by id
func (r *RequestRepository) Load(ctx context.Context, id string) (*entity.PurchaseRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM purchase_requests WHERE id = ?`

	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", port.ErrNotFound, id)
	}
	if err != nil {
		r.logger.Error("Failed to load request", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to load request: %w", err)
	}

	return req, nil
}

// Commit performs the compare-and-swap stage write plus the audit append in a
// single transaction. The version predicate in the UPDATE is what makes two
// concurrent approvals against the same prior state mutually exclusive.
func (r *RequestRepository) Commit(ctx context.Context, id string, expectedVersion int64, newStage string, audit *entity.AuditEntry) (*entity.PurchaseRequest, error) {
	var updated *entity.PurchaseRequest

	err := r.db.WithTransaction(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE purchase_requests
			SET current_stage = ?, version = version + 1, updated_at = ?
			WHERE id = ? AND version = ?
		`, newStage, time.Now(), id, expectedVersion)
		if err != nil {
			return fmt.Errorf("failed to update stage: %w", err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read rows affected: %w", err)
		}
		if affected == 0 {
			// Distinguish a stale version from a missing row
			var exists int
			err := tx.QueryRowContext(ctx,
				`SELECT COUNT(1) FROM purchase_requests WHERE id = ?`, id,
			).Scan(&exists)
			if err != nil {
				return fmt.Errorf("failed to check request existence: %w", err)
			}
			if exists == 0 {
				return fmt.Errorf("%w: %s", port.ErrNotFound, id)
			}
			return fmt.Errorf("%w: request %s expected version %d", port.ErrVersionConflict, id, expectedVersion)
		}

		res, err := tx.ExecContext(ctx, `
			INSERT INTO audit_entries (
				request_id, from_stage, to_stage, actor_id, decision,
				comments, resulting_version, timestamp
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			audit.RequestID,
			audit.FromStage,
			audit.ToStage,
			audit.ActorID,
			audit.Decision,
			audit.Comments,
			audit.ResultingVersion,
			audit.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("failed to append audit entry: %w", err)
		}

		auditID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get audit entry id: %w", err)
		}
		audit.ID = auditID

		req, err := scanRequest(tx.QueryRowContext(ctx,
			`SELECT `+requestColumns+` FROM purchase_requests WHERE id = ?`, id))
		if err != nil {
			return fmt.Errorf("failed to reload request: %w", err)
		}
		updated = req

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// History returns the request's audit entries ordered by timestamp ascending
func (r *RequestRepository) History(ctx context.Context, id string) ([]*entity.AuditEntry, error) {
	query := `
		SELECT id, request_id, from_stage, to_stage, actor_id, decision,
			comments, resulting_version, timestamp
		FROM audit_entries
		WHERE request_id = ?
		ORDER BY timestamp ASC, resulting_version ASC
	`

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to get history", zap.String("request_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	defer rows.Close()

	var entries []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		err := rows.Scan(
			&e.ID,
			&e.RequestID,
			&e.FromStage,
			&e.ToStage,
			&e.ActorID,
			&e.Decision,
			&e.Comments,
			&e.ResultingVersion,
			&e.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}

// List retrieves requests with pagination, newest first
func (r *RequestRepository) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM purchase_requests
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`

	return r.queryRequests(ctx, query, limit, offset)
}

// ListAll retrieves every request for the kanban projection
func (r *RequestRepository) ListAll(ctx context.Context) ([]*entity.PurchaseRequest, error) {
	query := `SELECT ` + requestColumns + `
		FROM purchase_requests
		ORDER BY created_at ASC`

	return r.queryRequests(ctx, query)
}

func (r *RequestRepository) queryRequests(ctx context.Context, query string, args ...interface{}) ([]*entity.PurchaseRequest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list requests", zap.Error(err))
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	defer rows.Close()

	var requests []*entity.PurchaseRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRequest(s scanner) (*entity.PurchaseRequest, error) {
	var req entity.PurchaseRequest
	err := s.Scan(
		&req.ID,
		&req.AmountCents,
		&req.Department,
		&req.RequesterID,
		&req.VendorName,
		&req.Description,
		&req.Priority,
		&req.CurrentStage,
		&req.Version,
		&req.RequiresTopApproval,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Verify interface compliance
var _ port.RequestStore = (*RequestRepository)(nil)
