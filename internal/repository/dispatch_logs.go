package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Markjohns1/sawarent-messaging/internal/model"
	"github.com/Markjohns1/sawarent-messaging/internal/util"
	"github.com/jmoiron/sqlx"
)

// DispatchLogsRepository defines persistence for the sms_logs table.
// Rows are append-only apart from DeleteOne/ClearAll.
type DispatchLogsRepository interface {
	Append(ctx context.Context, entry model.DispatchLog) (model.DispatchLog, error)
	GetByID(ctx context.Context, id string) (*model.DispatchLog, error)
	List(ctx context.Context, filter model.StatusFilter) ([]model.DispatchLog, error)
	DeleteOne(ctx context.Context, id string) error
	ClearAll(ctx context.Context) error
}

type DispatchLogsRepositoryImpl struct {
	db *sqlx.DB
}

func NewDispatchLogsRepository(db *sqlx.DB) *DispatchLogsRepositoryImpl {
	return &DispatchLogsRepositoryImpl{db: db}
}

var _ DispatchLogsRepository = (*DispatchLogsRepositoryImpl)(nil)

// Append stores one attempt, assigning a ULID when the entry carries none,
// and returns the stored row.
func (r *DispatchLogsRepositoryImpl) Append(ctx context.Context, entry model.DispatchLog) (model.DispatchLog, error) {
	if entry.ID == "" {
		entry.ID = util.NewULID()
	}

	const q = `
		INSERT INTO sms_logs
		    (id, recipient_name, recipient_phone, message, source, status, sent_at)
		VALUES
		    (?,  ?,              ?,               ?,       ?,      ?,      ?)
	`
	_, err := r.db.ExecContext(ctx, q,
		entry.ID, entry.RecipientName, entry.RecipientPhone,
		entry.Message, entry.Source.String(), entry.Status.String(), entry.SentAt,
	)
	if err != nil {
		return model.DispatchLog{}, err
	}
	return entry, nil
}

func (r *DispatchLogsRepositoryImpl) GetByID(ctx context.Context, id string) (*model.DispatchLog, error) {
	var e model.DispatchLog
	err := r.db.GetContext(ctx, &e, `
		SELECT id, recipient_name, recipient_phone, message, source, status, sent_at
		  FROM sms_logs
		 WHERE id = ? LIMIT 1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns entries most-recent-first. Same-timestamp rows tie-break on
// id, which is a ULID and therefore insertion-ordered.
func (r *DispatchLogsRepositoryImpl) List(ctx context.Context, filter model.StatusFilter) ([]model.DispatchLog, error) {
	q := `
		SELECT id, recipient_name, recipient_phone, message, source, status, sent_at
		  FROM sms_logs
	`
	args := []any{}

	if filter == model.FilterSent || filter == model.FilterFailed {
		q += " WHERE status = ?"
		args = append(args, string(filter))
	}

	q += " ORDER BY sent_at DESC, id DESC"

	rows := []model.DispatchLog{}
	if err := r.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *DispatchLogsRepositoryImpl) DeleteOne(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sms_logs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *DispatchLogsRepositoryImpl) ClearAll(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sms_logs`)
	return err
}
