package messages

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/messagely/internal/common"
	"github.com/dmitrijs2005/messagely/internal/dbx"
	"github.com/dmitrijs2005/messagely/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db    dbx.DBTX
	newID func() string
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, newID: uuid.NewString}
}

func (r *PostgresRepository) Create(ctx context.Context, from, to, body string) (*models.SentMessage, error) {

	query :=
		`INSERT INTO messages (id, from_username, to_username, body, sent_at)
		 VALUES ($1, $2, $3, $4, current_timestamp)
		 RETURNING sent_at
		 `

	msg := &models.SentMessage{ID: r.newID(), FromUsername: from, ToUsername: to, Body: body}
	err := r.db.QueryRowContext(ctx, query, msg.ID, from, to, body).Scan(&msg.SentAt)

	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("%w: recipient %q does not exist", common.ErrValidation, to)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return msg, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.MessageDetail, error) {
	query :=
		`SELECT m.id, m.body, m.sent_at, m.read_at,
		        f.username, f.first_name, f.last_name, f.phone,
		        t.username, t.first_name, t.last_name, t.phone
		 FROM messages AS m
		 JOIN users AS f ON m.from_username = f.username
		 JOIN users AS t ON m.to_username = t.username
		 WHERE m.id = $1
		 `

	d := &models.MessageDetail{}
	var readAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Body, &d.SentAt, &readAt,
		&d.FromUser.Username, &d.FromUser.FirstName, &d.FromUser.LastName, &d.FromUser.Phone,
		&d.ToUser.Username, &d.ToUser.FirstName, &d.ToUser.LastName, &d.ToUser.Phone,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("message %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	d.ReadAt = dbx.TimePtr(readAt)
	return d, nil
}

func (r *PostgresRepository) MarkRead(ctx context.Context, id string) (*models.ReadReceipt, error) {
	query :=
		`UPDATE messages SET read_at = COALESCE(read_at, current_timestamp)
		 WHERE id = $1
		 RETURNING id, read_at
		 `

	rc := &models.ReadReceipt{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&rc.ID, &rc.ReadAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("message %s: %w", id, common.ErrNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rc, nil
}

func (r *PostgresRepository) ListFrom(ctx context.Context, username string) ([]models.OutboxMessage, error) {
	query :=
		`SELECT m.id, m.body, m.sent_at, m.read_at,
		        u.username, u.first_name, u.last_name, u.phone
		 FROM messages AS m
		 JOIN users AS u ON m.to_username = u.username
		 WHERE m.from_username = $1
		 ORDER BY m.sent_at, m.id
		 `

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := make([]models.OutboxMessage, 0)
	for rows.Next() {
		var m models.OutboxMessage
		var readAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.Body, &m.SentAt, &readAt,
			&m.ToUser.Username, &m.ToUser.FirstName, &m.ToUser.LastName, &m.ToUser.Phone); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		m.ReadAt = dbx.TimePtr(readAt)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) ListTo(ctx context.Context, username string) ([]models.InboxMessage, error) {
	query :=
		`SELECT m.id, m.body, m.sent_at, m.read_at,
		        u.username, u.first_name, u.last_name, u.phone
		 FROM messages AS m
		 JOIN users AS u ON m.from_username = u.username
		 WHERE m.to_username = $1
		 ORDER BY m.sent_at, m.id
		 `

	rows, err := r.db.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	in := make([]models.InboxMessage, 0)
	for rows.Next() {
		var m models.InboxMessage
		var readAt sql.NullTime
		if err := rows.Scan(&m.ID, &m.Body, &m.SentAt, &readAt,
			&m.FromUser.Username, &m.FromUser.FirstName, &m.FromUser.LastName, &m.FromUser.Phone); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		m.ReadAt = dbx.TimePtr(readAt)
		in = append(in, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return in, nil
}
