package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/messagely/internal/common"
	"github.com/dmitrijs2005/messagely/internal/dbx"
	"github.com/dmitrijs2005/messagely/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (username, password, first_name, last_name, phone, join_at, last_login_at)
		 VALUES ($1, $2, $3, $4, $5, current_timestamp, current_timestamp)
		 RETURNING join_at, last_login_at
		 `

	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Password, user.FirstName, user.LastName, user.Phone).Scan(&user.JoinAt, &lastLogin)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("username %q: %w", user.Username, common.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.LastLoginAt = dbx.TimePtr(lastLogin)
	return user, nil
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query :=
		`SELECT username, password, first_name, last_name, phone, join_at, last_login_at FROM users
		 WHERE username = $1
		 `

	user := &models.User{}
	var lastLogin sql.NullTime
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.Username, &user.Password, &user.FirstName, &user.LastName, &user.Phone, &user.JoinAt, &lastLogin)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, common.ErrNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.LastLoginAt = dbx.TimePtr(lastLogin)
	return user, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.UserProfile, error) {
	query :=
		`SELECT username, first_name, last_name, phone FROM users
		 ORDER BY username
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	profiles := make([]models.UserProfile, 0)
	for rows.Next() {
		var p models.UserProfile
		if err := rows.Scan(&p.Username, &p.FirstName, &p.LastName, &p.Phone); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return profiles, nil
}

func (r *PostgresRepository) TouchLogin(ctx context.Context, username string) error {
	query :=
		`UPDATE users SET last_login_at = current_timestamp
		 WHERE username = $1
		 `

	res, err := r.db.ExecContext(ctx, query, username)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("user %q: %w", username, common.ErrNotFound)
	}

	return nil
}
