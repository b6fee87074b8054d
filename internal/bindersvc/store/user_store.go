package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/harukin/binder-services/internal/bindersvc/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserStore struct {
	db *pgxpool.Pool
}

func NewUserStore(db *pgxpool.Pool) *UserStore {
	return &UserStore{db: db}
}

func (r *UserStore) CreateUser(ctx context.Context, user models.User) (int64, error) {
	var userId int64

	query := `
        INSERT INTO users (name, email, role, status)
        VALUES ($1, $2, $3, $4)
        RETURNING user_id;
    `

	err := r.db.QueryRow(ctx, query, user.Name, user.Email, user.Role, user.Status).Scan(&userId)
	if err != nil {
		return 0, fmt.Errorf("could not create user: %w", err)
	}

	return userId, nil
}

func (r *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
        SELECT user_id, name, email, role, status, created_at, updated_at
        FROM users
        WHERE user_id = $1
    `, id)

	u := &models.User{}
	err := row.Scan(
		&u.UserId,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return u, nil
}

// GetByEmail returns nil without error when no user has the email.
func (r *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx, `
        SELECT user_id, name, email, role, status, created_at, updated_at
        FROM users
        WHERE email = $1
    `, email)

	u := &models.User{}
	err := row.Scan(
		&u.UserId,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.Status,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return u, nil
}

func (r *UserStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `
        SELECT user_id, name, email, role, status, created_at, updated_at
        FROM users
        ORDER BY user_id ASC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		err := rows.Scan(
			&u.UserId,
			&u.Name,
			&u.Email,
			&u.Role,
			&u.Status,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
