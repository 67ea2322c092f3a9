package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sims/sims-backend/internal/model"
)

var userColumns = []string{
	"id", "username", "password_hash", "role", "full_name",
	"COALESCE(email, '')", "created_at", "updated_at",
}

// UserRepository handles user account data access.
type UserRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUsername retrieves a user by their unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, squirrel.Eq{"username": username})
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Eq) (*model.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get user query: %w", err)
	}

	u, err := scanUser(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List retrieves all users ordered by ID.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	sql, args, err := r.sb.Select(userColumns...).From("users").OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// Create inserts a new user. PasswordHash must already be set.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	sql, args, err := r.sb.Insert("users").
		Columns("username", "password_hash", "role", "full_name", "email").
		Values(u.Username, u.PasswordHash, string(u.Role), u.FullName, nullable(u.Email)).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create user query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update writes a user's profile fields and, when PasswordHash is set, the
// password hash, in a single statement.
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	sql, args, err := r.updateQuery(u)
	if err != nil {
		return fmt.Errorf("build update user query: %w", err)
	}

	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if isUniqueViolation(err) {
			return ErrDuplicateUsername
		}
		return fmt.Errorf("update user %d: %w", u.ID, err)
	}
	return nil
}

func (r *UserRepository) updateQuery(u *model.User) (string, []interface{}, error) {
	q := r.sb.Update("users").
		Set("username", u.Username).
		Set("role", string(u.Role)).
		Set("full_name", u.FullName).
		Set("email", nullable(u.Email)).
		Set("updated_at", squirrel.Expr("CURRENT_TIMESTAMP"))
	if u.PasswordHash != "" {
		q = q.Set("password_hash", u.PasswordHash)
	}
	return q.Where(squirrel.Eq{"id": u.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("users").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete user query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	var role string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.FullName, &u.Email, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	return u, nil
}
