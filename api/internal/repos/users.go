package repos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"farm-management-system/api/internal/models"
)

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func (r *UsersRepo) CreateUser(ctx context.Context, name string, email string, passwordHash string, role string) (models.User, error) {
	var user models.User
	now := time.Now().UTC()
	if role == "" {
		role = "farmer"
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (user_id, name, email, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING user_id, name, email, password_hash, role, created_at, last_login_at
	`, uuid.New(), name, strings.ToLower(strings.TrimSpace(email)), passwordHash, role, now).
		Scan(&user.UserID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.LastLoginAt)
	return user, err
}

func (r *UsersRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, name, email, password_hash, role, created_at, last_login_at
		FROM users
		WHERE email = $1
	`, strings.ToLower(strings.TrimSpace(email))).
		Scan(&user.UserID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.LastLoginAt)
	return user, err
}

func (r *UsersRepo) GetUserByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	var user models.User
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, name, email, password_hash, role, created_at, last_login_at
		FROM users
		WHERE user_id = $1
	`, userID).
		Scan(&user.UserID, &user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt, &user.LastLoginAt)
	return user, err
}

func (r *UsersRepo) TouchLastLogin(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET last_login_at = now() WHERE user_id = $1
	`, userID)
	return err
}

func nullIfEmpty(v string) any {
	if strings.TrimSpace(v) == "" {
		return nil
	}
	return v
}
