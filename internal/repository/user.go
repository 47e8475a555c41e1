package repository

import (
	"context"
	"time"

	"github.com/Observer7203/Online-Store-Test/internal/domain"
)

const userColumns = "id, name, email, password_hash, is_admin, created_at"

type CreateUserParams struct {
	Name         string
	Email        string
	PasswordHash string
}

func (q *Queries) CreateUser(ctx context.Context, params CreateUserParams) (domain.User, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		params.Name, params.Email, params.PasswordHash,
	)
	return scanUser(row)
}

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1`,
		email,
	)
	return scanUser(row)
}

func (q *Queries) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row := q.db.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1`,
		id,
	)
	return scanUser(row)
}

type CreateAuthTokenParams struct {
	UserID      int64
	TokenDigest string
	ExpiresAt   time.Time
}

func (q *Queries) CreateAuthToken(ctx context.Context, params CreateAuthTokenParams) error {
	_, err := q.db.Exec(ctx, `
		INSERT INTO auth_tokens (user_id, token_digest, expires_at)
		VALUES ($1, $2, $3)`,
		params.UserID, params.TokenDigest, params.ExpiresAt,
	)
	return err
}

// GetUserByTokenDigest resolves an unexpired token digest to its user.
func (q *Queries) GetUserByTokenDigest(ctx context.Context, digest string) (domain.User, error) {
	row := q.db.QueryRow(ctx, `
		SELECT u.id, u.name, u.email, u.password_hash, u.is_admin, u.created_at
		FROM auth_tokens t
		JOIN users u ON u.id = t.user_id
		WHERE t.token_digest = $1 AND t.expires_at > now()`,
		digest,
	)
	return scanUser(row)
}

func (q *Queries) DeleteAuthToken(ctx context.Context, digest string) error {
	_, err := q.db.Exec(ctx, `DELETE FROM auth_tokens WHERE token_digest = $1`, digest)
	return err
}

func scanUser(row interface{ Scan(dest ...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}
