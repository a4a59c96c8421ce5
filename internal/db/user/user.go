package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	c "yeonghwa/internal/core/domain/common"
	e "yeonghwa/internal/core/domain/errors"
	"yeonghwa/internal/core/domain/user"
	"yeonghwa/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const (
	PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
	EMAIL_CONSTRAINT_NAME         = "user_email_idx"
	USERNAME_CONSTRAINT_NAME      = "user_username_idx"
)

const userColumns = `id::text, username, email, password_hash, avatar, wishlist,
	reset_password_token, reset_password_expires, created_at, updated_at`

type PgxUserRepository struct {
	db  db.DBTX
	now func() time.Time
}

func NewPgxRepository(dbtx db.DBTX, now func() time.Time) *PgxUserRepository {
	if dbtx == nil {
		panic(e.NewNilArgumentError("db"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &PgxUserRepository{db: dbtx, now: now}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	now := r.now()
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (id, username, email, password_hash, avatar, wishlist, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, '{}', $6, $6)
		RETURNING `+userColumns,
		uuid.NewString(),
		string(input.Username),
		string(input.Email),
		string(input.PasswordHash),
		string(input.Avatar),
		now,
	)
	return decodeRow(row)
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	uid, err := parseID(id)
	if err != nil {
		return u, err
	}
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, uid)
	return decodeRow(row)
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	return decodeRow(row)
}

func (r *PgxUserRepository) GetByPasswordResetToken(
	ctx context.Context,
	token user.PasswordResetToken,
) (u user.User, err error) {
	if token == "" {
		return u, user.ErrUserDoesNotExist
	}
	row := r.db.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM "user" WHERE reset_password_token = $1`,
		string(token),
	)
	return decodeRow(row)
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (u user.User, err error) {
	uid, err := parseID(input.ID)
	if err != nil {
		return u, err
	}

	args := []interface{}{uid, r.now()}
	set := []string{"updated_at = $2"}
	param := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}
	if input.DoUsernameUpdate {
		set = append(set, "username = "+param(string(input.Username)))
	}
	if input.DoAvatarUpdate {
		set = append(set, "avatar = "+param(string(input.Avatar)))
	}
	if input.DoPasswordHashUpdate {
		set = append(set, "password_hash = "+param(string(input.PasswordHash)))
	}
	if input.DoPasswordResetUpdate {
		token, expires := encodePasswordReset(input.PasswordReset)
		set = append(set, "reset_password_token = "+param(token))
		set = append(set, "reset_password_expires = "+param(expires))
	}

	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET `+strings.Join(set, ", ")+` WHERE id = $1 RETURNING `+userColumns,
		args...,
	)
	return decodeRow(row)
}

func (r *PgxUserRepository) AddToWishlist(ctx context.Context, id user.ID, movieID user.MovieID) (u user.User, err error) {
	uid, err := parseID(id)
	if err != nil {
		return u, err
	}
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET
			wishlist = CASE WHEN $2::text = ANY(wishlist) THEN wishlist ELSE array_append(wishlist, $2::text) END,
			updated_at = $3
		WHERE id = $1
		RETURNING `+userColumns,
		uid,
		string(movieID),
		r.now(),
	)
	return decodeRow(row)
}

func (r *PgxUserRepository) RemoveFromWishlist(ctx context.Context, id user.ID, movieID user.MovieID) (u user.User, err error) {
	uid, err := parseID(id)
	if err != nil {
		return u, err
	}
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET wishlist = array_remove(wishlist, $2::text), updated_at = $3
		WHERE id = $1
		RETURNING `+userColumns,
		uid,
		string(movieID),
		r.now(),
	)
	return decodeRow(row)
}

func (r *PgxUserRepository) ConsumePasswordResetToken(
	ctx context.Context,
	input user.ConsumePasswordResetTokenInput,
) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user" SET
			password_hash = $3,
			reset_password_token = NULL,
			reset_password_expires = NULL,
			updated_at = $4
		WHERE reset_password_token = $1 AND reset_password_expires > $2
		RETURNING `+userColumns,
		string(input.Token),
		input.ValidAt,
		string(input.PasswordHash),
		r.now(),
	)
	u, err = decodeRow(row)
	if errors.Is(err, user.ErrUserDoesNotExist) {
		return u, user.ErrInvalidPasswordResetToken
	}
	return u, err
}

// parseID rejects ids that can not be stored in a uuid column, so they read
// as unknown users instead of a driver error.
func parseID(id user.ID) (string, error) {
	uid, err := uuid.Parse(string(id))
	if err != nil {
		return "", user.ErrUserDoesNotExist
	}
	return uid.String(), nil
}

func encodePasswordReset(reset c.Optional[user.PasswordReset]) (sql.NullString, sql.NullTime) {
	if !reset.IsPresent {
		return sql.NullString{}, sql.NullTime{}
	}
	return sql.NullString{String: string(reset.Value.Token), Valid: true},
		sql.NullTime{Time: reset.Value.ExpiresAt, Valid: true}
}

func decodeRow(row pgx.Row) (u user.User, err error) {
	var (
		id           string
		username     string
		email        string
		passwordHash string
		avatar       string
		wishlist     []string
		resetToken   sql.NullString
		resetExpires sql.NullTime
		createdAt    time.Time
		updatedAt    time.Time
	)
	err = row.Scan(
		&id,
		&username,
		&email,
		&passwordHash,
		&avatar,
		&wishlist,
		&resetToken,
		&resetExpires,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE {
		switch pgErr.ConstraintName {
		case EMAIL_CONSTRAINT_NAME:
			return u, user.ErrEmailAlreadyExists
		case USERNAME_CONSTRAINT_NAME:
			return u, user.ErrUsernameAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}

	u = user.User{
		ID:           user.ID(id),
		Username:     user.Username(username),
		Email:        c.Email(email),
		PasswordHash: user.PasswordHash(passwordHash),
		Avatar:       user.Avatar(avatar),
		Wishlist:     make([]user.MovieID, 0, len(wishlist)),
		CreatedAt:    createdAt.UTC(),
		UpdatedAt:    updatedAt.UTC(),
	}
	for _, movieID := range wishlist {
		u.Wishlist = append(u.Wishlist, user.MovieID(movieID))
	}
	if resetToken.Valid && resetExpires.Valid {
		u.PasswordReset = c.Some(user.PasswordReset{
			Token:     user.PasswordResetToken(resetToken.String),
			ExpiresAt: resetExpires.Time.UTC(),
		})
	}
	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}
