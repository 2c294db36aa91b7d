package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetProfile(ctx context.Context, userID int64) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) error
	SetImageURL(ctx context.Context, userID int64, url string) error
	SaveRefreshToken(ctx context.Context, userID int64, refreshToken string) error
	GetRefreshToken(ctx context.Context, userID int64) (string, error)
	DeleteRefreshToken(ctx context.Context, userID int64) error
	UpdateResetToken(ctx context.Context, email, resetToken string, resetTokenExpires time.Time) error
	GetByResetToken(ctx context.Context, resetToken string) (*User, error)
	ResetPassword(ctx context.Context, userID int64, passwordHash []byte) error
}

type Repository struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) Store {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, user *User) error {
	const q = `
		INSERT INTO users (name, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := r.db.QueryRow(ctx, q, user.Name, user.Email, user.Password.hash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, userID int64) (*User, error) {
	const q = `
		SELECT id, name, email, password, image_url, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return r.scanUser(r.db.QueryRow(ctx, q, userID))
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	const q = `
		SELECT id, name, email, password, image_url, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return r.scanUser(r.db.QueryRow(ctx, q, email))
}

func (r *Repository) scanUser(row pgx.Row) (*User, error) {
	var (
		u        User
		imageURL pgtype.Text
	)

	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password.hash, &imageURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if imageURL.Valid {
		v := imageURL.String
		u.ImageURL = &v
	}
	return &u, nil
}

func (r *Repository) GetProfile(ctx context.Context, userID int64) (*Profile, error) {
	const q = `
		SELECT user_id, sexual_orientation, city, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var (
		p           Profile
		orientation pgtype.Text
		city        pgtype.Text
	)
	err := r.db.QueryRow(ctx, q, userID).
		Scan(&p.UserID, &orientation, &city, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if orientation.Valid {
		v := orientation.String
		p.SexualOrientation = &v
	}
	if city.Valid {
		v := city.String
		p.City = &v
	}
	return &p, nil
}

// UpdateProfile applies a membership-card edit atomically: the user's name
// and the profile upsert commit together or not at all.
func (r *Repository) UpdateProfile(ctx context.Context, userID int64, update ProfileUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin profile update: %w", err)
	}
	defer tx.Rollback(ctx)

	if update.Name != "" {
		ct, err := tx.Exec(ctx,
			`UPDATE users SET name = $1, updated_at = NOW() WHERE id = $2`,
			update.Name, userID,
		)
		if err != nil {
			return fmt.Errorf("update user name: %w", err)
		}
		if ct.RowsAffected() == 0 {
			return ErrNotFound
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO profiles (user_id, sexual_orientation, city)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id)
		DO UPDATE SET sexual_orientation = EXCLUDED.sexual_orientation,
		              city = EXCLUDED.city,
		              updated_at = NOW()
	`, userID, update.SexualOrientation, update.City)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *Repository) SetImageURL(ctx context.Context, userID int64, url string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx,
		`UPDATE users SET image_url = $1, updated_at = NOW() WHERE id = $2`,
		url, userID,
	)
	return err
}

func (r *Repository) SaveRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	ct, err := r.db.Exec(ctx,
		`UPDATE users SET refresh_token = $1 WHERE id = $2`,
		refreshToken, userID,
	)
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var token pgtype.Text
	err := r.db.QueryRow(ctx,
		`SELECT refresh_token FROM users WHERE id = $1`, userID,
	).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get refresh token: %w", err)
	}
	if !token.Valid {
		return "", nil
	}
	return token.String, nil
}

func (r *Repository) DeleteRefreshToken(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := r.db.Exec(ctx,
		`UPDATE users SET refresh_token = NULL WHERE id = $1`, userID,
	)
	return err
}

func (r *Repository) UpdateResetToken(ctx context.Context, email, resetToken string, resetTokenExpires time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	ct, err := r.db.Exec(ctx, `
		UPDATE users
		SET reset_password_token = $1, reset_password_expires = $2
		WHERE email = $3
	`, resetToken, resetTokenExpires, email)
	if err != nil {
		return fmt.Errorf("update reset token: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetByResetToken(ctx context.Context, resetToken string) (*User, error) {
	const q = `
		SELECT id, name, email, password, reset_password_token, reset_password_expires, created_at, updated_at
		FROM users
		WHERE reset_password_token = $1
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var (
		u       User
		expires pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, q, resetToken).Scan(
		&u.ID, &u.Name, &u.Email, &u.Password.hash,
		&u.ResetPasswordToken, &expires, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get by reset token: %w", err)
	}

	if expires.Valid {
		u.ResetPasswordExpires = expires.Time
	}
	return &u, nil
}

// ResetPassword stores the new hash and invalidates the reset token in one
// statement.
func (r *Repository) ResetPassword(ctx context.Context, userID int64, passwordHash []byte) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	ct, err := r.db.Exec(ctx, `
		UPDATE users
		SET password = $1,
		    reset_password_token = NULL,
		    reset_password_expires = NULL,
		    updated_at = NOW()
		WHERE id = $2
	`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
