package repository

import (
	"context"
	"time"

	"github.com/spec-kit/dealer-service/internal/domain"
)

// OTPRepository manages one-time code persistence. Rows are never deleted;
// consumption stamps consumed_at exactly once.
type OTPRepository interface {
	Create(ctx context.Context, code *domain.OneTimeCode) error
	// FindActive returns the newest-by-expiry unconsumed row matching
	// (userID, purpose, codeHash), or pgx.ErrNoRows.
	FindActive(ctx context.Context, userID int64, purpose, codeHash string) (*domain.OneTimeCode, error)
	// Consume stamps consumed_at on the newest-by-expiry unconsumed,
	// unexpired matching row in a single conditional statement, so two
	// concurrent callers cannot both succeed against the same row.
	Consume(ctx context.Context, userID int64, purpose, codeHash string, now time.Time) (bool, error)
}

type otpRepository struct {
	db DB
}

// NewOTPRepository returns a Postgres-backed implementation.
func NewOTPRepository(db DB) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(ctx context.Context, code *domain.OneTimeCode) error {
	const query = `
        INSERT INTO one_time_codes (user_id, purpose, code_hash, expires_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id`
	return r.db.QueryRow(ctx, query,
		code.UserID,
		code.Purpose,
		code.CodeHash,
		code.ExpiresAt,
	).Scan(&code.ID)
}

func (r *otpRepository) FindActive(ctx context.Context, userID int64, purpose, codeHash string) (*domain.OneTimeCode, error) {
	const query = `
        SELECT id, user_id, purpose, code_hash, expires_at, consumed_at
        FROM one_time_codes
        WHERE user_id=$1 AND purpose=$2 AND code_hash=$3 AND consumed_at IS NULL
        ORDER BY expires_at DESC
        LIMIT 1`

	var code domain.OneTimeCode
	if err := r.db.QueryRow(ctx, query, userID, purpose, codeHash).Scan(
		&code.ID,
		&code.UserID,
		&code.Purpose,
		&code.CodeHash,
		&code.ExpiresAt,
		&code.ConsumedAt,
	); err != nil {
		return nil, err
	}
	return &code, nil
}

func (r *otpRepository) Consume(ctx context.Context, userID int64, purpose, codeHash string, now time.Time) (bool, error) {
	const query = `
        UPDATE one_time_codes SET consumed_at=$5
        WHERE id = (
            SELECT id FROM one_time_codes
            WHERE user_id=$1 AND purpose=$2 AND code_hash=$3
              AND consumed_at IS NULL AND expires_at > $4
            ORDER BY expires_at DESC
            LIMIT 1
        ) AND consumed_at IS NULL`

	cmd, err := r.db.Exec(ctx, query, userID, purpose, codeHash, now, now)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
