package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"draftbot/internal/domain"
	"draftbot/internal/domain/entities"
	"draftbot/internal/ports/output"
)

var _ output.SignupRepository = (*SignupRepository)(nil)

type SignupRepository struct {
	pool *pgxpool.Pool
}

func NewSignupRepository(pool *pgxpool.Pool) *SignupRepository {
	return &SignupRepository{pool: pool}
}

const signupColumns = `id, guild_id, event_code, user_id, status, removed,
	noshow, signed_up_at, preferred_name, created_at, updated_at`

func scanSignup(row pgx.Row) (*entities.Signup, error) {
	var s entities.Signup
	var createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(
		&s.ID, &s.GuildID, &s.EventCode, &s.UserID, &s.Status, &s.Removed,
		&s.NoShow, &s.SignedUpAt, &s.PreferredName, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSignupNotFound
		}
		return nil, err
	}
	s.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	s.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return &s, nil
}

// Upsert writes the reconciled row in one atomic statement on the
// (guild, event, user) key.
func (r *SignupRepository) Upsert(ctx context.Context, signup *entities.Signup) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO signups (guild_id, event_code, user_id, status, removed,
			noshow, signed_up_at, preferred_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (guild_id, event_code, user_id) DO UPDATE
		SET status = EXCLUDED.status,
			removed = EXCLUDED.removed,
			noshow = EXCLUDED.noshow,
			signed_up_at = EXCLUDED.signed_up_at,
			preferred_name = EXCLUDED.preferred_name,
			updated_at = now()
		RETURNING id`,
		signup.GuildID, signup.EventCode, signup.UserID, signup.Status,
		signup.Removed, signup.NoShow, signup.SignedUpAt, signup.PreferredName,
	)
	if err := row.Scan(&signup.ID); err != nil {
		return fmt.Errorf("upsert signup: %w", err)
	}
	return nil
}

func (r *SignupRepository) Find(ctx context.Context, guildID, code, userID string) (*entities.Signup, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+signupColumns+` FROM signups
		 WHERE guild_id = $1 AND event_code = $2 AND user_id = $3`,
		guildID, code, userID,
	)
	s, err := scanSignup(row)
	if err != nil {
		if errors.Is(err, domain.ErrSignupNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get signup: %w", err)
	}
	return s, nil
}

func (r *SignupRepository) FindByEvent(ctx context.Context, guildID, code string) ([]entities.Signup, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+signupColumns+` FROM signups
		 WHERE guild_id = $1 AND event_code = $2
		 ORDER BY signed_up_at ASC, id ASC`,
		guildID, code,
	)
	if err != nil {
		return nil, fmt.Errorf("get signups by event: %w", err)
	}
	defer rows.Close()

	var out []entities.Signup
	for rows.Next() {
		s, err := scanSignup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan signup: %w", err)
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get signups by event: %w", err)
	}
	return out, nil
}

func (r *SignupRepository) MarkRemoved(ctx context.Context, guildID, code, userID string, noshow bool) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE signups
		SET removed = TRUE, noshow = noshow OR $4, updated_at = now()
		WHERE guild_id = $1 AND event_code = $2 AND user_id = $3`,
		guildID, code, userID, noshow,
	)
	if err != nil {
		return fmt.Errorf("mark signup removed: %w", err)
	}
	return nil
}

func (r *SignupRepository) DeleteByEvent(ctx context.Context, guildID, code string) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM signups WHERE guild_id = $1 AND event_code = $2`,
		guildID, code,
	); err != nil {
		return fmt.Errorf("delete signups by event: %w", err)
	}
	return nil
}
