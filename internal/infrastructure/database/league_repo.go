package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"draftbot/internal/domain/entities"
	"draftbot/internal/ports/output"
)

var _ output.LeagueRecordRepository = (*LeagueRecordRepository)(nil)

type LeagueRecordRepository struct {
	pool *pgxpool.Pool
}

func NewLeagueRecordRepository(pool *pgxpool.Pool) *LeagueRecordRepository {
	return &LeagueRecordRepository{pool: pool}
}

// UpsertBatch writes one import batch in a single transaction; a failed
// batch leaves no partial rows behind.
func (r *LeagueRecordRepository) UpsertBatch(ctx context.Context, guildID, batchID string, records []entities.LeagueRecord) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin import batch: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range records {
		if _, err := tx.Exec(ctx, `
			INSERT INTO league_records (guild_id, user_id, games_played, league_rank, shark, import_batch)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (guild_id, user_id) DO UPDATE
			SET games_played = EXCLUDED.games_played,
				league_rank = EXCLUDED.league_rank,
				shark = EXCLUDED.shark,
				import_batch = EXCLUDED.import_batch,
				updated_at = now()`,
			guildID, rec.UserID, rec.GamesPlayed, rec.LeagueRank, rec.Shark, batchID,
		); err != nil {
			return fmt.Errorf("upsert league record %s: %w", rec.UserID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit import batch: %w", err)
	}
	return nil
}

func (r *LeagueRecordRepository) FindByGuild(ctx context.Context, guildID string) (map[string]entities.LeagueRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT guild_id, user_id, games_played, league_rank, shark, import_batch, updated_at
		FROM league_records WHERE guild_id = $1`,
		guildID,
	)
	if err != nil {
		return nil, fmt.Errorf("get league records: %w", err)
	}
	defer rows.Close()

	out := make(map[string]entities.LeagueRecord)
	for rows.Next() {
		var rec entities.LeagueRecord
		if err := rows.Scan(&rec.GuildID, &rec.UserID, &rec.GamesPlayed,
			&rec.LeagueRank, &rec.Shark, &rec.ImportBatch, &rec.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan league record: %w", err)
		}
		out[rec.UserID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get league records: %w", err)
	}
	return out, nil
}
