package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"draftbot/internal/domain"
	"draftbot/internal/domain/entities"
	"draftbot/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

const eventColumns = `id, guild_id, code, name, description, format, host_id,
	start_time, duration_minutes, stage, reminder_sent_at, tentatives_pinged_at,
	channel_id, details_message_id, signup_message_id, reminder_message_id,
	tentative_ping_message_id, created_at, updated_at`

func scanEvent(row pgx.Row) (*entities.Event, error) {
	var e entities.Event
	var durationMinutes int
	var reminderSentAt, tentativesPingedAt, createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(
		&e.ID, &e.GuildID, &e.Code, &e.Name, &e.Description, &e.Format, &e.HostID,
		&e.StartTime, &durationMinutes, &e.Stage, &reminderSentAt, &tentativesPingedAt,
		&e.ChannelID, &e.DetailsMessageID, &e.SignupMessageID, &e.ReminderMessageID,
		&e.TentativePingMessageID, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, err
	}
	e.Duration = time.Duration(durationMinutes) * time.Minute
	e.ReminderSentAt = pgtypeTimestamptzToTime(reminderSentAt)
	e.TentativesPingedAt = pgtypeTimestamptzToTime(tentativesPingedAt)
	e.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	e.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return &e, nil
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO events (guild_id, code, name, description, format, host_id,
			start_time, duration_minutes, stage)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		event.GuildID, event.Code, event.Name, event.Description, event.Format,
		event.HostID, event.StartTime, int(event.Duration.Minutes()), event.Stage,
	)
	var createdAt, updatedAt pgtype.Timestamptz
	if err := row.Scan(&event.ID, &createdAt, &updatedAt); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	event.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (r *EventRepository) FindByCode(ctx context.Context, guildID, code string) (*entities.Event, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE guild_id = $1 AND code = $2`,
		guildID, code,
	)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get event by code: %w", err)
	}
	return e, nil
}

func (r *EventRepository) FindBySignupMessageID(ctx context.Context, messageID string) (*entities.Event, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events WHERE signup_message_id = $1`,
		messageID,
	)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get event by signup message id: %w", err)
	}
	return e, nil
}

func (r *EventRepository) FindNextUpcoming(ctx context.Context, guildID string, now time.Time) (*entities.Event, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+eventColumns+` FROM events
		 WHERE guild_id = $1 AND stage >= $2 AND stage < $3
		 ORDER BY start_time ASC
		 LIMIT 1`,
		guildID, int(domain.StagePosted), int(domain.StageComplete),
	)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, domain.ErrEventNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find next upcoming event: %w", err)
	}
	return e, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE events
		SET name = $3, description = $4, format = $5, host_id = $6,
			start_time = $7, duration_minutes = $8, updated_at = now()
		WHERE guild_id = $1 AND code = $2`,
		event.GuildID, event.Code, event.Name, event.Description, event.Format,
		event.HostID, event.StartTime, int(event.Duration.Minutes()),
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	return nil
}

// AdvanceStage raises the stage atomically; GREATEST keeps it monotonic under
// concurrent writers.
func (r *EventRepository) AdvanceStage(ctx context.Context, guildID, code string, stage int) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE events SET stage = GREATEST(stage, $3), updated_at = now()
		WHERE guild_id = $1 AND code = $2`,
		guildID, code, stage,
	)
	if err != nil {
		return fmt.Errorf("advance stage: %w", err)
	}
	return nil
}

func (r *EventRepository) MarkReminderSent(ctx context.Context, guildID, code, messageID string, at time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE events
		SET reminder_sent_at = COALESCE(reminder_sent_at, $3),
			reminder_message_id = CASE WHEN reminder_message_id = '' THEN $4 ELSE reminder_message_id END,
			updated_at = now()
		WHERE guild_id = $1 AND code = $2`,
		guildID, code, timeToTimestamptz(at), messageID,
	)
	if err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	return nil
}

func (r *EventRepository) MarkTentativesPinged(ctx context.Context, guildID, code, messageID string, at time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE events
		SET tentatives_pinged_at = COALESCE(tentatives_pinged_at, $3),
			tentative_ping_message_id = CASE WHEN tentative_ping_message_id = '' THEN $4 ELSE tentative_ping_message_id END,
			updated_at = now()
		WHERE guild_id = $1 AND code = $2`,
		guildID, code, timeToTimestamptz(at), messageID,
	)
	if err != nil {
		return fmt.Errorf("mark tentatives pinged: %w", err)
	}
	return nil
}

func (r *EventRepository) SetMessageIDs(ctx context.Context, guildID, code, channelID, detailsID, signupID string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE events
		SET channel_id = $3, details_message_id = $4, signup_message_id = $5, updated_at = now()
		WHERE guild_id = $1 AND code = $2`,
		guildID, code, channelID, detailsID, signupID,
	)
	if err != nil {
		return fmt.Errorf("set message ids: %w", err)
	}
	return nil
}

func (r *EventRepository) ClearMessageIDs(ctx context.Context, guildID, code string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE events
		SET details_message_id = '', signup_message_id = '',
			reminder_message_id = '', tentative_ping_message_id = '',
			updated_at = now()
		WHERE guild_id = $1 AND code = $2`,
		guildID, code,
	)
	if err != nil {
		return fmt.Errorf("clear message ids: %w", err)
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, guildID, code string) error {
	if _, err := r.pool.Exec(ctx,
		`DELETE FROM events WHERE guild_id = $1 AND code = $2`, guildID, code,
	); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}
