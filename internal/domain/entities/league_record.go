package entities

import "time"

// LeagueRecord is the per-player league standing imported from the external
// spreadsheet. The pod allocator reads it for rank/newbie/shark priority.
type LeagueRecord struct {
	GuildID     string
	UserID      string
	GamesPlayed int
	LeagueRank  int
	Shark       bool

	// ImportBatch identifies the upload that last touched this row.
	ImportBatch string

	UpdatedAt time.Time
}
