package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"draftbot/internal/domain/entities"
	"draftbot/internal/ports/output"
)

// Handler holds shared dependencies for the import API.
type Handler struct {
	leagueRepo  output.LeagueRecordRepository
	guildID     string
	importToken string
}

func NewHandler(leagueRepo output.LeagueRecordRepository, guildID, importToken string) *Handler {
	return &Handler{leagueRepo: leagueRepo, guildID: guildID, importToken: importToken}
}

// Auth guards the import endpoints with the shared importer token.
func (h *Handler) Auth(c *gin.Context) {
	if h.importToken == "" || c.GetHeader("X-Import-Token") != h.importToken {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid import token"})
		return
	}
	c.Next()
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type leagueRecordRow struct {
	UserID      string `json:"user_id" binding:"required"`
	GamesPlayed int    `json:"games_played"`
	LeagueRank  int    `json:"league_rank"`
	Shark       bool   `json:"shark"`
}

type importRequest struct {
	Records []leagueRecordRow `json:"records" binding:"required,min=1"`
}

// ImportLeagueRecords ingests one spreadsheet export as a single batch.
func (h *Handler) ImportLeagueRecords(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batchID := uuid.NewString()
	records := make([]entities.LeagueRecord, len(req.Records))
	for i, row := range req.Records {
		records[i] = entities.LeagueRecord{
			GuildID:     h.guildID,
			UserID:      row.UserID,
			GamesPlayed: row.GamesPlayed,
			LeagueRank:  row.LeagueRank,
			Shark:       row.Shark,
		}
	}

	if err := h.leagueRepo.UpsertBatch(c.Request.Context(), h.guildID, batchID, records); err != nil {
		log.Error().Err(err).Str("batch", batchID).Msg("import league records")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "import failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"batch_id": batchID, "imported": len(records)})
}
