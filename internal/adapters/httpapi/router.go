package httpapi

import (
	"github.com/gin-gonic/gin"

	"draftbot/internal/ports/output"
)

// NewRouter wires the import API the external spreadsheet sync pushes league
// records through.
func NewRouter(leagueRepo output.LeagueRecordRepository, guildID, importToken string) *gin.Engine {
	r := gin.Default()
	handler := NewHandler(leagueRepo, guildID, importToken)

	r.GET("/healthz", handler.Health)

	api := r.Group("/api/v1")
	api.Use(handler.Auth)
	{
		api.POST("/league-records", handler.ImportLeagueRecords)
	}
	return r
}
