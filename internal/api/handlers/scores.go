package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/nineball/backend/internal/game"
)

// TopScores returns the Redis leaderboard, best first.
func TopScores() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseLimit(c.Query("limit"), 10)

		scores, err := game.Manager.TopScores(c.Request.Context(), limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load leaderboard"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"scores": scores})
	}
}

// RecentSessions returns the most recently finished sessions.
func RecentSessions() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := parseLimit(c.Query("limit"), 20)

		records, err := game.Manager.RecentSessions(limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load sessions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"sessions": records})
	}
}

func parseLimit(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > 100 {
		return def
	}
	return n
}
