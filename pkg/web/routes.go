// Package web provides API routes for the web server.
package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/PancyStudios/PancyGuardGo/pkg/database"
	"github.com/PancyStudios/PancyGuardGo/pkg/discord"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes sets up the API routes
func SetupAPIRoutes(s *Server) {
	api := s.Group("/api")
	{
		api.GET("/status", statusHandler)
		api.GET("/health", healthHandler)
		api.GET("/bot", botInfoHandler)

		filterAPI := api.Group("/filter")
		{
			filterAPI.GET("/live", liveFeedHandler)
			filterAPI.GET("/:guild/stats", filterStatsHandler)
			filterAPI.POST("/:guild/test", filterTestHandler)
		}
	}
}

// statusHandler returns the bot and database status
func statusHandler(c *gin.Context) {
	db := database.Get()
	client := discord.Get()

	dbStatus, dbOnline := db.GetStatus()

	botOnline := false
	if client != nil {
		botOnline = client.IsReady()
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"database": gin.H{
			"status":   dbStatus,
			"isOnline": dbOnline,
		},
		"bot": gin.H{
			"isOnline": botOnline,
		},
	})
}

// healthHandler returns a simple health check response
func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "PancyGuard Go is running",
	})
}

// botInfoHandler returns information about the bot
func botInfoHandler(c *gin.Context) {
	client := discord.Get()

	if client == nil || !client.IsReady() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Bot Offline",
			"message": "El bot no está disponible en este momento.",
		})
		return
	}

	user := client.Session.State.User

	c.JSON(http.StatusOK, gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"discriminator": user.Discriminator,
		"avatar":        user.Avatar,
		"guilds":        client.GuildCount(),
		"isReady":       client.IsReady(),
	})
}

// filterStatsHandler returns violation statistics for one guild.
// Query param "hours" selects the window (default 24).
func filterStatsHandler(c *gin.Context) {
	guildID := c.Param("guild")

	hours := 24
	if v := c.Query("hours"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 24*365 {
			hours = n
		}
	}
	window := time.Duration(hours) * time.Hour

	total, err := database.TotalViolations(guildID, window)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	top, err := database.TopViolationTerms(guildID, window, 10)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"guildId": guildID,
		"hours":   hours,
		"total":   total,
		"top":     top,
	})
}

type filterTestRequest struct {
	Text string `json:"text" binding:"required"`
}

// filterTestHandler previews a text against a guild's filter without any
// side effects.
func filterTestHandler(c *gin.Context) {
	client := discord.Get()
	if client == nil || client.Filter == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "filtro no inicializado"})
		return
	}

	var req filterTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "falta el campo \"text\""})
		return
	}

	result := client.Filter.TestMessage(c.Param("guild"), req.Text)
	c.JSON(http.StatusOK, result)
}
