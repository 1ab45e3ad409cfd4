package handlers

import (
	"net/http"

	"teamtrack/internal/apperr"
	"teamtrack/internal/database"
	"teamtrack/internal/models"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs — последние записи журнала, только для админа (роль режет роутер).
func (h *Handler) ListAuditLogs(c *gin.Context) {
	var logs []models.AuditLog
	if err := database.DB.Preload("User").
		Order("created_at desc").
		Limit(200).
		Find(&logs).Error; err != nil {
		fail(c, apperr.Store, "failed to load audit logs")
		return
	}

	out := make([]gin.H, 0, len(logs))
	for _, l := range logs {
		out = append(out, gin.H{
			"id":         l.ID,
			"user":       l.User.Username,
			"entity":     l.Entity,
			"entity_id":  l.EntityID,
			"action":     l.Action,
			"details":    l.Details,
			"created_at": l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	c.JSON(http.StatusOK, gin.H{"total": len(out), "logs": out})
}
