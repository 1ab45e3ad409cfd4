package database

import (
	"teamtrack/internal/logging"
	"teamtrack/internal/models"
)

// CreateAuditLog пишет запись в журнал действий.
// Журнал — побочный канал: его сбой не должен ронять запрос.
func CreateAuditLog(userID uint, entity string, entityID uint, action, details string) {
	if DB == nil {
		return
	}
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := DB.Create(&record).Error; err != nil {
		logging.Logger.Warnf("failed to write audit log (%s %s %d): %v", action, entity, entityID, err)
	}
}
