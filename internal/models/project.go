package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string
type ProjectPriority string

const (
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectArchived   ProjectStatus = "archived"

	PriorityLow    ProjectPriority = "low"
	PriorityNormal ProjectPriority = "normal"
	PriorityHigh   ProjectPriority = "high"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectInProgress, ProjectCompleted, ProjectArchived:
		return true
	}
	return false
}

func (p ProjectPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

type Project struct {
	gorm.Model
	Name        string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`

	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`

	Status   ProjectStatus   `gorm:"type:varchar(20);not null;default:in_progress"`
	Priority ProjectPriority `gorm:"type:varchar(20);not null;default:normal"`

	ManagerID uint `gorm:"not null"`
	Manager   User
}

func (p *Project) ToDict() map[string]any {
	return map[string]any{
		"id":           p.ID,
		"name":         p.Name,
		"description":  p.Description,
		"start_date":   p.StartDate.Format("2006-01-02 15:04:05"),
		"end_date":     p.EndDate.Format("2006-01-02 15:04:05"),
		"status":       string(p.Status),
		"priority":     string(p.Priority),
		"manager_id":   p.ManagerID,
		"manager_name": p.Manager.Name,
	}
}

// Process — прогресс проекта, ровно одна запись на проект.
// Создаётся в одной транзакции с проектом.
type Process struct {
	gorm.Model
	ProjectID uint `gorm:"not null;uniqueIndex"`
	Project   Project

	// доля завершения в [0,1], наружу отдаём в процентах
	CompletionRate float64   `gorm:"not null;default:0"`
	UpdateTime     time.Time `gorm:"not null"`
}

func (p *Process) ToDict() map[string]any {
	return map[string]any{
		"id":              p.ID,
		"project_id":      p.ProjectID,
		"project_name":    p.Project.Name,
		"completion_rate": p.CompletionRate * 100,
		"update_time":     p.UpdateTime.Format("2006-01-02 15:04:05"),
	}
}

// ArchivedProject — снимок на момент архивации, только добавление, без правок.
type ArchivedProject struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	ProjectID uint `gorm:"not null"`
	Project   Project

	ArchivedDate time.Time `gorm:"not null"`
}

func (a *ArchivedProject) ToDict() map[string]any {
	return map[string]any{
		"id":            a.ID,
		"project_id":    a.ProjectID,
		"project_name":  a.Project.Name,
		"manager_name":  a.Project.Manager.Name,
		"archived_date": a.ArchivedDate.Format("2006-01-02 15:04:05"),
	}
}
