package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

type Task struct {
	gorm.Model
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text"`
	DueDate     time.Time `gorm:"not null"`

	AssigneeID uint `gorm:"not null"`
	Assignee   User

	ProjectID uint `gorm:"not null"`
	Project   Project

	Status TaskStatus `gorm:"type:varchar(20);not null;default:in_progress"`

	AttachmentURL string `gorm:"size:255"`
}

func (t *Task) ToDict() map[string]any {
	return map[string]any{
		"id":                   t.ID,
		"title":                t.Title,
		"description":          t.Description,
		"due_date":             t.DueDate.Format("2006-01-02 15:04:05"),
		"assignee_id":          t.AssigneeID,
		"assignee_name":        t.Assignee.Name,
		"project_id":           t.ProjectID,
		"project_name":         t.Project.Name,
		"project_manager_name": t.Project.Manager.Name,
		"attachmentUrl":        t.AttachmentURL,
		"status":               string(t.Status),
	}
}

// Comment — комментарий к задаче, после создания не меняется.
// Имя автора денормализуем при создании.
type Comment struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	TaskID uint `gorm:"not null"`
	Task   Task

	AuthorName string `gorm:"size:80;not null"`
	Content    string `gorm:"type:text;not null"`
}

func (c *Comment) ToDict() map[string]any {
	return map[string]any{
		"id":          c.ID,
		"task_id":     c.TaskID,
		"author_name": c.AuthorName,
		"content":     c.Content,
		"created_at":  c.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
