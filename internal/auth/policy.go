package auth

import "teamtrack/internal/models"

type Action string

const (
	CreateProject  Action = "project:create"
	UpdateProject  Action = "project:update"
	DeleteProject  Action = "project:delete"
	ArchiveProject Action = "project:archive"

	UpdateProcess Action = "process:update"

	CreateTask Action = "task:create"
	UpdateTask Action = "task:update"
	DeleteTask Action = "task:delete"

	DownloadAttachment Action = "attachment:download"

	ViewComment   Action = "comment:view"
	CreateComment Action = "comment:create"
)

// Resource — владельческий контекст проверяемого ресурса.
// Для проектов и процессов заполняется ManagerID, для задач ещё и AssigneeID.
type Resource struct {
	ManagerID  uint
	AssigneeID uint
}

// Can — центральная проверка прав: роль актора + владение ресурсом.
// Порядок проверок на уровне запроса: токен -> существование ресурса -> Can.
func Can(actor *models.User, action Action, res Resource) bool {
	if actor == nil {
		return false
	}

	switch action {

	case CreateProject:
		return actor.Role == models.RoleManager || actor.Role == models.RoleAdmin

	// правки проекта и его прогресса — только менеджер-владелец,
	// у админа обхода нет
	case UpdateProject, DeleteProject, ArchiveProject, UpdateProcess:
		return actor.ID == res.ManagerID

	case CreateTask:
		switch actor.Role {
		case models.RoleManager, models.RoleAdmin, models.RoleMember:
			return true
		}
		return false

	case UpdateTask:
		return actor.ID == res.ManagerID

	// удалить задачу может только её исполнитель
	case DeleteTask:
		return actor.ID == res.AssigneeID

	case DownloadAttachment:
		switch actor.Role {
		case models.RoleAdmin, models.RoleManager, models.RoleMember:
			return true
		}
		return false

	// комментарии доступны любому аутентифицированному пользователю
	case ViewComment, CreateComment:
		return true
	}

	return false
}
