package export

import (
	"teamtrack/internal/models"

	"github.com/xuri/excelize/v2"
)

// UsersWorkbook собирает выбранных пользователей в xlsx-книгу.
func UsersWorkbook(users []models.User) (*excelize.File, error) {
	f := excelize.NewFile()
	const sheet = "Users"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{
		"ID", "Username", "Name", "Gender", "Birthday",
		"Role", "Account status", "Created at", "Last login at", "Last login IP",
	}
	for col, h := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, u := range users {
		var birthday, lastLogin string
		if u.Birthday != nil {
			birthday = u.Birthday.Format("2006-01-02")
		}
		if u.LastLoginAt != nil {
			lastLogin = u.LastLoginAt.Format("2006-01-02 15:04:05")
		}

		status := "active"
		if u.AccountStatus == models.AccountInactive {
			status = "inactive"
		}

		values := []any{
			u.ID, u.Username, u.Name, u.Gender, birthday,
			string(u.Role), status,
			u.CreatedAt.Format("2006-01-02 15:04:05"),
			lastLogin, u.LastLoginIP,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
