package apperr

import "net/http"

// Kind — машиночитаемый класс ошибки, уходит клиенту в поле "error".
type Kind string

const (
	Unauthorized Kind = "unauthorized"
	Forbidden    Kind = "forbidden"
	NotFound     Kind = "not_found"
	Conflict     Kind = "conflict"
	Validation   Kind = "validation_error"
	Store        Kind = "store_error"
)

func (k Kind) HTTPStatus() int {
	switch k {
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Validation:
		return http.StatusBadRequest
	case Store:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
