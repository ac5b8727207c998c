package remote

import "fmt"

// StatusSuccess - значение поля status успешного ответа сервиса.
const StatusSuccess = "success"

// APIError - ответ сервиса со status, отличным от "success".
type APIError struct {
	Operation  string
	HTTPStatus int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: remote status %q (http %d)", e.Operation, e.Status, e.HTTPStatus)
	}
	return fmt.Sprintf("%s: remote status %q (http %d): %s", e.Operation, e.Status, e.HTTPStatus, e.Message)
}
