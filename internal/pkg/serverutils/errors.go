package serverutils

import "github.com/gofiber/fiber/v2"

// HttpError is a fault that already knows which status it maps to. Every
// service-level failure is one of these; anything else reaching the error
// handler is treated as an internal error.
type HttpError struct {
	Code    int
	Message string
}

func (e *HttpError) Error() string {
	return e.Message
}

func NewHttpError(code int, message string) *HttpError {
	return &HttpError{Code: code, Message: message}
}

// NewBadRequestError covers validation faults, conflicts (duplicate
// email), and credential failures on the login path.
func NewBadRequestError(message string) *HttpError {
	return NewHttpError(fiber.StatusBadRequest, message)
}

func NewUnauthorizedError(message string) *HttpError {
	return NewHttpError(fiber.StatusUnauthorized, message)
}

func NewNotFoundError(message string) *HttpError {
	return NewHttpError(fiber.StatusNotFound, message)
}
