package handler

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/adapters/validation"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/employee"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/role"
)

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ErrorHandler はハンドラが返したエラーを HTTP ステータスに変換します。fiber.Config.ErrorHandler に設定します。
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, body := toHTTPError(err)
	if status >= fiber.StatusInternalServerError {
		log.Printf("http: %s %s: %v", c.Method(), c.OriginalURL(), err)
	}
	return c.Status(status).JSON(body)
}

func toHTTPError(err error) (int, ErrorResponse) {
	var (
		verr     *validation.Error
		fiberErr *fiber.Error
	)
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: verr.Fields()}
	case errors.As(err, &fiberErr):
		return fiberErr.Code, ErrorResponse{Error: fiberErr.Message}
	case errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidName),
		errors.Is(err, employee.ErrInvalidEmail):
		return fiber.StatusBadRequest, ErrorResponse{Error: err.Error()}
	case errors.Is(err, employee.ErrEmployeeNotFound):
		return fiber.StatusNotFound, ErrorResponse{Error: "employee not found"}
	case errors.Is(err, role.ErrRoleNotFound):
		return fiber.StatusNotFound, ErrorResponse{Error: "role not found"}
	case errors.Is(err, role.ErrTitleAlreadyExists):
		return fiber.StatusConflict, ErrorResponse{Error: err.Error()}
	default:
		return fiber.StatusInternalServerError, ErrorResponse{Error: "internal server error"}
	}
}
