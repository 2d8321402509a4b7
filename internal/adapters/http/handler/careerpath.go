package handler

import (
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/adapters/validation"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/employee"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/role"
)

// CareerPathHTTPHandler は REST API からユースケースを呼び出すアダプタです。
type CareerPathHTTPHandler struct {
	employees employee.UseCase
	roles     role.UseCase
}

// NewCareerPathHTTPHandler は CareerPathHTTPHandler を生成します。
func NewCareerPathHTTPHandler(employees employee.UseCase, roles role.UseCase) *CareerPathHTTPHandler {
	return &CareerPathHTTPHandler{employees: employees, roles: roles}
}

// RegisterRoutes はヘルスチェックと /api 配下のルートを登録します。
func (h *CareerPathHTTPHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/healthcheck", h.HealthCheck)

	api := router.Group("/api")
	api.Get("/employees", h.ListEmployees)
	api.Get("/employees/:id", h.GetEmployee)
	api.Post("/employees", h.CreateEmployee)
	api.Get("/roles", h.ListRoles)
}

// HealthCheck は死活監視用のエンドポイントです。
func (h *CareerPathHTTPHandler) HealthCheck(c *fiber.Ctx) error {
	return c.SendString("ok")
}

// ListEmployees は GET /api/employees を処理します。
func (h *CareerPathHTTPHandler) ListEmployees(c *fiber.Ctx) error {
	var violations []validation.FieldViolation
	pageNumber := queryInt(c, "pageNumber", &violations)
	pageSize := queryInt(c, "pageSize", &violations)
	if len(violations) > 0 {
		return &validation.Error{Violations: violations}
	}

	result, err := h.employees.ListEmployees(c.UserContext(), employee.ListEmployeesInput{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		OrderBy:    c.Query("orderBy"),
		SearchTerm: c.Query("searchTerm"),
		IsActive:   c.Query("isActive"),
	})
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// GetEmployee は GET /api/employees/:id を処理します。
func (h *CareerPathHTTPHandler) GetEmployee(c *fiber.Ctx) error {
	found, err := h.employees.GetEmployee(c.UserContext(), employee.GetEmployeeInput{ID: c.Params("id")})
	if err != nil {
		return err
	}
	if found == nil {
		return employee.ErrEmployeeNotFound
	}
	return c.JSON(found)
}

type createEmployeeRequest struct {
	Name        string  `json:"name"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phoneNumber"`
	Email       string  `json:"email"`
	Status      string  `json:"status"`
}

// CreateEmployee は POST /api/employees を処理します。
func (h *CareerPathHTTPHandler) CreateEmployee(c *fiber.Ctx) error {
	var req createEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "request body must be a JSON object")
	}

	in := employee.CreateEmployeeInput{
		Name:        req.Name,
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Status:      req.Status,
	}
	if err := validation.CreateEmployee(in); err != nil {
		return err
	}

	result, err := h.employees.CreateEmployee(c.UserContext(), in)
	if err != nil {
		return err
	}
	if !result.Created {
		return fiber.NewError(fiber.StatusBadRequest, "employee was not created")
	}
	return c.Status(fiber.StatusCreated).JSON(result.Employee)
}

// ListRoles は GET /api/roles を処理します。
func (h *CareerPathHTTPHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.roles.ListRoles(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"roles": roles})
}

// 未指定・空文字は 0 として扱い、正規化はユースケースに任せる
func queryInt(c *fiber.Ctx, key string, violations *[]validation.FieldViolation) int {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n > math.MaxInt32 || n < math.MinInt32 {
		*violations = append(*violations, validation.FieldViolation{Field: key, Description: key + " must be an integer"})
		return 0
	}
	return n
}
