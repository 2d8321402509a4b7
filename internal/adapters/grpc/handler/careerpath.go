package handler

import (
	"context"

	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/adapters/grpc/careerpathv1"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/adapters/validation"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/employee"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/role"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

var _ careerpathv1.CareerPathServiceServer = (*CareerPathGrpcHandler)(nil)

// CareerPathGrpcHandler は CareerPathService の gRPC 実装です。
type CareerPathGrpcHandler struct {
	employees employee.UseCase
	roles     role.UseCase
}

// NewCareerPathGrpcHandler は CareerPathGrpcHandler を生成します。
func NewCareerPathGrpcHandler(employees employee.UseCase, roles role.UseCase) *CareerPathGrpcHandler {
	return &CareerPathGrpcHandler{employees: employees, roles: roles}
}

// ListEmployees は社員の一覧を取得します。
func (h *CareerPathGrpcHandler) ListEmployees(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequestReader(req)
	in := employee.ListEmployeesInput{
		PageNumber: r.intField("pageNumber"),
		PageSize:   r.intField("pageSize"),
		OrderBy:    r.stringField("orderBy"),
		SearchTerm: r.stringField("searchTerm"),
		IsActive:   r.stringField("isActive"),
	}
	if err := r.err(); err != nil {
		return nil, toStatusError(err)
	}

	result, err := h.employees.ListEmployees(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}
	return toStruct(result)
}

// GetEmployee は社員を取得します。
func (h *CareerPathGrpcHandler) GetEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequestReader(req)
	id := r.stringField("id")
	if err := r.err(); err != nil {
		return nil, toStatusError(err)
	}

	found, err := h.employees.GetEmployee(ctx, employee.GetEmployeeInput{ID: id})
	if err != nil {
		return nil, toStatusError(err)
	}
	if found == nil {
		return nil, status.Error(codes.NotFound, employee.ErrEmployeeNotFound.Error())
	}
	return toStruct(found)
}

// CreateEmployee は社員を作成します。
func (h *CareerPathGrpcHandler) CreateEmployee(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	r := newRequestReader(req)
	in := employee.CreateEmployeeInput{
		Name:        r.stringField("name"),
		Address:     r.optionalStringField("address"),
		PhoneNumber: r.optionalStringField("phoneNumber"),
		Email:       r.stringField("email"),
		Status:      r.stringField("status"),
	}
	if err := r.err(); err != nil {
		return nil, toStatusError(err)
	}
	if err := validation.CreateEmployee(in); err != nil {
		return nil, toStatusError(err)
	}

	result, err := h.employees.CreateEmployee(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}
	if !result.Created {
		return nil, status.Error(codes.Aborted, "employee was not created")
	}

	employeeStruct, err := toStruct(result.Employee)
	if err != nil {
		return nil, err
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"created":  structpb.NewBoolValue(true),
		"employee": structpb.NewStructValue(employeeStruct),
	}}, nil
}

// ListRoles は全役職を取得します。
func (h *CareerPathGrpcHandler) ListRoles(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	roles, err := h.roles.ListRoles(ctx)
	if err != nil {
		return nil, toStatusError(err)
	}
	return toStruct(map[string]any{"roles": roles})
}
