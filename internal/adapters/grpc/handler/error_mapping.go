package handler

import (
	"errors"

	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/adapters/validation"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/employee"
	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/role"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func toStatusError(err error) error {
	var verr *validation.Error
	switch {
	case err == nil:
		return nil
	case errors.As(err, &verr):
		return invalidArgument(verr)
	case errors.Is(err, employee.ErrInvalidID),
		errors.Is(err, employee.ErrInvalidName),
		errors.Is(err, employee.ErrInvalidEmail):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, role.ErrTitleAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, employee.ErrEmployeeNotFound), errors.Is(err, role.ErrRoleNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func invalidArgument(verr *validation.Error) error {
	st := status.New(codes.InvalidArgument, verr.Error())

	br := &errdetails.BadRequest{}
	for _, v := range verr.Violations {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       v.Field,
			Description: v.Description,
		})
	}

	detailed, err := st.WithDetails(br)
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}
