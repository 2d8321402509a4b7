package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/employee"
)

func TestCreateEmployee(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         employee.CreateEmployeeInput
		wantFields []string
	}{
		{
			name: "valid",
			in:   employee.CreateEmployeeInput{Name: "Ada Lovelace", Email: "ada@example.com"},
		},
		{
			name: "valid with status",
			in:   employee.CreateEmployeeInput{Name: "Ada", Email: "ada@example.com", Status: "Inactive"},
		},
		{
			name:       "missing name and email",
			in:         employee.CreateEmployeeInput{Name: "  "},
			wantFields: []string{"email", "name"},
		},
		{
			name:       "name too long",
			in:         employee.CreateEmployeeInput{Name: strings.Repeat("a", 101), Email: "ada@example.com"},
			wantFields: []string{"name"},
		},
		{
			name:       "name at limit",
			in:         employee.CreateEmployeeInput{Name: strings.Repeat("あ", 100), Email: "ada@example.com"},
			wantFields: nil,
		},
		{
			name:       "malformed email",
			in:         employee.CreateEmployeeInput{Name: "Ada", Email: "not-an-email"},
			wantFields: []string{"email"},
		},
		{
			name:       "display name email",
			in:         employee.CreateEmployeeInput{Name: "Ada", Email: "Ada <ada@example.com>"},
			wantFields: []string{"email"},
		},
		{
			name:       "email too long",
			in:         employee.CreateEmployeeInput{Name: "Ada", Email: strings.Repeat("a", 190) + "@example.com"},
			wantFields: []string{"email"},
		},
		{
			name: "free-form status passes through",
			in:   employee.CreateEmployeeInput{Name: "Ada", Email: "ada@example.com", Status: "Contractor"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CreateEmployee(tt.in)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if len(verr.Violations) != len(tt.wantFields) {
				t.Fatalf("expected %d violations, got %+v", len(tt.wantFields), verr.Violations)
			}
			for i, f := range tt.wantFields {
				if verr.Violations[i].Field != f {
					t.Fatalf("violation %d: want %s got %s", i, f, verr.Violations[i].Field)
				}
			}
			if _, ok := verr.Fields()[tt.wantFields[0]]; !ok {
				t.Fatalf("expected Fields to contain %s", tt.wantFields[0])
			}
		})
	}
}
