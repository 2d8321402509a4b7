package validation

import (
	"net/mail"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/core/employee"
)

const (
	maxNameLength  = 100
	maxEmailLength = 200
)

// FieldViolation は入力項目 1 つに対する違反です。
type FieldViolation struct {
	Field       string
	Description string
}

// Error は入力検証エラーです。Violations は Field の昇順に並びます。
type Error struct {
	Violations []FieldViolation
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Description)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Fields は項目名から違反内容への対応を返します。
func (e *Error) Fields() map[string]string {
	out := make(map[string]string, len(e.Violations))
	for _, v := range e.Violations {
		out[v.Field] = v.Description
	}
	return out
}

// CreateEmployee は社員作成リクエストを検証します。問題がなければ nil を返します。
func CreateEmployee(in employee.CreateEmployeeInput) error {
	var violations []FieldViolation

	name := strings.TrimSpace(in.Name)
	switch {
	case name == "":
		violations = append(violations, FieldViolation{Field: "name", Description: "name is required"})
	case utf8.RuneCountInString(name) > maxNameLength:
		violations = append(violations, FieldViolation{Field: "name", Description: "name must be at most 100 characters"})
	}

	email := strings.TrimSpace(in.Email)
	switch {
	case email == "":
		violations = append(violations, FieldViolation{Field: "email", Description: "email is required"})
	case utf8.RuneCountInString(email) > maxEmailLength:
		violations = append(violations, FieldViolation{Field: "email", Description: "email must be at most 200 characters"})
	case !isEmailAddress(email):
		violations = append(violations, FieldViolation{Field: "email", Description: "email must be a valid email address"})
	}

	if len(violations) == 0 {
		return nil
	}
	sort.SliceStable(violations, func(i, j int) bool { return violations[i].Field < violations[j].Field })
	return &Error{Violations: violations}
}

// 表示名付きの "Name <a@b>" 形式は受け付けない
func isEmailAddress(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s && addr.Name == ""
}
