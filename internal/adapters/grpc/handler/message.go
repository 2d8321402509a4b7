package handler

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/ogurasousui/careerpath-grpc-clean-arch/internal/adapters/validation"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// requestReader は Struct 形式のリクエストから値を取り出し、型の不一致を違反として蓄積します。
type requestReader struct {
	fields     map[string]*structpb.Value
	violations []validation.FieldViolation
}

func newRequestReader(req *structpb.Struct) *requestReader {
	return &requestReader{fields: req.GetFields()}
}

func (r *requestReader) lookup(key string) (*structpb.Value, bool) {
	v, ok := r.fields[key]
	if !ok || v == nil {
		return nil, false
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return nil, false
	}
	return v, true
}

func (r *requestReader) intField(key string) int {
	v, ok := r.lookup(key)
	if !ok {
		return 0
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_NumberValue:
		if k.NumberValue != math.Trunc(k.NumberValue) || math.Abs(k.NumberValue) > math.MaxInt32 {
			r.violate(key, key+" must be an integer")
			return 0
		}
		return int(k.NumberValue)
	case *structpb.Value_StringValue:
		s := strings.TrimSpace(k.StringValue)
		if s == "" {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			r.violate(key, key+" must be an integer")
			return 0
		}
		return n
	default:
		r.violate(key, key+" must be an integer")
		return 0
	}
}

func (r *requestReader) stringField(key string) string {
	v, ok := r.lookup(key)
	if !ok {
		return ""
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(k.BoolValue)
	default:
		r.violate(key, key+" must be a string")
		return ""
	}
}

func (r *requestReader) optionalStringField(key string) *string {
	if _, ok := r.lookup(key); !ok {
		return nil
	}
	s := r.stringField(key)
	return &s
}

func (r *requestReader) violate(field, description string) {
	r.violations = append(r.violations, validation.FieldViolation{Field: field, Description: description})
}

func (r *requestReader) err() error {
	if len(r.violations) == 0 {
		return nil
	}
	return &validation.Error{Violations: r.violations}
}

// toStruct は JSON タグに従って値を Struct に変換します。
func toStruct(v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}
