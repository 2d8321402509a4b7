package employee

import (
	"math"
	"testing"
)

func TestNormalizePageSize(t *testing.T) {
	t.Parallel()

	for size := 1; size <= maxListPageSize; size++ {
		if got := normalizePageSize(size); got != size {
			t.Fatalf("page size %d: expected identity, got %d", size, got)
		}
	}

	for _, size := range []int{0, -1, -100, 11, 50, 1 << 20} {
		if got := normalizePageSize(size); got != defaultListPageSize {
			t.Fatalf("page size %d: expected default %d, got %d", size, defaultListPageSize, got)
		}
	}
}

func TestNewListQuery(t *testing.T) {
	t.Parallel()

	q := NewListQuery(ListEmployeesInput{
		PageNumber: 3,
		PageSize:   4,
		OrderBy:    "JOININGDATEDESC",
		SearchTerm: "ann",
		IsActive:   "TRUE",
	})

	if q.PageNumber != 3 || q.PageSize != 4 {
		t.Fatalf("unexpected paging: %+v", q)
	}
	if q.Filter.Offset != 8 || q.Filter.Limit != 4 {
		t.Fatalf("expected offset 8 limit 4, got offset %d limit %d", q.Filter.Offset, q.Filter.Limit)
	}
	if q.Filter.Order != SortJoiningDateDesc {
		t.Fatalf("expected descending order")
	}
	if q.Filter.Status == nil || *q.Filter.Status != StatusActive {
		t.Fatalf("expected Active status filter, got %v", q.Filter.Status)
	}
	if q.Filter.SearchTerm != "ann" {
		t.Fatalf("unexpected search term %q", q.Filter.SearchTerm)
	}
}

func TestNewListQuery_Defaults(t *testing.T) {
	t.Parallel()

	q := NewListQuery(ListEmployeesInput{})

	if q.PageNumber != 1 || q.PageSize != defaultListPageSize {
		t.Fatalf("unexpected defaults: %+v", q)
	}
	if q.Filter.Offset != 0 {
		t.Fatalf("expected offset 0, got %d", q.Filter.Offset)
	}
	if q.Filter.Status != nil || q.Filter.SearchTerm != "" || q.Filter.Order != SortJoiningDateAsc {
		t.Fatalf("expected no filters, got %+v", q.Filter)
	}
}

func TestParseActiveFilter(t *testing.T) {
	t.Parallel()

	tests := map[string]*Status{
		"true":     statusPtr(StatusActive),
		"TrUe":     statusPtr(StatusActive),
		"false":    statusPtr(StatusInactive),
		"False":    statusPtr(StatusInactive),
		"all":      nil,
		"":         nil,
		" true":    nil,
		"inactive": nil,
	}

	for raw, want := range tests {
		got := parseActiveFilter(raw)
		switch {
		case want == nil && got != nil:
			t.Errorf("%q: expected no filter, got %s", raw, *got)
		case want != nil && (got == nil || *got != *want):
			t.Errorf("%q: expected %s, got %v", raw, *want, got)
		}
	}
}

func statusPtr(s Status) *Status {
	return &s
}

func TestNewListQuery_HugePageNumberSaturatesOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pageNumber int
		pageSize   int
	}{
		{name: "max int", pageNumber: math.MaxInt, pageSize: 10},
		{name: "fifth of max int", pageNumber: math.MaxInt / 5, pageSize: 10},
		{name: "just past the boundary", pageNumber: math.MaxInt/10 + 2, pageSize: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q := NewListQuery(ListEmployeesInput{PageNumber: tt.pageNumber, PageSize: tt.pageSize})
			if q.Filter.Offset < 0 {
				t.Fatalf("offset must never be negative, got %d", q.Filter.Offset)
			}
			if q.Filter.Offset != math.MaxInt {
				t.Fatalf("expected saturated offset, got %d", q.Filter.Offset)
			}
			if q.PageNumber != tt.pageNumber {
				t.Fatalf("page number must be echoed, got %d", q.PageNumber)
			}
		})
	}

	if got := pageOffset(math.MaxInt/10+1, 10); got != (math.MaxInt/10)*10 {
		t.Fatalf("largest representable page must not saturate, got %d", got)
	}
}
