package employee

import (
	"math"
	"strings"
)

const (
	defaultListPageSize = 5
	maxListPageSize     = 10

	orderByJoiningDateDesc = "joiningdatedesc"
	activeFilterTrue       = "true"
	activeFilterFalse      = "false"
)

// ListEmployeesInput は一覧取得時の入力です。
type ListEmployeesInput struct {
	PageNumber int
	PageSize   int
	OrderBy    string
	SearchTerm string
	IsActive   string
}

// ListQuery は正規化済みの一覧取得条件です。
type ListQuery struct {
	PageNumber int
	PageSize   int
	Filter     ListFilter
}

// NewListQuery は入力を正規化し、リポジトリに渡すフィルタを組み立てます。
func NewListQuery(in ListEmployeesInput) ListQuery {
	pageNumber := normalizePageNumber(in.PageNumber)
	pageSize := normalizePageSize(in.PageSize)

	var search string
	if strings.TrimSpace(in.SearchTerm) != "" {
		search = in.SearchTerm
	}

	return ListQuery{
		PageNumber: pageNumber,
		PageSize:   pageSize,
		Filter: ListFilter{
			Status:     parseActiveFilter(in.IsActive),
			SearchTerm: search,
			Order:      parseSortOrder(in.OrderBy),
			Limit:      pageSize,
			Offset:     pageOffset(pageNumber, pageSize),
		},
	}
}

// int の範囲を超えるページは math.MaxInt に飽和させ、空のページとして扱う
func pageOffset(pageNumber, pageSize int) int {
	if pageNumber-1 > math.MaxInt/pageSize {
		return math.MaxInt
	}
	return (pageNumber - 1) * pageSize
}

// 範囲外（未指定を含む）はデフォルト値に戻す。上限で切り詰めない。
func normalizePageSize(pageSize int) int {
	if pageSize < 1 || pageSize > maxListPageSize {
		return defaultListPageSize
	}
	return pageSize
}

func normalizePageNumber(pageNumber int) int {
	if pageNumber < 1 {
		return 1
	}
	return pageNumber
}

func parseActiveFilter(raw string) *Status {
	var status Status
	switch strings.ToLower(raw) {
	case activeFilterTrue:
		status = StatusActive
	case activeFilterFalse:
		status = StatusInactive
	default:
		return nil
	}
	return &status
}

func parseSortOrder(raw string) SortOrder {
	if strings.EqualFold(raw, orderByJoiningDateDesc) {
		return SortJoiningDateDesc
	}
	return SortJoiningDateAsc
}
