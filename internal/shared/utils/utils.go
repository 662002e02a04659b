package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage giữ (page-1)*MaxLimit trong khoảng int an toàn
	MaxPage = 1_000_000
)

// ParseID parse path/query param thành id dương
func ParseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// NormalizePage chuẩn hoá page/limit: page ngoài [1, MaxPage] -> 1/MaxPage,
// limit ngoài [1, MaxLimit] -> default/max
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Offset của page 1-indexed, page/limit được chuẩn hoá trước khi nhân
func Offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	page, limit = NormalizePage(page, limit)
	return (page - 1) * limit
}

// TotalPages = ceil(total / perPage)
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// RoundRating làm tròn 1 chữ số thập phân (half away from zero).
// Chỉ dùng ở tầng response, tính toán bên trong giữ full precision.
func RoundRating(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}
