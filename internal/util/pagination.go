package util

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

func ParseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}

// Calculate normalizes a zero-based page number and page size into an
// offset/limit pair.
func Calculate(page, size int) (offset, limit int) {
	if page < 0 {
		page = 0
	}
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	return page * size, size
}

var productSortColumns = map[string]string{
	"id":          "id",
	"productName": "product_name",
	"createdOn":   "created_on",
	"modifiedOn":  "modified_on",
	"createdBy":   "created_by",
	"modifiedBy":  "modified_by",
}

// ProductSortColumn maps an API sort field to its column name, rejecting
// anything outside the allow-list so user input never reaches the ORDER BY
// clause directly.
func ProductSortColumn(sortBy string) (string, error) {
	col, ok := productSortColumns[sortBy]
	if !ok {
		return "", fmt.Errorf("invalid sortBy: %s", sortBy)
	}
	return col, nil
}

func SortDirection(dir string) string {
	if strings.EqualFold(dir, "desc") {
		return "DESC"
	}
	return "ASC"
}
