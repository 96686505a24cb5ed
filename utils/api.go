package utils

import (
	"os"
	"strconv"

	"github.com/google/uuid"
)

const (
	maxPageSize     int = 150
	minPageSize     int = 1
	defaultPageSize int = 50
)

func GetPaginationSize(p string) int {
	perPage := os.Getenv("PAGINATE_PER_PAGE")

	if len(p) > 0 {
		perPage = p
	}

	limit, err := strconv.Atoi(perPage)
	if err != nil {
		limit = defaultPageSize
	}

	if limit < minPageSize {
		limit = minPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	return limit
}

func GetPage(p string) int {
	page, err := strconv.Atoi(p)
	if err != nil || page < 1 {
		page = 1
	}

	return page
}

func IsValidUuid(id uuid.UUID) bool {
	return id.Version() == 4 && id != uuid.Nil
}
