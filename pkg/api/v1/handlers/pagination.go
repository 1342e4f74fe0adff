package handlers

import (
	"math"

	"github.com/celestiaorg/cadence/internal/db/models"
)

// maxPage keeps the computed offset within a 32-bit integer
const maxPage = math.MaxInt32/models.DefaultLimit + 1

// getPaginationOptions returns a ListOptions struct with validated pagination parameters
func getPaginationOptions(page int) *models.ListOptions {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}

	return &models.ListOptions{
		Limit:  models.DefaultLimit,
		Offset: (page - 1) * models.DefaultLimit,
	}
}
