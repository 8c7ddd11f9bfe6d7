package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsValues(t *testing.T) {
	p := ListParams{Page: -3, PerPage: 500, OrderBy: "sideways"}
	p.Validate()

	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, MaxPerPage, p.PerPage)
	assert.Equal(t, DefaultOrderBy, p.OrderBy)
}

func TestCalculateOffsetAndPages(t *testing.T) {
	p := ListParams{Page: 3, PerPage: 20}
	assert.Equal(t, 40, p.CalculateOffset())

	assert.Equal(t, 0, CalculateTotalPages(0, 20))
	assert.Equal(t, 1, CalculateTotalPages(20, 20))
	assert.Equal(t, 2, CalculateTotalPages(21, 20))
}
