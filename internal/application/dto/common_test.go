package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/almacen-api/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	casos := []struct {
		nombre    string
		in        dto.PageRequest
		wantPage  int
		wantLimit int
	}{
		{"defaults", dto.PageRequest{}, 1, dto.DefaultPageSize},
		{"página negativa", dto.PageRequest{Page: -3, Limit: 20}, 1, 20},
		{"límite sobre el máximo", dto.PageRequest{Page: 2, Limit: 500}, 2, dto.MaxPageSize},
		{"valores válidos", dto.PageRequest{Page: 3, Limit: 15}, 3, 15},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			c.in.Normalize()
			assert.Equal(t, c.wantPage, c.in.Page)
			assert.Equal(t, c.wantLimit, c.in.Limit)
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	p := dto.PageRequest{Page: 3, Limit: 10}
	assert.Equal(t, 20, p.Offset())
}

func TestPageCount(t *testing.T) {
	assert.Equal(t, 0, dto.PageCount(0, 10))
	assert.Equal(t, 1, dto.PageCount(1, 10))
	assert.Equal(t, 1, dto.PageCount(10, 10))
	assert.Equal(t, 2, dto.PageCount(11, 10))
	assert.Equal(t, 0, dto.PageCount(5, 0))
}
