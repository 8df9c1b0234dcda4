package transport

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name               string
		page, limit, total int
		want               Pagination
	}{
		{
			name: "first of several pages",
			page: 1, limit: 10, total: 25,
			want: Pagination{CurrentPage: 1, TotalPages: 3, TotalTasks: 25, HasNext: true, HasPrev: false},
		},
		{
			name: "middle page",
			page: 2, limit: 10, total: 25,
			want: Pagination{CurrentPage: 2, TotalPages: 3, TotalTasks: 25, HasNext: true, HasPrev: true},
		},
		{
			name: "last page",
			page: 3, limit: 10, total: 25,
			want: Pagination{CurrentPage: 3, TotalPages: 3, TotalTasks: 25, HasNext: false, HasPrev: true},
		},
		{
			name: "exact multiple",
			page: 2, limit: 10, total: 20,
			want: Pagination{CurrentPage: 2, TotalPages: 2, TotalTasks: 20, HasNext: false, HasPrev: true},
		},
		{
			name: "empty result still one page",
			page: 1, limit: 10, total: 0,
			want: Pagination{CurrentPage: 1, TotalPages: 1, TotalTasks: 0, HasNext: false, HasPrev: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NewPagination(tt.page, tt.limit, tt.total))
		})
	}
}
