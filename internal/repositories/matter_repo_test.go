package repositories

import "testing"

func TestClampMatterPage(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, 20, 0},
		{-1, -10, 20, 0},
		{100, 40, 100, 40},
		{101, 0, 20, 0},
		{5, 5, 5, 5},
	}

	for _, tt := range tests {
		limit, offset := ClampMatterPage(tt.limit, tt.offset)
		if limit != tt.wantLimit || offset != tt.wantOffset {
			t.Errorf("ClampMatterPage(%d, %d) = (%d, %d), want (%d, %d)",
				tt.limit, tt.offset, limit, offset, tt.wantLimit, tt.wantOffset)
		}
	}
}
