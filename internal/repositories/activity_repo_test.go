package repositories

import "testing"

func TestClampPage(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, DefaultActivityLimit, 0},
		{-5, -1, DefaultActivityLimit, 0},
		{50, 10, 50, 10},
		{MaxActivityLimit, 0, MaxActivityLimit, 0},
		{MaxActivityLimit + 1, 3, MaxActivityLimit, 3},
	}

	for _, tt := range tests {
		limit, offset := ClampPage(tt.limit, tt.offset)
		if limit != tt.wantLimit || offset != tt.wantOffset {
			t.Errorf("ClampPage(%d, %d) = (%d, %d), want (%d, %d)",
				tt.limit, tt.offset, limit, offset, tt.wantLimit, tt.wantOffset)
		}
	}
}
