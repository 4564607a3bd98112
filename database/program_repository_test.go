package database

import "testing"

func TestSumAsInt(t *testing.T) {
	tests := []struct {
		name string
		in   interface{}
		want int
	}{
		{"int32", int32(42), 42},
		{"int64 past int32 range", int64(3_000_000_000), 3_000_000_000},
		{"double", float64(17), 17},
		{"nil", nil, 0},
		{"unexpected type", "12", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sumAsInt(tt.in); got != tt.want {
				t.Errorf("sumAsInt(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
