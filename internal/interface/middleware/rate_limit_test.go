package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemainingAfter(t *testing.T) {
	tests := []struct {
		name  string
		max   int
		count int64
		want  int
	}{
		{"first request", 10, 1, 9},
		{"last allowed request", 10, 10, 0},
		{"first rejected request", 10, 11, 0},
		{"well past the limit", 10, 500, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, remainingAfter(tt.max, tt.count))
		})
	}
}
