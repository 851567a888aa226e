package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatOrderNumber(t *testing.T) {
	day := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, "ORD-20260115-001", formatOrderNumber(day, 1))
	assert.Equal(t, "ORD-20260115-042", formatOrderNumber(day, 42))
	assert.Equal(t, "ORD-20260115-999", formatOrderNumber(day, 999))
	// The counter keeps going past three digits.
	assert.Equal(t, "ORD-20260115-1000", formatOrderNumber(day, 1000))
}
