package orders

import (
	"fmt"
	"time"
)

// dayKey is the counter row key for a calendar day.
func dayKey(t time.Time) string {
	return t.Format("20060102")
}

// formatOrderNumber renders ORD-YYYYMMDD-NNN. The sequence is zero-padded to
// three digits and simply grows wider past 999.
func formatOrderNumber(t time.Time, seq int) string {
	return fmt.Sprintf("ORD-%s-%03d", dayKey(t), seq)
}
