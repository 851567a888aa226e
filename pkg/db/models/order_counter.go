package models

// OrderCounter holds the per-day sequence backing order number generation.
// Day uses the YYYYMMDD form embedded in order numbers. Rows are bumped with
// an atomic upsert, never read-then-written.
type OrderCounter struct {
	Day     string `gorm:"column:day;primaryKey"`
	LastSeq int    `gorm:"column:last_seq;not null;default:0"`
}

// TableName pins the table name so raw upsert SQL and the model agree.
func (OrderCounter) TableName() string {
	return "order_counters"
}
