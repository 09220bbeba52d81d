package dbschema

import "time"

// BaseModel carries the common surrogate key and timestamps.
type BaseModel struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
