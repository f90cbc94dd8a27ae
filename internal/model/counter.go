package model

import (
	"time"

	"github.com/google/uuid"
)

// Counter is the authoritative unit of state: a named integer with
// creation/update timestamps. The count never goes negative and only
// decreases through an explicit reset.
type Counter struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Count     int64     `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Counter) TableName() string { return "counters" }

// MaxNameLength bounds counter names; longer names are rejected before
// they reach the store.
const MaxNameLength = 100
