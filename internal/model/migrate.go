package model

import "gorm.io/gorm"

// AutoMigrate runs GORM auto-migration for all models and creates custom indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Counter{}); err != nil {
		return err
	}

	// Non-unique lookup index on name. Redundant with the uniqueness
	// constraint but kept to mirror the documented table layout.
	return db.Exec(
		"CREATE INDEX IF NOT EXISTS idx_counters_name ON counters (name)",
	).Error
}
