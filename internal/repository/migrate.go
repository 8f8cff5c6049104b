package repository

import (
	"log"

	"backline/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate brings the schema up to date. On PostgreSQL it also
// installs the idx_no_overbooking exclusion constraint, the final
// arbiter against two active bookings sharing a room and an
// overlapping minute range on the same date.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Room{},
		&bookingModel{},
		&domain.Product{},
		&domain.RentalItem{},
		&domain.RentalAgreement{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "postgres" {
		if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
			return err
		}
		err := db.Exec(`
ALTER TABLE bookings ADD CONSTRAINT idx_no_overbooking
EXCLUDE USING gist (
	room_id WITH =,
	date WITH =,
	int4range(start_min, end_min) WITH &&
) WHERE (room_id IS NOT NULL AND status IN ('pending', 'confirmed'))
`).Error
		if err != nil {
			// Re-running migrations against an existing schema.
			log.Printf("idx_no_overbooking not created (likely exists): %v", err)
		}
	}
	return nil
}
