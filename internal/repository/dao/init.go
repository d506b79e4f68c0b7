package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Host{},
		&Site{},
		&Location{},
		&Tag{},
		&ServiceCategory{},
		&Service{},
		&CustomForm{},
		&MenuCard{},
		&MenuCategory{},
		&MenuItem{},
		&Product{},
		&Order{},
		&OrderItem{},
		&Reservation{},
		&Client{},
		&Payment{},
	)
}
