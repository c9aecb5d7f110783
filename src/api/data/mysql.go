package data

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/commune-labs/community-gov/src/logging"
)

func MustMySQL(dsn string) *gorm.DB {
	// TranslateError turns driver duplicate-key errors into
	// gorm.ErrDuplicatedKey, which the store maps to the core sentinels.
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logging.Fatalf("mysql: %v", err)
	}
	return db
}
