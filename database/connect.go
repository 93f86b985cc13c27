package database

import (
	"database/sql"
	"fmt"

	"github.com/jinzhu/gorm"
)

const localhost = "localhost"

// Connect opens a connection pool for config.Dialect and wraps it in gorm.
// logger receives SQL statements when config.Debug is set.
func Connect(config Config, logger gorm.LogWriter) (*gorm.DB, error) {
	d, err := lookupDialect(config.Dialect)
	if err != nil {
		return nil, err
	}
	connStr, err := d.connStr(config)
	if err != nil {
		return nil, fmt.Errorf("build %s connection string: %w", d.gorm, err)
	}

	sqlDB, err := sql.Open(d.driver, connStr)
	if err != nil {
		return nil, err
	}
	if d.gorm == SQLite {
		// One writer at a time; concurrent connections to the same file
		// would fail with SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
	} else if config.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(config.MaxOpenConns)
	}

	db, err := gorm.Open(d.gorm, sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	db.BlockGlobalUpdate(true)
	if config.Debug {
		db.LogMode(true)
		if logger != nil {
			db.SetLogger(gorm.Logger{LogWriter: logger})
		}
	}
	return db, nil
}
