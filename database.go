package tweetbox

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/pantonshire/tweetbox/database"
	"github.com/pantonshire/tweetbox/logging"
)

// OpenDatabase connects to the configured database, migrating the schema
// first when migrate is set.
func OpenDatabase(config database.Config, log logging.Logger, migrate bool) (*gorm.DB, error) {
	db, err := database.Connect(config, log)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if migrate {
		log.Debugf("migrating %s schema", db.Dialect().GetName())
		if err := Migrate(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}
