package tweetbox

import (
	"fmt"
	"reflect"

	"github.com/jinzhu/gorm"

	"github.com/pantonshire/tweetbox/model"
)

// Migrate creates or updates every table and then adds the declared foreign
// keys. SQLite cannot add constraints to an existing table, so foreign keys
// are skipped there.
func Migrate(db *gorm.DB) error {
	models := model.Models()
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(models...).Error; err != nil {
			return err
		}
		if tx.Dialect().GetName() == "sqlite3" {
			return nil
		}
		for _, m := range models {
			if relational, ok := m.(model.Relational); ok {
				for _, key := range relational.ForeignKeys() {
					if err := key.Apply(tx.Model(m)); err != nil {
						return fmt.Errorf("foreign key %s: %w", key, err)
					}
				}
			}
		}
		return nil
	})
}

// ForeignKeyPlan lists the constraints Migrate would add, one line per key,
// prefixed with the model they belong to.
func ForeignKeyPlan() []string {
	var plan []string
	for _, m := range model.Models() {
		relational, ok := m.(model.Relational)
		if !ok {
			continue
		}
		name := reflect.TypeOf(m).Elem().Name()
		for _, key := range relational.ForeignKeys() {
			plan = append(plan, name+": "+key.String())
		}
	}
	return plan
}
