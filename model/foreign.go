package model

import (
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"
)

type ForeignKeyConstraint string

const (
	Restrict ForeignKeyConstraint = "restrict"
	Cascade  ForeignKeyConstraint = "cascade"
	SetNull  ForeignKeyConstraint = "set null"
)

type ForeignKey struct {
	column  string
	foreign string
	delete  ForeignKeyConstraint
	update  ForeignKeyConstraint
}

func (fk ForeignKey) Apply(db *gorm.DB) error {
	return db.AddForeignKey(fk.column, fk.references(), string(fk.delete), string(fk.update)).Error
}

// String renders the constraint the way it is printed by a dry-run migration.
func (fk ForeignKey) String() string {
	return fmt.Sprintf("%s REFERENCES %s ON DELETE %s ON UPDATE %s", fk.column, fk.references(), fk.delete, fk.update)
}

func (fk ForeignKey) references() string {
	if fk.foreign != "" {
		return fk.foreign
	}
	return fk.defaultForeign()
}

// Columns follow the <table>_id convention, so tweet_id references
// tweets(tweet_id).
func (fk ForeignKey) defaultForeign() string {
	splitIndex := strings.LastIndex(fk.column, "_")
	if splitIndex >= 0 {
		prefix := fk.column[:splitIndex]
		return fmt.Sprintf("%ss(%s)", prefix, fk.column)
	}
	return fk.column + "s(" + fk.column + ")"
}

type Relational interface {
	ForeignKeys() []ForeignKey
}
