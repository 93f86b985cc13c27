package database

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

const (
	MySQL    = "mysql"
	Postgres = "postgres"
	SQLite   = "sqlite3"
)

// dialect pairs the database/sql driver name with the gorm dialect name
// and a connection string builder.
type dialect struct {
	driver  string
	gorm    string
	connStr func(Config) (string, error)
}

var dialects = map[string]dialect{
	MySQL:    {driver: "mysql", gorm: MySQL, connStr: mysqlConnStr},
	Postgres: {driver: "pgx", gorm: Postgres, connStr: postgresConnStr},
	SQLite:   {driver: "sqlite3", gorm: SQLite, connStr: sqliteConnStr},
	"sqlite": {driver: "sqlite3", gorm: SQLite, connStr: sqliteConnStr},
}

func lookupDialect(name string) (dialect, error) {
	if name == "" {
		name = MySQL
	}
	d, ok := dialects[name]
	if !ok {
		return dialect{}, fmt.Errorf("unsupported database dialect %q", name)
	}
	return d, nil
}

func mysqlConnStr(config Config) (string, error) {
	loc, err := time.LoadLocation(config.timezone())
	if err != nil {
		return "", err
	}

	socket := config.host()
	if config.Port != 0 {
		socket = socket + ":" + strconv.FormatUint(uint64(config.Port), 10)
	}

	mc := mysql.NewConfig()
	mc.User = config.User
	mc.Passwd = config.Password
	mc.Net = "tcp"
	mc.Addr = socket
	mc.DBName = config.Database
	mc.ParseTime = true
	mc.Loc = loc
	mc.Params = map[string]string{"charset": config.charset()}
	return mc.FormatDSN(), nil
}

func postgresConnStr(config Config) (string, error) {
	sslMode := "disable"
	if config.SSL {
		sslMode = "require"
	}

	port := config.Port
	if port == 0 {
		port = 5432
	}

	timezone := config.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	return fmt.Sprintf("user=%s password=%s host=%s port=%d dbname=%s sslmode=%s TimeZone=%s",
		config.User, config.Password, config.host(), port, config.Database, sslMode, timezone), nil
}

// For SQLite the database field is the file path.
func sqliteConnStr(config Config) (string, error) {
	if config.Database == "" {
		return "", fmt.Errorf("sqlite database path is empty")
	}
	return "file:" + config.Database + "?_busy_timeout=5000", nil
}
