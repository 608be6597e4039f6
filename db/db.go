package db

import (
	"fmt"

	"commander/model"

	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// Driver names accepted by Open.
const (
	DriverSQLite       = "sqlite"
	DriverSQLitePureGo = "sqlite-purego"
	DriverMySQL        = "mysql"
	DriverMock         = "mock"
)

// Options selects and configures the backing store.
type Options struct {
	Driver string
	DSN    string
	// AutoCreate creates the Commands table when it does not exist yet.
	AutoCreate bool
	// Logger receives gorm's SQL logging; nil silences it.
	Logger logger.Interface
}

// Open returns the store selected by opts.Driver.
func Open(opts Options) (Store, error) {
	if opts.Driver == DriverMock {
		return MockStore{}, nil
	}

	dialector, err := dialectorFor(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}

	gormLogger := opts.Logger
	if gormLogger == nil {
		gormLogger = logger.Discard
	}

	conn, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Driver, err)
	}

	s := &SQLStore{conn: conn}
	if opts.AutoCreate {
		if err := s.ensureSchema(); err != nil {
			s.Close()
			return nil, err
		}
	}
	return s, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	if dsn == "" {
		return nil, fmt.Errorf("driver %q needs a connection string", driver)
	}
	switch driver {
	case DriverSQLite:
		return sqlite.New(sqlite.Config{DriverName: "sqlite3", DSN: dsn}), nil
	case DriverSQLitePureGo:
		return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unknown driver %q", driver)
	}
}

// SQLStore is a gorm-backed Store. The underlying connection pool is shared;
// each Repository call returns a fresh unit of work.
type SQLStore struct {
	conn *gorm.DB
}

func (s *SQLStore) Repository() Repository {
	return &SQLRepo{conn: s.conn}
}

// ensureSchema creates the Commands table when it is missing. An existing
// table is never altered.
func (s *SQLStore) ensureSchema() error {
	m := s.conn.Migrator()
	if m.HasTable(&model.Command{}) {
		return nil
	}
	if err := m.CreateTable(&model.Command{}); err != nil {
		return fmt.Errorf("create commands table: %w", err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
