package database

import (
	"context"
	_ "embed"
	"fmt"
	stdlog "log"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

//go:embed schema.sql
var schemaSQL string

// Options configures the datastore handle.
type Options struct {
	DSN          string
	ReplicaDSN   string
	MaxOpenConns int
	MaxIdleConns int
	Logger       zerolog.Logger
}

// Database is the process-wide datastore handle. It is created once at
// startup, shared by every repository, and closed at shutdown.
type Database struct {
	db           *gorm.DB
	userRepo     *UserRepo
	projectRepo  *ProjectRepo
	skillRepo    *SkillRepo
	categoryRepo *CategoryRepo
	contactRepo  *ContactRepo
}

// Open connects to PostgreSQL and verifies the connection.
func Open(ctx context.Context, opts Options) (*Database, error) {
	gormLogger := logger.New(
		stdlog.New(opts.Logger, "", 0),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  opts.DSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if opts.ReplicaDSN != "" {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.New(postgres.Config{
				DSN:                  opts.ReplicaDSN,
				PreferSimpleProtocol: true,
			})},
			Policy: dbresolver.RandomPolicy{},
		})
		if opts.MaxOpenConns > 0 {
			resolver = resolver.SetMaxOpenConns(opts.MaxOpenConns)
		}
		if opts.MaxIdleConns > 0 {
			resolver = resolver.SetMaxIdleConns(opts.MaxIdleConns)
		}
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql handle: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}

	// Test database connection
	var result int
	if err := db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("test database connection: %w", err)
	}

	return New(db), nil
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) *Database {
	return &Database{
		db:           db,
		userRepo:     NewUserRepo(db),
		projectRepo:  NewProjectRepo(db),
		skillRepo:    NewSkillRepo(db),
		categoryRepo: NewCategoryRepo(db),
		contactRepo:  NewContactRepo(db),
	}
}

// Accessor methods for each repository

func (d *Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d *Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d *Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d *Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d *Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}

// Migrate applies the embedded schema. Every statement is idempotent and
// the script runs as one simple-protocol batch, so it applies atomically.
func (d *Database) Migrate(ctx context.Context) error {
	if err := d.db.WithContext(ctx).Exec(schemaSQL).Error; err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Ping checks that the primary is reachable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases every pooled connection.
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
