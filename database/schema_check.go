package database

import (
	"context"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/devportfolio/portfolio-backend/models"
)

// ColumnMismatch lists the differences between one table and its model.
type ColumnMismatch struct {
	Table string
	// MissingInDatabase are model columns the table does not have.
	MissingInDatabase []string
	// MissingInModel are table columns no model field maps to.
	MissingInModel []string
}

// ColumnReport compares every model with the live table it maps to. An
// empty report means the schema and the models agree.
func (d *Database) ColumnReport(ctx context.Context) ([]ColumnMismatch, error) {
	var report []ColumnMismatch
	for _, model := range []any{
		&models.User{},
		&models.Category{},
		&models.Skill{},
		&models.Project{},
		&models.ProjectSkill{},
		&models.Contact{},
	} {
		stmt := &gorm.Statement{DB: d.db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		dbColumns, err := d.tableColumns(ctx, table)
		if err != nil {
			return nil, err
		}
		if mismatch := diffColumns(table, dbColumns, stmt.Schema.DBNames); mismatch != nil {
			report = append(report, *mismatch)
		}
	}
	return report, nil
}

// tableColumns retrieves column names from a database table
func (d *Database) tableColumns(ctx context.Context, table string) ([]string, error) {
	var columns []string
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_name = ?
		AND table_schema = CURRENT_SCHEMA()
		ORDER BY ordinal_position
	`
	if err := d.db.WithContext(ctx).Raw(query, table).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("error querying columns for table %s: %w", table, err)
	}
	return columns, nil
}

func diffColumns(table string, dbColumns, modelColumns []string) *ColumnMismatch {
	inDB := make(map[string]bool, len(dbColumns))
	for _, col := range dbColumns {
		inDB[col] = true
	}
	inModel := make(map[string]bool, len(modelColumns))
	for _, col := range modelColumns {
		inModel[col] = true
	}

	mismatch := ColumnMismatch{Table: table}
	for col := range inModel {
		if !inDB[col] {
			mismatch.MissingInDatabase = append(mismatch.MissingInDatabase, col)
		}
	}
	for col := range inDB {
		if !inModel[col] {
			mismatch.MissingInModel = append(mismatch.MissingInModel, col)
		}
	}
	if len(mismatch.MissingInDatabase) == 0 && len(mismatch.MissingInModel) == 0 {
		return nil
	}
	sort.Strings(mismatch.MissingInDatabase)
	sort.Strings(mismatch.MissingInModel)
	return &mismatch
}
