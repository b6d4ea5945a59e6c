// Package gormstore implements tablestore.Store on MySQL through GORM.
package gormstore

import (
	"context"
	"fmt"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
	"gorm.io/gorm/clause"  // Upsert clause

	"house_management/internal/domain"
	"house_management/internal/tablestore"
)

var _ tablestore.Store = (*Store)(nil)

// DSN builds the MySQL data source name
func DSN(user, password, host, port, name string) string {
	return user + ":" + password + "@tcp(" + host + ":" + port + ")/" + name + "?parseTime=true&charset=utf8mb4"
}

// Open connects to MySQL
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the six tables
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing columns and indexes
	if err := db.AutoMigrate(domain.AllRows()...); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

// Store keeps each console table as a MySQL table of the same name
type Store struct {
	db *gorm.DB
}

// New wraps an open connection
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// SelectAll loads every row of the table
func (s *Store) SelectAll(ctx context.Context, table string, dest any) error {
	if domain.NewRow(table) == nil {
		return fmt.Errorf("unknown table %q", table)
	}
	if err := s.db.WithContext(ctx).Table(table).Find(dest).Error; err != nil {
		return fmt.Errorf("failed to select %s: %w", table, err)
	}
	return nil
}

// Upsert inserts the row or updates every column on a primary key conflict
func (s *Store) Upsert(ctx context.Context, rec domain.Record) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).
		Create(rec).Error
	if err != nil {
		return fmt.Errorf("failed to upsert %s %s: %w", rec.TableName(), rec.RecordID(), err)
	}
	return nil
}

// Delete removes the row by id
func (s *Store) Delete(ctx context.Context, table, id string) error {
	model := domain.NewRow(table)
	if model == nil {
		return fmt.Errorf("unknown table %q", table)
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(model).Error; err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", table, id, err)
	}
	return nil
}

// Seed writes every row of the snapshot, parents first
func (s *Store) Seed(ctx context.Context, snap domain.Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, rec := range snap.Records() {
			err := tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, UpdateAll: true}).Create(rec).Error
			if err != nil {
				return fmt.Errorf("failed to seed %s %s: %w", rec.TableName(), rec.RecordID(), err)
			}
		}
		return nil
	})
}
