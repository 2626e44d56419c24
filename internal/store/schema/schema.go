// Package schema owns the embedded DDL for the four portfolio tables.
package schema

import (
	"context"
	"database/sql"
	_ "embed"
)

//go:embed schema.sql
var upSQL string

// Tables in drop order.
var Tables = []string{"contacts", "contents", "books", "admins"}

func UpSQL() string { return upSQL }

// Up applies the schema. Every statement is idempotent.
func Up(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, upSQL)
	return err
}

// Down drops every table. Data is lost.
func Down(ctx context.Context, db *sql.DB) error {
	for _, t := range Tables {
		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS `+t); err != nil {
			return err
		}
	}
	return nil
}
