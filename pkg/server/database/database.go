/* Copyright (C) 2024, 2025 Notepool contributors
 *
 * This file is part of Notepool.
 *
 * Notepool is free software: you can redistribute it and/or modify
 * it under the terms of the GNU Affero General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * Notepool is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU Affero General Public License for more details.
 *
 * You should have received a copy of the GNU Affero General Public License
 * along with Notepool.  If not, see <https://www.gnu.org/licenses/>.
 */

// Package database provides the catalog models and the database connection
package database

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitSchema migrates database schema to reflect the latest model definition
func InitSchema(db *gorm.DB) {
	if err := db.AutoMigrate(
		&User{},
		&Course{},
		&Note{},
		&Purchase{},
	); err != nil {
		panic(err)
	}
}

// Open initializes the database connection. A non-empty databaseURL connects
// to Postgres; otherwise a SQLite database is opened at dbPath.
func Open(databaseURL, dbPath string) *gorm.DB {
	var dialector gorm.Dialector

	if databaseURL != "" {
		dialector = postgres.Open(databaseURL)
	} else {
		// Create directory if it doesn't exist
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			panic(errors.Wrapf(err, "creating database directory at %s", dir))
		}

		dialector = sqlite.Open(dbPath)
	}

	// TranslateError surfaces unique constraint violations as
	// gorm.ErrDuplicatedKey across both drivers.
	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		panic(errors.Wrap(err, "opening database connection"))
	}

	return db
}
