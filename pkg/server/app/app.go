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

// Package app implements the marketplace core: the points ledger, the
// purchase engine, ownership evaluation and upload coordination.
package app

import (
	"sync"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/notepool/notepool/pkg/clock"
	"github.com/notepool/notepool/pkg/server/blob"
)

var (
	// ErrEmptyDB is an error for missing database connection in the app configuration
	ErrEmptyDB = errors.New("No database connection was provided")
	// ErrEmptyClock is an error for missing clock in the app configuration
	ErrEmptyClock = errors.New("No clock was provided")
	// ErrEmptyFiles is an error for missing object storage in the app configuration
	ErrEmptyFiles = errors.New("No object storage was provided")
	// ErrEmptyAuthSecret is an error for missing token secret in the app configuration
	ErrEmptyAuthSecret = errors.New("No auth token secret was provided")
)

// App is an application context
type App struct {
	DB              *gorm.DB
	Clock           clock.Clock
	Files           blob.Store
	AuthTokenSecret string
	AppEnv          string
	Port            string

	viewOnce    sync.Once
	viewTracker *viewThrottle
}

// Validate validates the app configuration
func (a *App) Validate() error {
	if a.DB == nil {
		return ErrEmptyDB
	}
	if a.Clock == nil {
		return ErrEmptyClock
	}
	if a.Files == nil {
		return ErrEmptyFiles
	}
	if a.AuthTokenSecret == "" {
		return ErrEmptyAuthSecret
	}

	return nil
}
