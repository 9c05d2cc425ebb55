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

package app

import (
	"github.com/notepool/notepool/pkg/clock"
	"github.com/notepool/notepool/pkg/server/blob"
)

// NewTest returns an app for a testing environment
func NewTest() App {
	return App{
		Clock:           clock.NewMock(),
		Files:           blob.NewMemoryStore(),
		AuthTokenSecret: "test-token-secret",
		AppEnv:          "TEST",
		Port:            "3001",
	}
}
