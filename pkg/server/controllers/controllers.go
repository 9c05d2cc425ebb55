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

// Package controllers provides the HTTP handlers for the API
package controllers

import (
	"github.com/notepool/notepool/pkg/server/app"
)

// Controllers is a group of controllers
type Controllers struct {
	Notes   *Notes
	Users   *Users
	Courses *Courses
	Health  *Health
}

// New returns a new group of controllers
func New(app *app.App) *Controllers {
	c := Controllers{}

	c.Notes = NewNotes(app)
	c.Users = NewUsers(app)
	c.Courses = NewCourses(app)
	c.Health = NewHealth(app)

	return &c
}
