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

package controllers

import (
	"net/http"

	"github.com/notepool/notepool/pkg/server/app"
	"github.com/notepool/notepool/pkg/server/presenters"
)

// NewCourses creates a new Courses controller
func NewCourses(app *app.App) *Courses {
	return &Courses{
		app: app,
	}
}

// Courses is a course controller
type Courses struct {
	app *app.App
}

// Index handles GET /v1/courses
func (c *Courses) Index(w http.ResponseWriter, r *http.Request) {
	courses, err := c.app.GetCourses()
	if err != nil {
		handleJSONError(w, err, "getting courses")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentCourses(courses))
}

// createCoursePayload is the payload for Create
type createCoursePayload struct {
	Code   string `json:"code"`
	School string `json:"school"`
	Title  string `json:"title"`
}

// Create handles POST /v1/courses
func (c *Courses) Create(w http.ResponseWriter, r *http.Request) {
	var payload createCoursePayload
	if err := parsePayload(r, &payload); err != nil {
		invalidParam(w, "payload")
		return
	}

	course, err := c.app.CreateCourse(payload.Code, payload.Title, payload.School)
	if err != nil {
		handleJSONError(w, err, "creating course")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentCourse(course))
}
