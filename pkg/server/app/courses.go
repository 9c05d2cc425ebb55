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
	pkgErrors "github.com/pkg/errors"

	"github.com/notepool/notepool/pkg/server/database"
)

// CreateCourse creates a course. Courses are immutable once created; the
// (code, school) pair is unique.
func (a *App) CreateCourse(code, title, school string) (database.Course, error) {
	var course database.Course

	if code == "" || title == "" || school == "" {
		return course, ErrCourseFieldsMissing
	}

	course = database.Course{
		Code:   code,
		Title:  title,
		School: school,
	}
	if err := a.DB.Create(&course).Error; err != nil {
		if isUniqueViolation(err) {
			return database.Course{}, ErrDuplicateCourse
		}

		return database.Course{}, pkgErrors.Wrap(err, "inserting course")
	}

	return course, nil
}

// GetCourses returns all courses ordered by code
func (a *App) GetCourses() ([]database.Course, error) {
	courses := []database.Course{}

	if err := a.DB.Order("code ASC, school ASC").Find(&courses).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "finding courses")
	}

	return courses, nil
}
