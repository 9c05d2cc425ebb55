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

package presenters

import (
	"github.com/notepool/notepool/pkg/server/database"
)

// Course is a result of PresentCourse
type Course struct {
	ID     int    `json:"id"`
	Code   string `json:"code"`
	School string `json:"school"`
	Title  string `json:"title"`
}

// PresentCourse presents course
func PresentCourse(course database.Course) Course {
	return Course{
		ID:     course.ID,
		Code:   course.Code,
		School: course.School,
		Title:  course.Title,
	}
}

// PresentCourses presents courses
func PresentCourses(courses []database.Course) []Course {
	ret := []Course{}

	for _, course := range courses {
		ret = append(ret, PresentCourse(course))
	}

	return ret
}
