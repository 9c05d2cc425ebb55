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

package database

import (
	"time"
)

const (
	// DefaultPoints is the points balance granted to a newly created user
	DefaultPoints = 10000
	// DefaultNotePrice is the price of a note in points unless specified otherwise
	DefaultNotePrice = 100
	// RoleStudent is the default role for a new user
	RoleStudent = "student"
)

// Model is the base model definition
type Model struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// User is a model for a user. A user is created on the first successful
// identity verification and is never hard-deleted.
type User struct {
	Model
	Sub             NullString `json:"sub" gorm:"uniqueIndex"`
	Email           string     `json:"email" gorm:"uniqueIndex"`
	Name            NullString `json:"name"`
	DisplayName     NullString `json:"display_name"`
	Bio             NullString `json:"bio"`
	Role            string     `json:"role" gorm:"default:student"`
	IsAdmin         bool       `json:"-" gorm:"default:false"`
	Points          int        `json:"points" gorm:"default:10000"`
	IsProfilePublic bool       `json:"is_profile_public" gorm:"default:true"`
	ShowEmail       bool       `json:"show_email" gorm:"default:false"`
}

// Course is a model for a course. Courses are created by admins and are
// immutable once created.
type Course struct {
	Model
	Code   string `json:"code" gorm:"uniqueIndex:idx_courses_code_school"`
	School string `json:"school" gorm:"uniqueIndex:idx_courses_code_school"`
	Title  string `json:"title"`
}

// Note is a model for a note, the sellable unit of the catalog. A note whose
// ObjectKey is null is an incomplete upload and must not be downloadable.
type Note struct {
	Model
	AuthorID    int        `json:"author_id" gorm:"index"`
	Author      User       `json:"author" gorm:"foreignKey:AuthorID"`
	CourseID    int        `json:"course_id" gorm:"index"`
	Course      Course     `json:"course" gorm:"foreignKey:CourseID"`
	Title       string     `json:"title"`
	CourseName  string     `json:"course_name" gorm:"index"`
	Semester    string     `json:"semester" gorm:"index"`
	Description NullString `json:"description"`
	ObjectKey   NullString `json:"-"`
	FileType    string     `json:"file_type"`
	Price       int        `json:"price" gorm:"default:100"`
	IsFree      bool       `json:"is_free" gorm:"default:false"`
	Downloads   int        `json:"downloads" gorm:"default:0"`
	Views       int        `json:"views" gorm:"default:0"`
}

// Purchase is a model for a purchase, the record granting a user permanent
// access to a note. The composite unique index on (user_id, note_id) is the
// authoritative defense against duplicate purchases under concurrent requests.
type Purchase struct {
	Model
	UserID      int       `json:"user_id" gorm:"index;uniqueIndex:idx_purchases_user_note"`
	NoteID      int       `json:"note_id" gorm:"index;uniqueIndex:idx_purchases_user_note"`
	PricePaid   int       `json:"price_paid"`
	PurchasedAt time.Time `json:"purchased_at"`
}
