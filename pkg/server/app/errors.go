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
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is an error for an entity that does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidAmount is an error for a ledger operation with a non-positive amount
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInsufficientFunds is an error for a debit exceeding the balance
	ErrInsufficientFunds = errors.New("insufficient points balance")
	// ErrAlreadyOwned is an error for purchasing a note the user already owns
	ErrAlreadyOwned = errors.New("note is already owned")
	// ErrForbidden is an error for accessing a note without ownership
	ErrForbidden = errors.New("access to the note is denied")
	// ErrInvalidCourse is an error for referencing a course that does not exist
	ErrInvalidCourse = errors.New("course does not exist")
	// ErrDuplicateCourse is an error for creating a course that already exists
	ErrDuplicateCourse = errors.New("course already exists")
	// ErrCourseFieldsMissing is an error for creating a course without required fields
	ErrCourseFieldsMissing = errors.New("code, title and school are required")
	// ErrUnsupportedFileType is an error for uploading a file that is not a PDF
	ErrUnsupportedFileType = errors.New("only PDF files are supported")
	// ErrInvalidPrice is an error for a negative note price
	ErrInvalidPrice = errors.New("price must not be negative")
	// ErrEmptyFile is an error for uploading an empty file
	ErrEmptyFile = errors.New("file is empty")
	// ErrStorage is an error for an object storage failure
	ErrStorage = errors.New("object storage failure")
	// ErrInvalidClaims is an error for identity claims without a subject
	ErrInvalidClaims = errors.New("claims are missing a subject")
)

// isUniqueViolation reports whether the given database error is a unique
// constraint violation. The string checks cover drivers that predate gorm's
// error translation.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := err.Error()

	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
