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
	"errors"

	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/notepool/notepool/pkg/server/database"
)

// IsAuthor checks whether the user is the author of the note
func (a *App) IsAuthor(user database.User, note database.Note) bool {
	return note.AuthorID == user.ID
}

// HasAccess checks whether the user may read the note's content. Access is
// granted by authorship, by a purchase record, or by the note being free.
func (a *App) HasAccess(user database.User, note database.Note) (bool, error) {
	if note.IsFree || a.IsAuthor(user, note) {
		return true, nil
	}

	return a.HasPurchased(user.ID, note.ID)
}

// Ownership describes a user's standing toward a note
type Ownership struct {
	Owned       bool `json:"owned"`
	IsAuthor    bool `json:"is_author"`
	CanDownload bool `json:"can_download"`
}

// CheckOwnership evaluates the user's standing toward the given note.
// Owned reflects authorship or a purchase; CanDownload additionally covers
// free notes.
func (a *App) CheckOwnership(user database.User, noteID int) (Ownership, error) {
	var note database.Note
	err := a.DB.Where("id = ?", noteID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Ownership{}, ErrNotFound
	} else if err != nil {
		return Ownership{}, pkgErrors.Wrap(err, "finding note")
	}

	isAuthor := a.IsAuthor(user, note)

	purchased, err := a.HasPurchased(user.ID, note.ID)
	if err != nil {
		return Ownership{}, err
	}

	return Ownership{
		Owned:       isAuthor || purchased,
		IsAuthor:    isAuthor,
		CanDownload: isAuthor || purchased || note.IsFree,
	}, nil
}
