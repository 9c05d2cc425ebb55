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

// authorShare returns the portion of the price credited to the note's
// author: 50%, rounded down.
func authorShare(price int) int {
	return price / 2
}

// PurchaseNote purchases the given note for the given user. It debits the
// buyer, credits the author a revenue share and records the purchase in one
// all-or-nothing transaction.
//
// An author buying their own note short-circuits to ErrAlreadyOwned before
// anything is charged; authorship already grants access. The composite
// unique index on purchases is what makes concurrent duplicate purchases
// impossible; the in-transaction existence check only avoids a pointless
// debit/rollback cycle.
func (a *App) PurchaseNote(user database.User, noteID int) (database.Purchase, error) {
	var purchase database.Purchase

	var note database.Note
	err := a.DB.Where("id = ?", noteID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return purchase, ErrNotFound
	} else if err != nil {
		return purchase, pkgErrors.Wrap(err, "finding note")
	}

	if note.AuthorID == user.ID {
		return purchase, ErrAlreadyOwned
	}

	price := note.Price
	if note.IsFree {
		price = 0
	}

	tx := a.DB.Begin()

	var count int64
	if err := tx.Model(&database.Purchase{}).
		Where("user_id = ? AND note_id = ?", user.ID, note.ID).
		Count(&count).Error; err != nil {
		tx.Rollback()
		return purchase, pkgErrors.Wrap(err, "checking for existing purchase")
	}
	if count > 0 {
		tx.Rollback()
		return purchase, ErrAlreadyOwned
	}

	if price > 0 {
		if err := a.DebitPoints(tx, user.ID, price); err != nil {
			tx.Rollback()
			return purchase, err
		}

		if share := authorShare(price); share > 0 {
			if err := a.CreditPoints(tx, note.AuthorID, share); err != nil {
				tx.Rollback()
				return purchase, pkgErrors.Wrap(err, "crediting author")
			}
		}
	}

	purchase = database.Purchase{
		UserID:      user.ID,
		NoteID:      note.ID,
		PricePaid:   price,
		PurchasedAt: a.Clock.Now(),
	}
	if err := tx.Create(&purchase).Error; err != nil {
		tx.Rollback()

		if isUniqueViolation(err) {
			return database.Purchase{}, ErrAlreadyOwned
		}

		return database.Purchase{}, pkgErrors.Wrap(err, "inserting purchase")
	}

	if err := tx.Commit().Error; err != nil {
		return database.Purchase{}, pkgErrors.Wrap(err, "committing purchase")
	}

	return purchase, nil
}

// HasPurchased checks whether the user holds a purchase record for the note
func (a *App) HasPurchased(userID, noteID int) (bool, error) {
	var count int64
	if err := a.DB.Model(&database.Purchase{}).
		Where("user_id = ? AND note_id = ?", userID, noteID).
		Count(&count).Error; err != nil {
		return false, pkgErrors.Wrap(err, "counting purchases")
	}

	return count > 0, nil
}

// GetUserPurchasedNotes returns the notes the user has purchased, most
// recent purchase first
func (a *App) GetUserPurchasedNotes(userID int) ([]database.Note, error) {
	notes := []database.Note{}

	conn := database.PreloadNote(a.DB).
		Joins("INNER JOIN purchases ON purchases.note_id = notes.id").
		Where("purchases.user_id = ?", userID).
		Order("purchases.created_at DESC")
	if err := conn.Find(&notes).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "finding purchased notes")
	}

	return notes, nil
}
