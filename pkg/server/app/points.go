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

// DebitPoints subtracts amount from the user's points balance within the
// given transaction. The balance never goes below zero: a debit that would
// is rejected with ErrInsufficientFunds and leaves the balance untouched.
func (a *App) DebitPoints(tx *gorm.DB, userID, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	var user database.User
	err := tx.Select("id").Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	} else if err != nil {
		return pkgErrors.Wrap(err, "finding user")
	}

	// The balance guard is part of the UPDATE itself so that concurrent
	// debits of the same user cannot interleave into a negative balance.
	res := tx.Model(&database.User{}).
		Where("id = ? AND points >= ?", userID, amount).
		Update("points", gorm.Expr("points - ?", amount))
	if res.Error != nil {
		return pkgErrors.Wrap(res.Error, "debiting points")
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientFunds
	}

	return nil
}

// CreditPoints adds amount to the user's points balance within the given
// transaction
func (a *App) CreditPoints(tx *gorm.DB, userID, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	res := tx.Model(&database.User{}).
		Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", amount))
	if res.Error != nil {
		return pkgErrors.Wrap(res.Error, "crediting points")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
