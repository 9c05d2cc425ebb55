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
	"testing"

	"github.com/notepool/notepool/pkg/assert"
	"github.com/notepool/notepool/pkg/server/database"
	"github.com/notepool/notepool/pkg/server/testutils"
)

func TestDebitPoints(t *testing.T) {
	testCases := []struct {
		name           string
		balance        int
		amount         int
		expectedErr    error
		expectedPoints int
	}{
		{
			name:           "sufficient balance",
			balance:        500,
			amount:         100,
			expectedErr:    nil,
			expectedPoints: 400,
		},
		{
			name:           "exact balance",
			balance:        100,
			amount:         100,
			expectedErr:    nil,
			expectedPoints: 0,
		},
		{
			name:           "insufficient balance",
			balance:        50,
			amount:         100,
			expectedErr:    ErrInsufficientFunds,
			expectedPoints: 50,
		},
		{
			name:           "zero amount",
			balance:        500,
			amount:         0,
			expectedErr:    ErrInvalidAmount,
			expectedPoints: 500,
		},
		{
			name:           "negative amount",
			balance:        500,
			amount:         -10,
			expectedErr:    ErrInvalidAmount,
			expectedPoints: 500,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutils.InitMemoryDB(t)
			a := NewTest()
			a.DB = db

			user := testutils.SetupUserData(db, "alice@example.com")
			testutils.MustExec(t, db.Model(&user).Update("points", tc.balance), "setting balance")

			err := a.DebitPoints(db, user.ID, tc.amount)
			assert.ErrorIs(t, err, tc.expectedErr, "error mismatch")

			var record database.User
			testutils.MustExec(t, db.Where("id = ?", user.ID).First(&record), "finding user")
			assert.Equal(t, record.Points, tc.expectedPoints, "points mismatch")
		})
	}
}

func TestDebitPoints_userNotFound(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	err := a.DebitPoints(db, 999, 100)
	assert.ErrorIs(t, err, ErrNotFound, "error mismatch")
}

func TestCreditPoints(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	user := testutils.SetupUserData(db, "alice@example.com")
	testutils.MustExec(t, db.Model(&user).Update("points", 100), "setting balance")

	err := a.CreditPoints(db, user.ID, 50)
	assert.Equal(t, err, nil, "crediting points")

	var record database.User
	testutils.MustExec(t, db.Where("id = ?", user.ID).First(&record), "finding user")
	assert.Equal(t, record.Points, 150, "points mismatch")
}

func TestCreditPoints_userNotFound(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	err := a.CreditPoints(db, 999, 50)
	assert.ErrorIs(t, err, ErrNotFound, "error mismatch")
}

func TestCreditPoints_invalidAmount(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	user := testutils.SetupUserData(db, "alice@example.com")

	err := a.CreditPoints(db, user.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount, "error mismatch")
}
