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

func getPoints(t *testing.T, a *App, userID int) int {
	var user database.User
	testutils.MustExec(t, a.DB.Where("id = ?", userID).First(&user), "finding user")

	return user.Points
}

func countPurchases(t *testing.T, a *App) int64 {
	var count int64
	testutils.MustExec(t, a.DB.Model(&database.Purchase{}).Count(&count), "counting purchases")

	return count
}

func TestPurchaseNote(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	buyer := testutils.SetupUserData(db, "buyer@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	note := testutils.SetupNoteData(db, author, course, "Week 1 summary", 100)

	purchase, err := a.PurchaseNote(buyer, note.ID)
	assert.Equal(t, err, nil, "purchasing note")

	assert.Equal(t, purchase.UserID, buyer.ID, "purchase user mismatch")
	assert.Equal(t, purchase.NoteID, note.ID, "purchase note mismatch")
	assert.Equal(t, purchase.PricePaid, 100, "price paid mismatch")
	assert.Equal(t, purchase.PurchasedAt, a.Clock.Now(), "purchase time mismatch")

	// The buyer pays the full price and the author keeps half
	assert.Equal(t, getPoints(t, &a, buyer.ID), database.DefaultPoints-100, "buyer balance mismatch")
	assert.Equal(t, getPoints(t, &a, author.ID), database.DefaultPoints+50, "author balance mismatch")
	assert.Equal(t, countPurchases(t, &a), int64(1), "purchase count mismatch")
}

func TestPurchaseNote_oddPrice(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	buyer := testutils.SetupUserData(db, "buyer@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	note := testutils.SetupNoteData(db, author, course, "Week 1 summary", 75)

	_, err := a.PurchaseNote(buyer, note.ID)
	assert.Equal(t, err, nil, "purchasing note")

	// The author share rounds down
	assert.Equal(t, getPoints(t, &a, buyer.ID), database.DefaultPoints-75, "buyer balance mismatch")
	assert.Equal(t, getPoints(t, &a, author.ID), database.DefaultPoints+37, "author balance mismatch")
}

func TestPurchaseNote_free(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	buyer := testutils.SetupUserData(db, "buyer@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	note := testutils.SetupNoteData(db, author, course, "Week 1 summary", 0)

	purchase, err := a.PurchaseNote(buyer, note.ID)
	assert.Equal(t, err, nil, "purchasing note")

	assert.Equal(t, purchase.PricePaid, 0, "price paid mismatch")
	assert.Equal(t, getPoints(t, &a, buyer.ID), database.DefaultPoints, "buyer balance mismatch")
	assert.Equal(t, getPoints(t, &a, author.ID), database.DefaultPoints, "author balance mismatch")
	assert.Equal(t, countPurchases(t, &a), int64(1), "purchase count mismatch")
}

func TestPurchaseNote_alreadyOwned(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	buyer := testutils.SetupUserData(db, "buyer@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	note := testutils.SetupNoteData(db, author, course, "Week 1 summary", 100)

	_, err := a.PurchaseNote(buyer, note.ID)
	assert.Equal(t, err, nil, "purchasing note")

	_, err = a.PurchaseNote(buyer, note.ID)
	assert.ErrorIs(t, err, ErrAlreadyOwned, "error mismatch")

	// The second attempt must not move any points
	assert.Equal(t, getPoints(t, &a, buyer.ID), database.DefaultPoints-100, "buyer balance mismatch")
	assert.Equal(t, getPoints(t, &a, author.ID), database.DefaultPoints+50, "author balance mismatch")
	assert.Equal(t, countPurchases(t, &a), int64(1), "purchase count mismatch")
}

func TestPurchaseNote_ownNote(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	note := testutils.SetupNoteData(db, author, course, "Week 1 summary", 100)

	_, err := a.PurchaseNote(author, note.ID)
	assert.ErrorIs(t, err, ErrAlreadyOwned, "error mismatch")

	assert.Equal(t, getPoints(t, &a, author.ID), database.DefaultPoints, "author balance mismatch")
	assert.Equal(t, countPurchases(t, &a), int64(0), "purchase count mismatch")
}

func TestPurchaseNote_insufficientFunds(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	buyer := testutils.SetupUserData(db, "buyer@example.com")
	testutils.MustExec(t, db.Model(&buyer).Update("points", 40), "setting balance")

	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	note := testutils.SetupNoteData(db, author, course, "Week 1 summary", 100)

	_, err := a.PurchaseNote(buyer, note.ID)
	assert.ErrorIs(t, err, ErrInsufficientFunds, "error mismatch")

	// A failed purchase must leave every balance untouched
	assert.Equal(t, getPoints(t, &a, buyer.ID), 40, "buyer balance mismatch")
	assert.Equal(t, getPoints(t, &a, author.ID), database.DefaultPoints, "author balance mismatch")
	assert.Equal(t, countPurchases(t, &a), int64(0), "purchase count mismatch")
}

func TestPurchaseNote_notFound(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	buyer := testutils.SetupUserData(db, "buyer@example.com")

	_, err := a.PurchaseNote(buyer, 999)
	assert.ErrorIs(t, err, ErrNotFound, "error mismatch")
}

func TestHasPurchased(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	buyer := testutils.SetupUserData(db, "buyer@example.com")
	other := testutils.SetupUserData(db, "other@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	note := testutils.SetupNoteData(db, author, course, "Week 1 summary", 100)

	_, err := a.PurchaseNote(buyer, note.ID)
	assert.Equal(t, err, nil, "purchasing note")

	got, err := a.HasPurchased(buyer.ID, note.ID)
	assert.Equal(t, err, nil, "checking buyer")
	assert.Equal(t, got, true, "buyer should have purchased")

	got, err = a.HasPurchased(other.ID, note.ID)
	assert.Equal(t, err, nil, "checking other")
	assert.Equal(t, got, false, "other should not have purchased")
}

func TestGetUserPurchasedNotes(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	buyer := testutils.SetupUserData(db, "buyer@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	note1 := testutils.SetupNoteData(db, author, course, "Week 1 summary", 100)
	note2 := testutils.SetupNoteData(db, author, course, "Week 2 summary", 100)
	testutils.SetupNoteData(db, author, course, "Week 3 summary", 100)

	_, err := a.PurchaseNote(buyer, note1.ID)
	assert.Equal(t, err, nil, "purchasing note1")
	_, err = a.PurchaseNote(buyer, note2.ID)
	assert.Equal(t, err, nil, "purchasing note2")

	notes, err := a.GetUserPurchasedNotes(buyer.ID)
	assert.Equal(t, err, nil, "getting purchased notes")
	assert.Equal(t, len(notes), 2, "note count mismatch")
}
