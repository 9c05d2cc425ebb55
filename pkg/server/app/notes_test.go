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
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/notepool/notepool/pkg/assert"
	"github.com/notepool/notepool/pkg/server/blob"
	"github.com/notepool/notepool/pkg/server/database"
	"github.com/notepool/notepool/pkg/server/testutils"
)

func TestCreateNote(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db
	files := a.Files.(*blob.MemoryStore)

	author := testutils.SetupUserData(db, "author@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")

	note, err := a.CreateNote(context.Background(), author, CreateNoteParams{
		CourseID:    course.ID,
		Title:       "Week 1 summary",
		CourseName:  "Software Construction",
		Semester:    "2024S2",
		Description: "Shell basics",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 fake"),
	})
	assert.Equal(t, err, nil, "creating note")

	assert.Equal(t, note.AuthorID, author.ID, "author mismatch")
	assert.Equal(t, note.CourseID, course.ID, "course mismatch")
	assert.Equal(t, note.Price, database.DefaultNotePrice, "default price mismatch")
	assert.Equal(t, note.ObjectKey.Valid, true, "object key should be set")
	assert.Equal(t, files.Len(), 1, "stored object count mismatch")

	data, err := files.Get(context.Background(), note.ObjectKey.String)
	assert.Equal(t, err, nil, "getting stored object")
	assert.DeepEqual(t, data, []byte("%PDF-1.4 fake"), "stored data mismatch")
}

func TestCreateNote_customPrice(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")

	price := 250
	note, err := a.CreateNote(context.Background(), author, CreateNoteParams{
		CourseID:    course.ID,
		Title:       "Week 1 summary",
		Price:       &price,
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 fake"),
	})
	assert.Equal(t, err, nil, "creating note")
	assert.Equal(t, note.Price, 250, "price mismatch")
}

func TestCreateNote_validation(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")

	negativePrice := -1

	testCases := []struct {
		name        string
		params      CreateNoteParams
		expectedErr error
	}{
		{
			name: "non-pdf upload",
			params: CreateNoteParams{
				CourseID:    course.ID,
				Title:       "Week 1 summary",
				ContentType: "image/png",
				Data:        []byte("not a pdf"),
			},
			expectedErr: ErrUnsupportedFileType,
		},
		{
			name: "empty file",
			params: CreateNoteParams{
				CourseID:    course.ID,
				Title:       "Week 1 summary",
				ContentType: "application/pdf",
				Data:        []byte{},
			},
			expectedErr: ErrEmptyFile,
		},
		{
			name: "unknown course",
			params: CreateNoteParams{
				CourseID:    999,
				Title:       "Week 1 summary",
				ContentType: "application/pdf",
				Data:        []byte("%PDF-1.4 fake"),
			},
			expectedErr: ErrInvalidCourse,
		},
		{
			name: "negative price",
			params: CreateNoteParams{
				CourseID:    course.ID,
				Title:       "Week 1 summary",
				Price:       &negativePrice,
				ContentType: "application/pdf",
				Data:        []byte("%PDF-1.4 fake"),
			},
			expectedErr: ErrInvalidPrice,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := a.CreateNote(context.Background(), author, tc.params)
			assert.ErrorIs(t, err, tc.expectedErr, "error mismatch")
		})
	}

	var count int64
	testutils.MustExec(t, db.Model(&database.Note{}).Count(&count), "counting notes")
	assert.Equal(t, count, int64(0), "no note should be created")
}

func TestCreateNote_storageFailure(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db
	files := a.Files.(*blob.MemoryStore)
	files.FailPut = errors.New("disk full")

	author := testutils.SetupUserData(db, "author@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")

	_, err := a.CreateNote(context.Background(), author, CreateNoteParams{
		CourseID:    course.ID,
		Title:       "Week 1 summary",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 fake"),
	})
	assert.ErrorIs(t, err, ErrStorage, "error mismatch")

	var count int64
	testutils.MustExec(t, db.Model(&database.Note{}).Count(&count), "counting notes")
	assert.Equal(t, count, int64(0), "no note should be created")
}

func TestCreateNote_insertFailureCleansUp(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db
	files := a.Files.(*blob.MemoryStore)

	author := testutils.SetupUserData(db, "author@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")

	// Force the catalog insert to fail after the blob write succeeded
	testutils.MustExec(t, db.Exec("DROP TABLE notes"), "dropping notes table")

	_, err := a.CreateNote(context.Background(), author, CreateNoteParams{
		CourseID:    course.ID,
		Title:       "Week 1 summary",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4 fake"),
	})
	assert.NotEqual(t, err, nil, "creating note should fail")

	// The orphaned blob must have been deleted
	assert.Equal(t, files.Len(), 0, "stored object count mismatch")
}

func TestDownloadNote(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	buyer := testutils.SetupUserData(db, "buyer@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	note := testutils.SetupNoteData(db, author, course, "Week 1 summary", 100)

	err := a.Files.Put(context.Background(), note.ObjectKey.String, []byte("%PDF-1.4 fake"), "application/pdf")
	assert.Equal(t, err, nil, "storing object")

	_, err = a.PurchaseNote(buyer, note.ID)
	assert.Equal(t, err, nil, "purchasing note")

	download, err := a.DownloadNote(context.Background(), buyer, note.ID)
	assert.Equal(t, err, nil, "downloading note")

	assert.DeepEqual(t, download.Data, []byte("%PDF-1.4 fake"), "data mismatch")
	assert.Equal(t, download.Filename, "Week 1 summary.pdf", "filename mismatch")
	assert.Equal(t, download.ContentType, "application/pdf", "content type mismatch")

	var record database.Note
	testutils.MustExec(t, db.Where("id = ?", note.ID).First(&record), "finding note")
	assert.Equal(t, record.Downloads, 1, "download count mismatch")

	_, err = a.DownloadNote(context.Background(), buyer, note.ID)
	assert.Equal(t, err, nil, "downloading note again")

	testutils.MustExec(t, db.Where("id = ?", note.ID).First(&record), "finding note again")
	assert.Equal(t, record.Downloads, 2, "second download count mismatch")
}

func TestDownloadNote_forbidden(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	stranger := testutils.SetupUserData(db, "stranger@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	note := testutils.SetupNoteData(db, author, course, "Week 1 summary", 100)

	_, err := a.DownloadNote(context.Background(), stranger, note.ID)
	assert.ErrorIs(t, err, ErrForbidden, "error mismatch")

	var record database.Note
	testutils.MustExec(t, db.Where("id = ?", note.ID).First(&record), "finding note")
	assert.Equal(t, record.Downloads, 0, "download count mismatch")
}

func TestDownloadNote_freeNote(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	stranger := testutils.SetupUserData(db, "stranger@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	note := testutils.SetupNoteData(db, author, course, "Week 1 summary", 0)

	err := a.Files.Put(context.Background(), note.ObjectKey.String, []byte("%PDF-1.4 fake"), "application/pdf")
	assert.Equal(t, err, nil, "storing object")

	download, err := a.DownloadNote(context.Background(), stranger, note.ID)
	assert.Equal(t, err, nil, "downloading free note")
	assert.DeepEqual(t, download.Data, []byte("%PDF-1.4 fake"), "data mismatch")
}

func TestDownloadNote_incompleteUpload(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	note := testutils.SetupNoteData(db, author, course, "Week 1 summary", 100)
	testutils.MustExec(t, db.Model(&database.Note{}).Where("id = ?", note.ID).Update("object_key", nil), "clearing object key")

	_, err := a.DownloadNote(context.Background(), author, note.ID)
	assert.ErrorIs(t, err, ErrNotFound, "error mismatch")
}

func TestDownloadNote_missingObject(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	note := testutils.SetupNoteData(db, author, course, "Week 1 summary", 100)

	_, err := a.DownloadNote(context.Background(), author, note.ID)
	assert.ErrorIs(t, err, ErrStorage, "error mismatch")
}

func TestSearchNotes(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	comp := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	math := testutils.SetupCourseData(db, "MATH1131", "UNSW", "Mathematics 1A")

	testutils.SetupNoteData(db, author, comp, "Shell scripting guide", 100)
	testutils.SetupNoteData(db, author, comp, "Regex cheat sheet", 100)
	note := testutils.SetupNoteData(db, author, math, "Calculus summary", 100)
	testutils.MustExec(t, db.Model(&database.Note{}).Where("id = ?", note.ID).Update("semester", "2024S1"), "setting semester")

	t.Run("by title", func(t *testing.T) {
		result, err := a.SearchNotes(SearchNotesParams{Query: "Shell"})
		assert.Equal(t, err, nil, "searching notes")
		assert.Equal(t, result.Total, int64(1), "total mismatch")
		assert.Equal(t, len(result.Notes), 1, "note count mismatch")
		assert.Equal(t, result.Notes[0].Title, "Shell scripting guide", "title mismatch")
	})

	t.Run("by course", func(t *testing.T) {
		result, err := a.SearchNotes(SearchNotesParams{CourseID: comp.ID})
		assert.Equal(t, err, nil, "searching notes")
		assert.Equal(t, result.Total, int64(2), "total mismatch")
	})

	t.Run("by semester", func(t *testing.T) {
		result, err := a.SearchNotes(SearchNotesParams{Semester: "2024S1"})
		assert.Equal(t, err, nil, "searching notes")
		assert.Equal(t, result.Total, int64(1), "total mismatch")
		assert.Equal(t, result.Notes[0].Title, "Calculus summary", "title mismatch")
	})

	t.Run("no match", func(t *testing.T) {
		result, err := a.SearchNotes(SearchNotesParams{Query: "nonexistent"})
		assert.Equal(t, err, nil, "searching notes")
		assert.Equal(t, result.Total, int64(0), "total mismatch")
		assert.Equal(t, len(result.Notes), 0, "note count mismatch")
	})

	t.Run("pagination", func(t *testing.T) {
		result, err := a.SearchNotes(SearchNotesParams{Page: 1, PerPage: 2})
		assert.Equal(t, err, nil, "searching notes")
		assert.Equal(t, result.Total, int64(3), "total mismatch")
		assert.Equal(t, len(result.Notes), 2, "page size mismatch")

		result, err = a.SearchNotes(SearchNotesParams{Page: 2, PerPage: 2})
		assert.Equal(t, err, nil, "searching notes")
		assert.Equal(t, len(result.Notes), 1, "second page size mismatch")
	})
}

func TestGetUserUploadedNotes(t *testing.T) {
	db := testutils.InitMemoryDB(t)
	a := NewTest()
	a.DB = db

	author := testutils.SetupUserData(db, "author@example.com")
	other := testutils.SetupUserData(db, "other@example.com")
	course := testutils.SetupCourseData(db, "COMP2041", "UNSW", "Software Construction")
	testutils.SetupNoteData(db, author, course, "Week 1 summary", 100)
	testutils.SetupNoteData(db, author, course, "Week 2 summary", 100)
	testutils.SetupNoteData(db, other, course, "Week 3 summary", 100)

	notes, err := a.GetUserUploadedNotes(author.ID)
	assert.Equal(t, err, nil, "getting uploaded notes")
	assert.Equal(t, len(notes), 2, "note count mismatch")
}
