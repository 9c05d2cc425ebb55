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
	"errors"
	"fmt"
	"strings"

	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/notepool/notepool/pkg/server/database"
	"github.com/notepool/notepool/pkg/server/helpers"
	"github.com/notepool/notepool/pkg/server/log"
)

// pdfContentType is the only content type accepted for uploads
const pdfContentType = "application/pdf"

// CreateNoteParams is the parameters for creating a note
type CreateNoteParams struct {
	CourseID    int
	Title       string
	CourseName  string
	Semester    string
	Description string
	Price       *int
	IsFree      bool
	ContentType string
	Data        []byte
}

// CreateNote stores the uploaded file and registers the note in the catalog.
// The blob is written first; if the catalog insert then fails, the blob is
// deleted so that no unreferenced object stays behind. A failed cleanup is
// logged and the database error still propagates.
func (a *App) CreateNote(ctx context.Context, author database.User, p CreateNoteParams) (database.Note, error) {
	var note database.Note

	if !strings.HasPrefix(p.ContentType, pdfContentType) {
		return note, ErrUnsupportedFileType
	}
	if len(p.Data) == 0 {
		return note, ErrEmptyFile
	}

	var courseCount int64
	if err := a.DB.Model(&database.Course{}).Where("id = ?", p.CourseID).Count(&courseCount).Error; err != nil {
		return note, pkgErrors.Wrap(err, "checking course")
	}
	if courseCount == 0 {
		return note, ErrInvalidCourse
	}

	price := database.DefaultNotePrice
	if p.Price != nil {
		if *p.Price < 0 {
			return note, ErrInvalidPrice
		}

		price = *p.Price
	}

	// The object key is random and independent of the user-supplied
	// filename so that keys cannot collide or traverse paths.
	id, err := helpers.GenUUID()
	if err != nil {
		return note, err
	}
	objectKey := fmt.Sprintf("%s.pdf", id)

	if err := a.Files.Put(ctx, objectKey, p.Data, p.ContentType); err != nil {
		return note, pkgErrors.Wrapf(ErrStorage, "storing upload: %v", err)
	}

	note = database.Note{
		AuthorID:    author.ID,
		CourseID:    p.CourseID,
		Title:       p.Title,
		CourseName:  p.CourseName,
		Semester:    p.Semester,
		Description: database.ToNullString(p.Description),
		ObjectKey:   database.ToNullString(objectKey),
		FileType:    p.ContentType,
		Price:       price,
		IsFree:      p.IsFree,
		Downloads:   0,
		Views:       0,
	}
	if err := a.DB.Create(&note).Error; err != nil {
		if derr := a.Files.Delete(ctx, objectKey); derr != nil {
			log.WithFields(log.Fields{
				"object_key": objectKey,
			}).ErrorWrap(derr, "deleting orphaned upload")
		}

		return database.Note{}, pkgErrors.Wrap(err, "inserting note")
	}

	return note, nil
}

// Download is the result of downloading a note
type Download struct {
	Data        []byte
	Filename    string
	ContentType string
}

// DownloadNote returns the note's file content for the given user and
// counts the download. Storage failures are reported distinctly from access
// denials so clients can tell "you may not have this" from "we lost the
// file".
func (a *App) DownloadNote(ctx context.Context, user database.User, noteID int) (Download, error) {
	var note database.Note
	err := a.DB.Where("id = ?", noteID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Download{}, ErrNotFound
	} else if err != nil {
		return Download{}, pkgErrors.Wrap(err, "finding note")
	}

	ok, err := a.HasAccess(user, note)
	if err != nil {
		return Download{}, err
	}
	if !ok {
		return Download{}, ErrForbidden
	}

	// A null object key means the upload never completed
	if !note.ObjectKey.Valid {
		return Download{}, ErrNotFound
	}

	data, err := a.Files.Get(ctx, note.ObjectKey.String)
	if err != nil {
		return Download{}, pkgErrors.Wrapf(ErrStorage, "fetching %s: %v", note.ObjectKey.String, err)
	}

	if err := a.DB.Model(&database.Note{}).
		Where("id = ?", note.ID).
		Update("downloads", gorm.Expr("downloads + 1")).Error; err != nil {
		return Download{}, pkgErrors.Wrap(err, "incrementing downloads")
	}

	contentType := note.FileType
	if contentType == "" {
		contentType = pdfContentType
	}

	return Download{
		Data:        data,
		Filename:    fmt.Sprintf("%s.pdf", note.Title),
		ContentType: contentType,
	}, nil
}

// GetNote retrieves a note by its id
func (a *App) GetNote(id int) (database.Note, bool, error) {
	var note database.Note
	err := database.PreloadNote(a.DB).Where("notes.id = ?", id).First(&note).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.Note{}, false, nil
	} else if err != nil {
		return database.Note{}, false, pkgErrors.Wrap(err, "finding note")
	}

	return note, true, nil
}

// SearchNotesParams is params for finding notes
type SearchNotesParams struct {
	Query    string
	CourseID int
	Semester string
	Page     int
	PerPage  int
}

// SearchNotesResult is the result of searching notes
type SearchNotesResult struct {
	Notes []database.Note
	Total int64
}

func searchNotesBaseQuery(db *gorm.DB, q SearchNotesParams) *gorm.DB {
	conn := db.Model(&database.Note{})

	if q.Query != "" {
		pattern := fmt.Sprintf("%%%s%%", q.Query)
		conn = conn.Where(
			"notes.title LIKE ? OR notes.description LIKE ? OR notes.course_name LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if q.CourseID != 0 {
		conn = conn.Where("notes.course_id = ?", q.CourseID)
	}
	if q.Semester != "" {
		conn = conn.Where("notes.semester = ?", q.Semester)
	}

	return conn
}

func paginate(conn *gorm.DB, page, perPage int) *gorm.DB {
	if page > 0 {
		conn = conn.Offset(perPage * (page - 1))
	}

	return conn.Limit(perPage)
}

// SearchNotes returns a page of notes matching the given filters, newest
// first, along with the total match count
func (a *App) SearchNotes(params SearchNotesParams) (SearchNotesResult, error) {
	if params.PerPage < 1 || params.PerPage > 100 {
		params.PerPage = 20
	}

	conn := searchNotesBaseQuery(a.DB, params)

	var total int64
	if err := conn.Count(&total).Error; err != nil {
		return SearchNotesResult{}, pkgErrors.Wrap(err, "counting total")
	}

	notes := []database.Note{}
	if total != 0 {
		conn = database.PreloadNote(conn)
		conn = conn.Order("notes.created_at DESC, notes.id DESC")
		conn = paginate(conn, params.Page, params.PerPage)

		if err := conn.Find(&notes).Error; err != nil {
			return SearchNotesResult{}, pkgErrors.Wrap(err, "finding notes")
		}
	}

	return SearchNotesResult{Notes: notes, Total: total}, nil
}

// GetUserUploadedNotes returns the notes authored by the user, newest first
func (a *App) GetUserUploadedNotes(userID int) ([]database.Note, error) {
	notes := []database.Note{}

	conn := database.PreloadNote(a.DB).
		Where("notes.author_id = ?", userID).
		Order("notes.created_at DESC")
	if err := conn.Find(&notes).Error; err != nil {
		return nil, pkgErrors.Wrap(err, "finding uploaded notes")
	}

	return notes, nil
}
