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
	"time"

	"github.com/notepool/notepool/pkg/server/database"
)

// Note is a result of PresentNote
type Note struct {
	ID          int        `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	Title       string     `json:"title"`
	CourseName  string     `json:"course_name"`
	Semester    string     `json:"semester"`
	Description string     `json:"description"`
	FileType    string     `json:"file_type"`
	Price       int        `json:"price"`
	IsFree      bool       `json:"is_free"`
	Downloads   int        `json:"downloads"`
	Views       int        `json:"views"`
	Author      NoteAuthor `json:"author"`
	Course      NoteCourse `json:"course"`
}

// NoteAuthor is a nested author for Note
type NoteAuthor struct {
	ID          int    `json:"id"`
	DisplayName string `json:"display_name"`
}

// NoteCourse is a nested course for Note
type NoteCourse struct {
	ID     int    `json:"id"`
	Code   string `json:"code"`
	School string `json:"school"`
	Title  string `json:"title"`
}

// PresentNote presents note
func PresentNote(note database.Note) Note {
	displayName := note.Author.DisplayName.String
	if displayName == "" {
		displayName = note.Author.Name.String
	}

	return Note{
		ID:          note.ID,
		CreatedAt:   FormatTS(note.CreatedAt),
		Title:       note.Title,
		CourseName:  note.CourseName,
		Semester:    note.Semester,
		Description: note.Description.String,
		FileType:    note.FileType,
		Price:       note.Price,
		IsFree:      note.IsFree,
		Downloads:   note.Downloads,
		Views:       note.Views,
		Author: NoteAuthor{
			ID:          note.Author.ID,
			DisplayName: displayName,
		},
		Course: NoteCourse{
			ID:     note.Course.ID,
			Code:   note.Course.Code,
			School: note.Course.School,
			Title:  note.Course.Title,
		},
	}
}

// PresentNotes presents notes
func PresentNotes(notes []database.Note) []Note {
	ret := []Note{}

	for _, note := range notes {
		ret = append(ret, PresentNote(note))
	}

	return ret
}
