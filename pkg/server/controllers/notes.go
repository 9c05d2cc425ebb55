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

package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/notepool/notepool/pkg/server/app"
	"github.com/notepool/notepool/pkg/server/context"
	"github.com/notepool/notepool/pkg/server/presenters"
)

// maxUploadBytes is the upper bound for a note upload
const maxUploadBytes = 32 << 20

// NewNotes creates a new Notes controller
func NewNotes(app *app.App) *Notes {
	return &Notes{
		app: app,
	}
}

// Notes is a notes controller
type Notes struct {
	app *app.App
}

// Create handles POST /v1/notes. The note and its file arrive as a
// multipart form with the file under the "file" field.
func (n *Notes) Create(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		handleJSONError(w, app.ErrForbidden, "no user in context")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		invalidParam(w, "form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		invalidParam(w, "file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handleJSONError(w, err, "reading upload")
		return
	}

	courseID, err := strconv.Atoi(r.FormValue("course_id"))
	if err != nil {
		invalidParam(w, "course_id")
		return
	}

	params := app.CreateNoteParams{
		CourseID:    courseID,
		Title:       r.FormValue("title"),
		CourseName:  r.FormValue("course_name"),
		Semester:    r.FormValue("semester"),
		Description: r.FormValue("description"),
		IsFree:      r.FormValue("is_free") == "true",
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}

	if raw := r.FormValue("price"); raw != "" {
		price, err := strconv.Atoi(raw)
		if err != nil {
			invalidParam(w, "price")
			return
		}
		params.Price = &price
	}

	note, err := n.app.CreateNote(r.Context(), *user, params)
	if err != nil {
		handleJSONError(w, err, "creating note")
		return
	}

	created, ok, err := n.app.GetNote(note.ID)
	if err != nil || !ok {
		handleJSONError(w, err, "loading created note")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentNote(created))
}

// searchForm is the query parameters for searching notes
type searchForm struct {
	Query    string `schema:"q"`
	CourseID int    `schema:"course_id"`
	Semester string `schema:"semester"`
	Page     int    `schema:"page"`
	PerPage  int    `schema:"per_page"`
}

// searchResponse is the response shape for Index
type searchResponse struct {
	Notes   []presenters.Note `json:"notes"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
}

// Index handles GET /v1/notes
func (n *Notes) Index(w http.ResponseWriter, r *http.Request) {
	var form searchForm
	if err := parseQuery(r, &form); err != nil {
		invalidParam(w, "query")
		return
	}

	params := app.SearchNotesParams{
		Query:    form.Query,
		CourseID: form.CourseID,
		Semester: form.Semester,
		Page:     form.Page,
		PerPage:  form.PerPage,
	}

	result, err := n.app.SearchNotes(params)
	if err != nil {
		handleJSONError(w, err, "searching notes")
		return
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	respondJSON(w, http.StatusOK, searchResponse{
		Notes:   presenters.PresentNotes(result.Notes),
		Total:   result.Total,
		Page:    page,
		PerPage: perPage,
	})
}

// Show handles GET /v1/notes/{noteID}
func (n *Notes) Show(w http.ResponseWriter, r *http.Request) {
	noteID, err := noteIDParam(r)
	if err != nil {
		invalidParam(w, "noteID")
		return
	}

	note, ok, err := n.app.GetNote(noteID)
	if err != nil {
		handleJSONError(w, err, "getting note")
		return
	}
	if !ok {
		handleJSONError(w, app.ErrNotFound, "note not found")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentNote(note))
}

// Purchase handles POST /v1/notes/{noteID}/purchase
func (n *Notes) Purchase(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		handleJSONError(w, app.ErrForbidden, "no user in context")
		return
	}

	noteID, err := noteIDParam(r)
	if err != nil {
		invalidParam(w, "noteID")
		return
	}

	purchase, err := n.app.PurchaseNote(*user, noteID)
	if err != nil {
		handleJSONError(w, err, "purchasing note")
		return
	}

	respondJSON(w, http.StatusCreated, presenters.PresentPurchase(purchase))
}

// Ownership handles GET /v1/notes/{noteID}/ownership
func (n *Notes) Ownership(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		handleJSONError(w, app.ErrForbidden, "no user in context")
		return
	}

	noteID, err := noteIDParam(r)
	if err != nil {
		invalidParam(w, "noteID")
		return
	}

	ownership, err := n.app.CheckOwnership(*user, noteID)
	if err != nil {
		handleJSONError(w, err, "checking ownership")
		return
	}

	respondJSON(w, http.StatusOK, ownership)
}

// Download handles GET /v1/notes/{noteID}/download
func (n *Notes) Download(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		handleJSONError(w, app.ErrForbidden, "no user in context")
		return
	}

	noteID, err := noteIDParam(r)
	if err != nil {
		invalidParam(w, "noteID")
		return
	}

	download, err := n.app.DownloadNote(r.Context(), *user, noteID)
	if err != nil {
		handleJSONError(w, err, "downloading note")
		return
	}

	w.Header().Set("Content-Type", download.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(download.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(download.Data)
}

// viewsResponse is the response shape for RecordView
type viewsResponse struct {
	Views int `json:"views"`
}

// RecordView handles POST /v1/notes/{noteID}/views
func (n *Notes) RecordView(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		handleJSONError(w, app.ErrForbidden, "no user in context")
		return
	}

	noteID, err := noteIDParam(r)
	if err != nil {
		invalidParam(w, "noteID")
		return
	}

	views, err := n.app.RecordView(*user, noteID)
	if err != nil {
		handleJSONError(w, err, "recording view")
		return
	}

	respondJSON(w, http.StatusOK, viewsResponse{Views: views})
}

// Library handles GET /v1/library
func (n *Notes) Library(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		handleJSONError(w, app.ErrForbidden, "no user in context")
		return
	}

	notes, err := n.app.GetUserPurchasedNotes(user.ID)
	if err != nil {
		handleJSONError(w, err, "getting library")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentNotes(notes))
}

// Uploaded handles GET /v1/uploaded
func (n *Notes) Uploaded(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		handleJSONError(w, app.ErrForbidden, "no user in context")
		return
	}

	notes, err := n.app.GetUserUploadedNotes(user.ID)
	if err != nil {
		handleJSONError(w, err, "getting uploaded notes")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentNotes(notes))
}
