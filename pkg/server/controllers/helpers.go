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
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/pkg/errors"

	"github.com/notepool/notepool/pkg/server/app"
	"github.com/notepool/notepool/pkg/server/log"
)

var formDecoder = schema.NewDecoder()

func init() {
	formDecoder.IgnoreUnknownKeys(true)
}

type errorResponse struct {
	Error string `json:"error"`
}

// respondJSON writes the given payload as a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ErrorWrap(err, "encoding response")
	}
}

// getStatusCode maps an error to an HTTP status code
func getStatusCode(err error) int {
	cause := errors.Cause(err)

	switch cause {
	case app.ErrNotFound:
		return http.StatusNotFound
	case app.ErrAlreadyOwned, app.ErrDuplicateCourse:
		return http.StatusConflict
	case app.ErrInsufficientFunds:
		return http.StatusPaymentRequired
	case app.ErrForbidden:
		return http.StatusForbidden
	case app.ErrInvalidAmount,
		app.ErrInvalidCourse,
		app.ErrCourseFieldsMissing,
		app.ErrUnsupportedFileType,
		app.ErrInvalidPrice,
		app.ErrEmptyFile:
		return http.StatusBadRequest
	case app.ErrStorage:
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// handleJSONError responds with the error as JSON. Client errors carry the
// domain message; everything else is logged and replaced with a generic one.
func handleJSONError(w http.ResponseWriter, err error, msg string) {
	statusCode := getStatusCode(err)

	if statusCode >= http.StatusInternalServerError {
		log.WithFields(log.Fields{
			"statusCode": statusCode,
		}).ErrorWrap(err, msg)

		respondJSON(w, statusCode, errorResponse{Error: http.StatusText(statusCode)})
		return
	}

	respondJSON(w, statusCode, errorResponse{Error: errors.Cause(err).Error()})
}

// invalidParam responds with a 400 for a malformed request parameter
func invalidParam(w http.ResponseWriter, name string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid " + name})
}

// noteIDParam parses the {noteID} route variable
func noteIDParam(r *http.Request) (int, error) {
	vars := mux.Vars(r)

	id, err := strconv.Atoi(vars["noteID"])
	if err != nil {
		return 0, errors.Wrap(err, "parsing noteID")
	}

	return id, nil
}

// parseQuery decodes URL query parameters into dst
func parseQuery(r *http.Request, dst interface{}) error {
	if err := formDecoder.Decode(dst, r.URL.Query()); err != nil {
		return errors.Wrap(err, "decoding query")
	}

	return nil
}

// parsePayload decodes a JSON request body into dst
func parsePayload(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.Wrap(err, "decoding payload")
	}

	return nil
}
