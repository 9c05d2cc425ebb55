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

// Package middleware provides HTTP middleware for the server
package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/notepool/notepool/pkg/server/log"
)

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

// DoError logs the given error and responds with a generic message
func DoError(w http.ResponseWriter, msg string, err error, statusCode int) {
	log.WithFields(log.Fields{
		"statusCode": statusCode,
	}).ErrorWrap(err, msg)

	respondJSON(w, statusCode, errorResponse{Error: http.StatusText(statusCode)})
}

// RespondUnauthorized responds with a 401
func RespondUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="Protected"`)
	respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "sign in required"})
}

// RespondForbidden responds with a 403
func RespondForbidden(w http.ResponseWriter) {
	respondJSON(w, http.StatusForbidden, errorResponse{Error: "admin access required"})
}
