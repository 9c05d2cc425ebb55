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
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/notepool/notepool/pkg/server/app"
	mw "github.com/notepool/notepool/pkg/server/middleware"
)

// Route represents a single route
type Route struct {
	Method    string
	Pattern   string
	Handler   http.HandlerFunc
	RateLimit bool
}

// NewAPIRoutes returns the api routes
func NewAPIRoutes(a *app.App, c *Controllers) []Route {
	return []Route{
		{"POST", "/v1/notes", mw.Auth(a, c.Notes.Create), true},
		{"GET", "/v1/notes", c.Notes.Index, true},
		{"GET", "/v1/notes/{noteID}", c.Notes.Show, true},
		{"POST", "/v1/notes/{noteID}/purchase", mw.Auth(a, c.Notes.Purchase), true},
		{"GET", "/v1/notes/{noteID}/ownership", mw.Auth(a, c.Notes.Ownership), true},
		{"GET", "/v1/notes/{noteID}/download", mw.Auth(a, c.Notes.Download), true},
		{"POST", "/v1/notes/{noteID}/views", mw.Auth(a, c.Notes.RecordView), true},

		{"GET", "/v1/library", mw.Auth(a, c.Notes.Library), true},
		{"GET", "/v1/uploaded", mw.Auth(a, c.Notes.Uploaded), true},

		{"GET", "/v1/me", mw.Auth(a, c.Users.Me), true},
		{"PATCH", "/v1/me", mw.Auth(a, c.Users.UpdateMe), true},

		{"GET", "/v1/courses", c.Courses.Index, true},
		{"POST", "/v1/courses", mw.Admin(a, c.Courses.Create), true},

		{"GET", "/health", c.Health.Index, false},
	}
}

func registerRoutes(router *mux.Router, routes []Route) {
	for _, route := range routes {
		router.
			Handle(route.Pattern, mw.ApplyLimit(route.Handler, route.RateLimit)).
			Methods(route.Method)
	}
}

// NewRouter creates and returns a new router
func NewRouter(a *app.App, routes []Route) (http.Handler, error) {
	if err := a.Validate(); err != nil {
		return nil, errors.Wrap(err, "validating the app parameters")
	}

	router := mux.NewRouter().StrictSlash(true)
	registerRoutes(router, routes)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})

	return mw.Global(router), nil
}
