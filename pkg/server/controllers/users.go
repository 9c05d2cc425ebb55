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

	"github.com/notepool/notepool/pkg/server/app"
	"github.com/notepool/notepool/pkg/server/context"
	"github.com/notepool/notepool/pkg/server/presenters"
)

// NewUsers creates a new Users controller
func NewUsers(app *app.App) *Users {
	return &Users{
		app: app,
	}
}

// Users is a user controller
type Users struct {
	app *app.App
}

// Me handles GET /v1/me
func (u *Users) Me(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		handleJSONError(w, app.ErrForbidden, "no user in context")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUser(*user))
}

// updateMePayload is the payload for UpdateMe. Omitted fields are left
// unchanged.
type updateMePayload struct {
	DisplayName     *string `json:"display_name"`
	Bio             *string `json:"bio"`
	IsProfilePublic *bool   `json:"is_profile_public"`
	ShowEmail       *bool   `json:"show_email"`
}

// UpdateMe handles PATCH /v1/me
func (u *Users) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user := context.User(r.Context())
	if user == nil {
		handleJSONError(w, app.ErrForbidden, "no user in context")
		return
	}

	var payload updateMePayload
	if err := parsePayload(r, &payload); err != nil {
		invalidParam(w, "payload")
		return
	}

	updated, err := u.app.UpdateProfile(*user, app.UpdateProfileParams{
		DisplayName:     payload.DisplayName,
		Bio:             payload.Bio,
		IsProfilePublic: payload.IsProfilePublic,
		ShowEmail:       payload.ShowEmail,
	})
	if err != nil {
		handleJSONError(w, err, "updating profile")
		return
	}

	respondJSON(w, http.StatusOK, presenters.PresentUser(updated))
}
