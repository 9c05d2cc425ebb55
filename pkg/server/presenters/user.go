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
	"github.com/notepool/notepool/pkg/server/database"
)

// User is a result of PresentUser
type User struct {
	ID              int    `json:"id"`
	Sub             string `json:"sub"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	DisplayName     string `json:"display_name"`
	Bio             string `json:"bio"`
	Points          int    `json:"points"`
	IsProfilePublic bool   `json:"is_profile_public"`
	ShowEmail       bool   `json:"show_email"`
}

// PresentUser presents user
func PresentUser(user database.User) User {
	return User{
		ID:              user.ID,
		Sub:             user.Sub.String,
		Email:           user.Email,
		Name:            user.Name.String,
		DisplayName:     user.DisplayName.String,
		Bio:             user.Bio.String,
		Points:          user.Points,
		IsProfilePublic: user.IsProfilePublic,
		ShowEmail:       user.ShowEmail,
	}
}
