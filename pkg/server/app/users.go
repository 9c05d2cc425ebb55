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
	"errors"
	"fmt"
	"strings"

	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/notepool/notepool/pkg/server/database"
)

// Claims is the canonical identity produced by token verification. It is
// built once at the trust boundary and passed through the call chain; no
// downstream code re-derives identity from the raw credential.
type Claims struct {
	Sub   string
	Email string
	Name  string
	Role  string
	Admin bool
}

// adminRoles is the set of role names treated as admin-equivalent
var adminRoles = map[string]bool{
	"admin":      true,
	"dev":        true,
	"developer":  true,
	"superadmin": true,
}

// NormalizeAdmin reduces the admin-ness of a token to a strict boolean. The
// role claim and the is_admin claim arrive in assorted shapes depending on
// the identity provider; this is the single place they are interpreted.
func NormalizeAdmin(role string, isAdmin interface{}) bool {
	if adminRoles[strings.ToLower(strings.TrimSpace(role))] {
		return true
	}

	switch v := isAdmin.(type) {
	case bool:
		return v
	case int:
		return v == 1
	case float64:
		return v == 1
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y":
			return true
		}
	}

	return false
}

// IsAdminUser checks whether the given user record is admin-equivalent
func (a *App) IsAdminUser(user database.User) bool {
	return user.IsAdmin || adminRoles[strings.ToLower(user.Role)]
}

// ResolveUser maps verified identity claims to a local user record, creating
// one on first sight. A user found by email without an external subject gets
// the subject backfilled. The operation is idempotent: resolving the same
// claims twice yields the same row.
func (a *App) ResolveUser(claims Claims) (database.User, error) {
	var user database.User

	if claims.Sub == "" {
		return user, ErrInvalidClaims
	}

	email := claims.Email
	if email == "" {
		email = fmt.Sprintf("%s@unknown.local", claims.Sub)
	}

	err := a.DB.Where("sub = ?", claims.Sub).First(&user).Error
	if err == nil {
		return user, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return user, pkgErrors.Wrap(err, "finding user by subject")
	}

	err = a.DB.Where("email = ?", email).First(&user).Error
	if err == nil {
		if !user.Sub.Valid {
			if err := a.DB.Model(&user).Update("sub", claims.Sub).Error; err != nil {
				return user, pkgErrors.Wrap(err, "backfilling subject")
			}
			user.Sub = database.ToNullString(claims.Sub)
		}

		return user, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return user, pkgErrors.Wrap(err, "finding user by email")
	}

	role := claims.Role
	if role == "" {
		role = database.RoleStudent
	}

	user = database.User{
		Sub:             database.ToNullString(claims.Sub),
		Email:           email,
		Name:            database.ToNullString(claims.Name),
		Role:            role,
		IsAdmin:         claims.Admin,
		Points:          database.DefaultPoints,
		IsProfilePublic: true,
	}
	if err := a.DB.Create(&user).Error; err != nil {
		// A concurrent request may have created the row first
		if isUniqueViolation(err) {
			var existing database.User
			if ferr := a.DB.Where("sub = ?", claims.Sub).First(&existing).Error; ferr == nil {
				return existing, nil
			}
		}

		return user, pkgErrors.Wrap(err, "creating user")
	}

	return user, nil
}

// GetUser retrieves a user by id
func (a *App) GetUser(id int) (database.User, bool, error) {
	var user database.User
	err := a.DB.Where("id = ?", id).First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return database.User{}, false, nil
	} else if err != nil {
		return database.User{}, false, pkgErrors.Wrap(err, "finding user")
	}

	return user, true, nil
}

// UpdateProfileParams is the parameters for updating a user profile. Nil
// fields are left unchanged.
type UpdateProfileParams struct {
	DisplayName     *string
	Bio             *string
	IsProfilePublic *bool
	ShowEmail       *bool
}

// UpdateProfile applies a partial profile update and returns the updated user
func (a *App) UpdateProfile(user database.User, p UpdateProfileParams) (database.User, error) {
	values := map[string]interface{}{}

	if p.DisplayName != nil {
		values["display_name"] = database.ToNullString(*p.DisplayName)
	}
	if p.Bio != nil {
		values["bio"] = database.ToNullString(*p.Bio)
	}
	if p.IsProfilePublic != nil {
		values["is_profile_public"] = *p.IsProfilePublic
	}
	if p.ShowEmail != nil {
		values["show_email"] = *p.ShowEmail
	}

	if len(values) == 0 {
		return user, nil
	}

	if err := a.DB.Model(&user).Updates(values).Error; err != nil {
		return user, pkgErrors.Wrap(err, "updating profile")
	}

	var ret database.User
	if err := a.DB.Where("id = ?", user.ID).First(&ret).Error; err != nil {
		return user, pkgErrors.Wrap(err, "reloading user")
	}

	return ret, nil
}
