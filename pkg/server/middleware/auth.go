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

package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/notepool/notepool/pkg/server/app"
	"github.com/notepool/notepool/pkg/server/context"
)

var errTokenInvalid = errors.New("invalid bearer token")

// parseBearer verifies the bearer token of the request and returns the
// canonical claims. The boolean is false when no credential is present. A
// present but invalid credential is an error, never treated as anonymous.
func parseBearer(a *app.App, r *http.Request) (app.Claims, bool, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return app.Claims{}, false, nil
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return app.Claims{}, false, errTokenInvalid
	}

	raw := strings.TrimPrefix(header, "Bearer ")

	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %s", t.Method.Alg())
		}

		return []byte(a.AuthTokenSecret), nil
	})
	if err != nil || !tok.Valid {
		return app.Claims{}, false, errTokenInvalid
	}

	mapClaims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return app.Claims{}, false, errTokenInvalid
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return app.Claims{}, false, errTokenInvalid
	}

	email, _ := mapClaims["email"].(string)
	if email == "" {
		email, _ = mapClaims["email_address"].(string)
	}
	name, _ := mapClaims["name"].(string)
	role, _ := mapClaims["role"].(string)

	// Admin-ness is normalized to a strict boolean exactly once, here at
	// the trust boundary
	claims := app.Claims{
		Sub:   sub,
		Email: email,
		Name:  name,
		Role:  role,
		Admin: app.NormalizeAdmin(role, mapClaims["is_admin"]),
	}

	return claims, true, nil
}

// Auth is an authentication middleware. It verifies the bearer token,
// resolves the local user record and stores both on the request context.
func Auth(a *app.App, next http.HandlerFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok, err := parseBearer(a, r)
		if err != nil || !ok {
			RespondUnauthorized(w)
			return
		}

		user, err := a.ResolveUser(claims)
		if err != nil {
			DoError(w, "resolving user", err, http.StatusInternalServerError)
			return
		}

		ctx := context.WithUser(r.Context(), &user)
		ctx = context.WithClaims(ctx, &claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Admin is an authentication middleware that additionally requires the
// resolved user to be admin-equivalent
func Admin(a *app.App, next http.HandlerFunc) http.HandlerFunc {
	return Auth(a, func(w http.ResponseWriter, r *http.Request) {
		user := context.User(r.Context())
		if user == nil || !a.IsAdminUser(*user) {
			RespondForbidden(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}
