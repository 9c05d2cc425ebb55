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

// Package context provides access to request-scoped values
package context

import (
	"context"

	"github.com/notepool/notepool/pkg/server/app"
	"github.com/notepool/notepool/pkg/server/database"
)

type privateKey string

const (
	userKey   privateKey = "user"
	claimsKey privateKey = "claims"
)

// WithUser creates a new context with the given user
func WithUser(ctx context.Context, user *database.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// User retrieves a user from the given context. It returns a pointer to
// a user. If the context does not contain a user, it returns nil.
func User(ctx context.Context) *database.User {
	if temp := ctx.Value(userKey); temp != nil {
		if user, ok := temp.(*database.User); ok {
			return user
		}
	}

	return nil
}

// WithClaims creates a new context with the given identity claims
func WithClaims(ctx context.Context, claims *app.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Claims retrieves identity claims from the given context. If the context
// does not contain claims, it returns nil.
func Claims(ctx context.Context) *app.Claims {
	if temp := ctx.Value(claimsKey); temp != nil {
		if claims, ok := temp.(*app.Claims); ok {
			return claims
		}
	}

	return nil
}
