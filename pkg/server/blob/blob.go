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

// Package blob provides a key/value contract over binary object storage
package blob

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNotFound is an error for a missing object
var ErrNotFound = errors.New("object not found")

// Store stores binary payloads under opaque keys. Implementations must keep
// keys isolated from one another; no listing capability is assumed.
type Store interface {
	// Put stores data under the given key with the given content type
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Get returns the data stored under the given key. It returns ErrNotFound
	// if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes the data stored under the given key
	Delete(ctx context.Context, key string) error
}
