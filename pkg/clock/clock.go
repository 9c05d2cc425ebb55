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

// Package clock provides an abstract layer over the standard time package
package clock

import (
	"sync"
	"time"
)

// Clock is an interface to the current time. It is implemented by a real
// clock and by a mock clock used in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (c *systemClock) Now() time.Time {
	return time.Now()
}

// New returns a clock backed by the system time
func New() Clock {
	return &systemClock{}
}

// Mock is a clock whose current time is set manually
type Mock struct {
	mu  sync.RWMutex
	now time.Time
}

// SetNow sets the current time of the mock clock
func (c *Mock) SetNow(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the current time of the mock clock forward by d
func (c *Mock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Now returns the current time of the mock clock
func (c *Mock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// NewMock returns a mock clock set to a fixed point in time
func NewMock() *Mock {
	return &Mock{
		now: time.Date(2024, time.September, 2, 9, 30, 0, 0, time.UTC),
	}
}
