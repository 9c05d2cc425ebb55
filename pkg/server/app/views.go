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
	"sync"
	"time"

	pkgErrors "github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/notepool/notepool/pkg/server/database"
)

const (
	// viewCooldown is the minimum interval between counted views of the
	// same note by the same user
	viewCooldown = 5 * time.Minute
	// viewPruneThreshold is the map size beyond which expired cooldown
	// entries get pruned
	viewPruneThreshold = 1024
)

type viewKey struct {
	userID int
	noteID int
}

// viewThrottle tracks the last counted view per (user, note) pair. The state
// is process-local and best-effort: losing it on restart only lets a few
// views count again.
type viewThrottle struct {
	mu       sync.Mutex
	lastSeen map[viewKey]time.Time
}

func newViewThrottle() *viewThrottle {
	return &viewThrottle{lastSeen: map[viewKey]time.Time{}}
}

// allow reports whether a view may be counted now, and records it if so
func (t *viewThrottle) allow(key viewKey, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if seen, ok := t.lastSeen[key]; ok && now.Sub(seen) < viewCooldown {
		return false
	}

	if len(t.lastSeen) >= viewPruneThreshold {
		for k, seen := range t.lastSeen {
			if now.Sub(seen) >= viewCooldown {
				delete(t.lastSeen, k)
			}
		}
	}

	t.lastSeen[key] = now

	return true
}

func (a *App) views() *viewThrottle {
	a.viewOnce.Do(func() {
		a.viewTracker = newViewThrottle()
	})

	return a.viewTracker
}

// RecordView counts a view of the note by the user and returns the updated
// view count. A user's repeat views within the cooldown window are not
// counted, and an author's views of their own note never count.
func (a *App) RecordView(user database.User, noteID int) (int, error) {
	var note database.Note
	err := a.DB.Where("id = ?", noteID).First(&note).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	} else if err != nil {
		return 0, pkgErrors.Wrap(err, "finding note")
	}

	if a.IsAuthor(user, note) {
		return note.Views, nil
	}

	if !a.views().allow(viewKey{userID: user.ID, noteID: note.ID}, a.Clock.Now()) {
		return note.Views, nil
	}

	if err := a.DB.Model(&database.Note{}).
		Where("id = ?", note.ID).
		Update("views", gorm.Expr("views + 1")).Error; err != nil {
		return 0, pkgErrors.Wrap(err, "incrementing views")
	}

	return note.Views + 1, nil
}
