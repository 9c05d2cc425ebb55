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
	"time"

	"github.com/notepool/notepool/pkg/server/database"
)

// Purchase is a result of PresentPurchase
type Purchase struct {
	ID          int       `json:"id"`
	NoteID      int       `json:"note_id"`
	PricePaid   int       `json:"price_paid"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// PresentPurchase presents purchase
func PresentPurchase(purchase database.Purchase) Purchase {
	return Purchase{
		ID:          purchase.ID,
		NoteID:      purchase.NoteID,
		PricePaid:   purchase.PricePaid,
		PurchasedAt: FormatTS(purchase.PurchasedAt),
	}
}
