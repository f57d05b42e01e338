// Package cart holds the order arithmetic shared by every ordering surface:
// line insertion and removal, totals, and merging pending lines into a
// table's confirmed order. All functions return new slices and never mutate
// their inputs.
package cart

import "restaurant_pos_backend/internal/models"

// AddLine increments the quantity of the line with item's ID, or appends a
// new line with quantity 1.
func AddLine(lines []models.CartLine, item models.MenuItem) []models.CartLine {
	out := make([]models.CartLine, 0, len(lines)+1)
	found := false
	for _, l := range lines {
		if l.ItemID == item.ID {
			l.Quantity++
			found = true
		}
		out = append(out, l)
	}
	if !found {
		out = append(out, models.LineFromItem(item))
	}
	return out
}

// RemoveLine decrements the quantity of the matching line and drops it when
// the quantity reaches zero. An unknown itemID leaves the cart as is.
func RemoveLine(lines []models.CartLine, itemID string) []models.CartLine {
	out := make([]models.CartLine, 0, len(lines))
	for _, l := range lines {
		if l.ItemID == itemID {
			if l.Quantity > 1 {
				l.Quantity--
				out = append(out, l)
			}
			continue
		}
		out = append(out, l)
	}
	return out
}

// Total is the sum of price times quantity over all lines.
func Total(lines []models.CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

// MergeIntoConfirmed adds pending quantities onto matching confirmed lines and
// appends the rest in pending order. Existing confirmed lines keep their order.
//
// The merge is not idempotent: merging the same pending lines twice counts
// them twice. Callers that may retry must guard at a higher level.
func MergeIntoConfirmed(confirmed, pending []models.CartLine) []models.CartLine {
	out := append(make([]models.CartLine, 0, len(confirmed)+len(pending)), confirmed...)
	index := make(map[string]int, len(out))
	for i, l := range out {
		index[l.ItemID] = i
	}
	for _, p := range pending {
		if i, ok := index[p.ItemID]; ok {
			out[i].Quantity += p.Quantity
			continue
		}
		index[p.ItemID] = len(out)
		out = append(out, p)
	}
	return out
}

// Clone copies lines so a caller can hand them out without aliasing.
func Clone(lines []models.CartLine) []models.CartLine {
	if lines == nil {
		return []models.CartLine{}
	}
	return append(make([]models.CartLine, 0, len(lines)), lines...)
}
