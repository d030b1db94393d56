package calculator

import "github.com/mmynk/gearcheck/internal/models"

// Regressions returns the items, in the given order, that were held in
// stored and are absent in working. A person who declared owning an item and
// now declares they don't gets flagged; it never blocks a save.
func Regressions(items []string, stored, working map[string]models.ItemState) []string {
	var out []string
	for _, item := range items {
		if stored[item].Held() && working[item] == models.Absent {
			out = append(out, item)
		}
	}
	return out
}
