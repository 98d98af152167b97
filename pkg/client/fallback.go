package client

import (
	"fmt"
	"strings"
)

var placeholderTrades = []struct {
	category, business, city string
}{
	{"cat-plumbing", "Plomberie Atlas", "Casablanca"},
	{"cat-electricity", "Électricité Anfa", "Rabat"},
	{"cat-carpentry", "Menuiserie du Souss", "Agadir"},
	{"cat-painting", "Peinture Majorelle", "Marrakech"},
	{"cat-masonry", "Maçonnerie Fès Médina", "Fès"},
	{"cat-zellige", "Zellige Tanger", "Tanger"},
}

// Bounds applied by the API to the top artisans limit.
const (
	DefaultTopLimit = 6
	MaxTopLimit     = 24
)

// clampTopLimit maps limit into [1, MaxTopLimit], non-positive meaning the default.
func clampTopLimit(limit int) int {
	if limit <= 0 {
		return DefaultTopLimit
	}
	if limit > MaxTopLimit {
		return MaxTopLimit
	}
	return limit
}

// PlaceholderArtisans returns deterministic listings used when the top
// artisans cannot be loaded. limit is clamped like the API clamps it.
func PlaceholderArtisans(limit int) []Artisan {
	limit = clampTopLimit(limit)
	out := make([]Artisan, 0, limit)
	for i := 0; i < limit; i++ {
		t := placeholderTrades[i%len(placeholderTrades)]
		out = append(out, Artisan{
			ID:            fmt.Sprintf("placeholder-%d", i+1),
			CategoryID:    t.category,
			BusinessName:  t.business,
			Description:   "Artisan vérifié sur 9RIB.",
			CityName:      t.city,
			OwnerName:     t.business,
			Specialties:   []string{},
			RatingAverage: 5.0 - float64(i%5)*0.1,
			RatingCount:   MaxTopLimit + 16 - i,
			IsVerified:    true,
			IsActive:      true,
		})
	}
	return out
}

// MatchesSearch reports whether term is a case-insensitive substring of the
// artisan's business name, description, address and owner name joined by
// single spaces. The API search uses the same expression.
func MatchesSearch(a Artisan, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	haystack := strings.Join([]string{a.BusinessName, a.Description, a.Address, a.OwnerName}, " ")
	return strings.Contains(strings.ToLower(haystack), term)
}

// FilterSearch keeps the artisans matching term.
func FilterSearch(items []Artisan, term string) []Artisan {
	out := make([]Artisan, 0, len(items))
	for _, a := range items {
		if MatchesSearch(a, term) {
			out = append(out, a)
		}
	}
	return out
}
