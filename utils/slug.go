package utils

import (
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"
)

// Slugify converts a title to a URL-safe slug: lowercase, runs of anything
// that is not a letter or digit collapse into a single dash.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true // Avoid a leading dash
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// UniqueSlug generates a slug from the title and disambiguates it against the
// given table with a numeric suffix: "intro-to-php", "intro-to-php-1", ...
// excludeID skips the row being updated so it can keep its own slug.
func UniqueSlug(db *gorm.DB, table, title string, excludeID uint) string {
	slug := Slugify(title)
	originalSlug := slug
	count := 1
	for slugTaken(db, table, slug, excludeID) {
		slug = fmt.Sprintf("%s-%d", originalSlug, count)
		count++
	}
	return slug
}

func slugTaken(db *gorm.DB, table, slug string, excludeID uint) bool {
	var total int64
	query := db.Table(table).Where("slug = ?", slug)
	if excludeID > 0 {
		query = query.Where("id != ?", excludeID)
	}
	query.Count(&total)
	return total > 0
}
