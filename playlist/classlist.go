package playlist

import (
	"regexp"
	"strings"
)

// ClassListing is a class name/description pair recovered from free text.
type ClassListing struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var numberedPrefix = regexp.MustCompile(`^\d+[.)]\s*`)

// ExtractClassListings parses lines shaped like "1. Name: Description",
// "2) Name: Description", "• Name: Description" or "- Name: Description".
// Lines that don't fit, or that have an empty name or description, are skipped.
func ExtractClassListings(text string) []ClassListing {
	listings := []ClassListing{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)

		var content string
		switch {
		case numberedPrefix.MatchString(line):
			content = numberedPrefix.ReplaceAllString(line, "")
		case strings.HasPrefix(line, "•"), strings.HasPrefix(line, "-"):
			content = stripBullet(line)
		default:
			continue
		}

		name, description, ok := strings.Cut(content, ":")
		if !ok {
			continue
		}
		name = strings.Trim(strings.TrimSpace(name), "*")
		description = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(description), "*"))
		if name == "" || description == "" {
			continue
		}
		listings = append(listings, ClassListing{
			Name:        strings.TrimSpace(name),
			Description: description,
		})
	}
	return listings
}
