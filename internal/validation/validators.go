package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/mvaldes/digital-toolkit/internal/models"
)

var (
	// Validate is a shared validator instance
	Validate *validator.Validate
)

func init() {
	Validate = validator.New()

	if err := Validate.RegisterValidation("sort_key", validateSortKey); err != nil {
		panic(fmt.Sprintf("failed to register sort_key validator: %v", err))
	}
	if err := Validate.RegisterValidation("view_mode", validateViewMode); err != nil {
		panic(fmt.Sprintf("failed to register view_mode validator: %v", err))
	}
}

func validateSortKey(fl validator.FieldLevel) bool {
	return ValidateSortKey(fl.Field().String()) == nil
}

func validateViewMode(fl validator.FieldLevel) bool {
	return ValidateViewMode(fl.Field().String()) == nil
}

// ValidateSortKey validates a SortKey string value
func ValidateSortKey(value string) error {
	switch models.SortKey(value) {
	case models.SortRecent, models.SortNameAsc, models.SortNameDesc:
		return nil
	default:
		return fmt.Errorf("invalid sort key: %s (must be 'recent', 'name_asc', or 'name_desc')", value)
	}
}

// ValidateViewMode validates a ViewMode string value
func ValidateViewMode(value string) error {
	switch models.ViewMode(value) {
	case models.ViewGrid, models.ViewTable, models.ViewCategory:
		return nil
	default:
		return fmt.Errorf("invalid view mode: %s (must be 'grid', 'table', or 'category')", value)
	}
}

// SanitizeText trims whitespace and strips control characters except newline
// and tab.
func SanitizeText(text string) string {
	text = strings.TrimSpace(text)

	var sanitized strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		sanitized.WriteRune(r)
	}

	return sanitized.String()
}

// SanitizeTags sanitizes each tag and drops any that end up empty.
func SanitizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		clean := SanitizeText(tag)
		if clean != "" {
			out = append(out, clean)
		}
	}
	return out
}
