package validation

import (
	"reflect"
	"testing"
)

func TestValidateSortKey(t *testing.T) {
	t.Parallel()

	valid := []string{"recent", "name_asc", "name_desc"}
	for _, value := range valid {
		if err := ValidateSortKey(value); err != nil {
			t.Errorf("ValidateSortKey(%q) = %v, want nil", value, err)
		}
	}

	invalid := []string{"", "newest", "NAME_ASC", "name-asc"}
	for _, value := range invalid {
		if err := ValidateSortKey(value); err == nil {
			t.Errorf("ValidateSortKey(%q) = nil, want error", value)
		}
	}
}

func TestValidateViewMode(t *testing.T) {
	t.Parallel()

	valid := []string{"grid", "table", "category"}
	for _, value := range valid {
		if err := ValidateViewMode(value); err != nil {
			t.Errorf("ValidateViewMode(%q) = %v, want nil", value, err)
		}
	}

	invalid := []string{"", "list", "Grid"}
	for _, value := range invalid {
		if err := ValidateViewMode(value); err == nil {
			t.Errorf("ValidateViewMode(%q) = nil, want error", value)
		}
	}
}

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "trims whitespace", in: "  hello  ", want: "hello"},
		{name: "strips control characters", in: "he\x00llo\x07", want: "hello"},
		{name: "keeps newline and tab", in: "line1\n\tline2", want: "line1\n\tline2"},
		{name: "empty stays empty", in: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := SanitizeText(tt.in); got != tt.want {
				t.Errorf("SanitizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeTags(t *testing.T) {
	t.Parallel()

	got := SanitizeTags([]string{" cli ", "", "\x00", "api"})
	want := []string{"cli", "api"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SanitizeTags() = %v, want %v", got, want)
	}
}

func TestStructValidationWithCustomTags(t *testing.T) {
	t.Parallel()

	type payload struct {
		Sort string `validate:"required,sort_key"`
		Mode string `validate:"required,view_mode"`
	}

	if err := Validate.Struct(payload{Sort: "recent", Mode: "grid"}); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}
	if err := Validate.Struct(payload{Sort: "bogus", Mode: "grid"}); err == nil {
		t.Error("invalid sort accepted")
	}
	if err := Validate.Struct(payload{Sort: "recent", Mode: "bogus"}); err == nil {
		t.Error("invalid mode accepted")
	}
}
