package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"ada@example.com",
		"ada.lovelace+tag@sub.example.co.uk",
		"  spaced@example.com  ",
	}
	invalid := []string{
		"",
		"ada",
		"ada@",
		"@example.com",
		"ada@example",
		"ada example@example.com",
	}

	for _, s := range valid {
		assert.True(t, ValidEmail(s), "expected %q to be valid", s)
	}
	for _, s := range invalid {
		assert.False(t, ValidEmail(s), "expected %q to be invalid", s)
	}
}

func TestUserInput_CollectsAllViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		password string
		want     []string
	}{
		{"all valid", "ada@example.com", "hunter22", nil},
		{"bad email", "nope", "hunter22", []string{"Email is invalid."}},
		{"short password", "ada@example.com", "abc", []string{"Password too short!"}},
		{"both invalid", "nope", "abc", []string{"Email is invalid.", "Password too short!"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			errs := UserInput(tt.email, tt.password)
			var got []string
			for _, e := range errs {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPostInput_CollectsAllViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		content string
		want    []string
	}{
		{"all valid", "Title", "Content", nil},
		{"short title", "abc", "Content", []string{"Title is invalid."}},
		{"whitespace only content", "Title", "      ", []string{"Content is invalid."}},
		{"both invalid", "ab", "cd", []string{"Title is invalid.", "Content is invalid."}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			errs := PostInput(tt.title, tt.content)
			var got []string
			for _, e := range errs {
				got = append(got, e.Message)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
