package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{name: "simple", username: "mrs_smith"},
		{name: "with space", username: "Jane Doe"},
		{name: "accented", username: "Aimée"},
		{name: "too short", username: "ab", wantErr: true},
		{name: "too long", username: "abcdefghijklmnopqrstuvwxyz0123456", wantErr: true},
		{name: "bad chars", username: "bob<script>", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.username)
			assert.Equal(t, tt.wantErr, err != nil, "ValidateUsername(%q) = %v", tt.username, err)
		})
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("12345"))
	assert.NoError(t, ValidatePassword("123456"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("parent@school.rw"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail("Parent <parent@school.rw>"))
	assert.Error(t, ValidateEmail(""))
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		date    string
		wantErr bool
	}{
		{date: "2025-03-14"},
		{date: "2024-02-29"},
		{date: "2025-02-30", wantErr: true},
		{date: "14/03/2025", wantErr: true},
		{date: "2025-3-14", wantErr: true},
		{date: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			err := ValidateDate(tt.date)
			assert.Equal(t, tt.wantErr, err != nil, "ValidateDate(%q) = %v", tt.date, err)
		})
	}
}

func TestCleanIDs(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, CleanIDs([]string{" a", "", "b", "a "}))
	assert.Empty(t, CleanIDs(nil))
}
