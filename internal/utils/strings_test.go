package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty string", "", nil},
		{"single origin", "*", []string{"*"}},
		{"two origins", "http://a.test, http://b.test", []string{"http://a.test", "http://b.test"}},
		{"trailing comma", "http://a.test,", []string{"http://a.test"}},
		{"only spaces", "   ", nil},
		{"multiple commas", ",,a,,b,,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCSV(tt.input))
		})
	}
}
