package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopscribe/credstore/internal/domain/model"
)

func TestValidateFormat_Anthropic(t *testing.T) {
	valid := "sk-ant-" + strings.Repeat("a", 20)

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"valid key", valid, true},
		{"valid with surrounding whitespace", "  " + valid + "\n", true},
		{"valid with mixed charset", "sk-ant-REDACTED", true},
		{"missing prefix", strings.Repeat("a", 30), false},
		{"suffix too short", "sk-ant-short", false},
		{"interior whitespace", "sk-ant-" + strings.Repeat("a", 10) + " " + strings.Repeat("a", 10), false},
		{"illegal punctuation", "sk-ant-" + strings.Repeat("a", 19) + "!", false},
		{"empty", "", false},
		{"prefix only", "sk-ant-", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateFormat(model.ServiceAnthropic, tt.candidate))
		})
	}
}

func TestValidateFormat_Unsplash(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{"valid key", strings.Repeat("x", 20), true},
		{"valid with hyphens and underscores", "abc-DEF_123-ghi_JKL-456", true},
		{"valid with whitespace trimmed", " " + strings.Repeat("x", 25) + " ", true},
		{"too short", strings.Repeat("x", 19), false},
		{"interior whitespace", strings.Repeat("x", 10) + " " + strings.Repeat("x", 10), false},
		{"illegal punctuation", strings.Repeat("x", 20) + ".", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateFormat(model.ServiceUnsplash, tt.candidate))
		})
	}
}

func TestValidateFormat_UnknownService(t *testing.T) {
	assert.False(t, ValidateFormat(model.Service("flickr"), strings.Repeat("x", 30)))
}

func TestFormatProblem(t *testing.T) {
	assert.Equal(t, "Invalid Anthropic API key format", FormatProblem(model.ServiceAnthropic))
	assert.Equal(t, "Invalid Unsplash access key format", FormatProblem(model.ServiceUnsplash))
}
