package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents    int64
		expected string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{100, "$1.00"},
		{1050, "$10.50"},
		{123456, "$1,234.56"},
		{-500, "-$5.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCents(tt.cents), "cents=%d", tt.cents)
	}
}
