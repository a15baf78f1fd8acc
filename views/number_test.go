package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeViews(t *testing.T) {
	truncates := []struct {
		value    string
		expected int64
	}{
		{"0", 0},
		{"7", 7},
		{"2.9", 2},
		{"2.1", 2},
		{"-0.5", 0},
		{"1e3", 1000},
		{"12.00000", 12},
		{"9223372036854775807", 9223372036854775807},
	}

	for _, tc := range truncates {
		views, err := DecodeViews(tc.value)
		if assert.NoError(t, err, tc.value) {
			assert.Equal(t, tc.expected, views, tc.value)
		}
	}

	for _, value := range []string{"", "seven", "-1", "9223372036854775808", "1e40"} {
		_, err := DecodeViews(value)
		assert.Error(t, err, value)
	}
}

func TestEncodeViews(t *testing.T) {
	assert.Equal(t, "0", EncodeViews(0))
	assert.Equal(t, "1234", EncodeViews(1234))
}

func TestDecodeViewsMarksMalformed(t *testing.T) {
	_, err := DecodeViews("twelve")
	assert.ErrorIs(t, err, ErrMalformed)
}
