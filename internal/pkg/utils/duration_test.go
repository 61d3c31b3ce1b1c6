package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSecondsToTime(t *testing.T) {
	cases := []struct {
		input int64
		want  string
	}{
		{0, "0:00:00"},
		{59, "0:00:59"},
		{5400, "1:30:00"},
		{3661, "1:01:01"},
		{36000, "10:00:00"},
		{90061, "25:01:01"},
		{-10, "0:00:00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatSecondsToTime(c.input), "input %d", c.input)
	}
}

func TestFormatSecondsToAverage(t *testing.T) {
	cases := []struct {
		input int64
		want  string
	}{
		{0, "0.00"},
		{7*3600 + 30*60, "7.30"},
		{7 * 3600, "7.00"},
		{8*3600 + 5*60 + 59, "8.05"},
		{-1, "0.00"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatSecondsToAverage(c.input), "input %d", c.input)
	}
}
