package core

import "testing"

func TestParsePence(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"15.50", 1550, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{"1.004", 100, true},
		{" 2.50 ", 250, true},
		{"-3", -300, true},
		{"-1.235", -124, true},
		{"0", 0, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
		{"   ", 0, false},
	}
	for _, tc := range cases {
		got, err := ParsePence(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Errorf("ParsePence(%q) = %d, %v; want %d", tc.in, got, err, tc.out)
			}
		} else if err == nil {
			t.Errorf("ParsePence(%q) expected error", tc.in)
		}
	}
}

func TestPenceOrZero(t *testing.T) {
	cases := []struct {
		in  string
		out int64
	}{
		{"15.50", 1550},
		{"not a number", 0},
		{"", 0},
		{"-7.25", -725},
	}
	for _, tc := range cases {
		if got := PenceOrZero(tc.in); got != tc.out {
			t.Errorf("PenceOrZero(%q) = %d, want %d", tc.in, got, tc.out)
		}
	}
}

func TestFormatPence(t *testing.T) {
	cases := []struct {
		in  int64
		out string
	}{
		{0, "£0.00"},
		{5, "£0.05"},
		{123456, "£1,234.56"},
		{100000000, "£1,000,000.00"},
		{-1550, "-£15.50"},
		{99, "£0.99"},
	}
	for _, tc := range cases {
		if got := FormatPence(tc.in); got != tc.out {
			t.Errorf("FormatPence(%d) = %q, want %q", tc.in, got, tc.out)
		}
	}
}
