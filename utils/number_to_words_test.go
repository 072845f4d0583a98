package utils

import "testing"

func TestNumberToCurrencyWords(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "Zero Rupees Only"},
		{51500, "Fifty One Thousand Five Hundred Rupees Only"},
		{100000, "One Lakh Rupees Only"},
		{12500000, "One Crore Twenty Five Lakh Rupees Only"},
		{1500.50, "One Thousand Five Hundred Rupees and Fifty Paise Only"},
	}

	for _, tc := range cases {
		if got := NumberToCurrencyWords(tc.in); got != tc.want {
			t.Errorf("NumberToCurrencyWords(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
