package inventory

import (
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"人参(1/2本)", 0.5},
		{"にんじん(2本)", 2},
		{"卵2個", 2},
		{"牛乳200ml", 200},
		{"砂糖1.5カップ", 1.5},
		{"じゃがいも 3/4個", 0.75},
		{"塩少々", 0},
		{"キャベツ適量", 0},
		{"", 0},
		// A zero denominator is not a fraction; the numeral search takes over.
		{"謎の食材1/0個", 1},
	}

	for _, c := range cases {
		if got := ParseAmount(c.text); got != c.want {
			t.Errorf("ParseAmount(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestRound2(t *testing.T) {
	cases := []struct {
		value float64
		want  float64
	}{
		{0.1 + 0.2, 0.3},
		{1.005, 1.01},
		{2.999, 3.0},
		{5, 5},
		{-0.004, 0},
	}

	for _, c := range cases {
		if got := Round2(c.value); got != c.want {
			t.Errorf("Round2(%v) = %v, want %v", c.value, got, c.want)
		}
	}
}
