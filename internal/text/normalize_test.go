package text

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Empty", "", ""},
		{"Lowercase", "Office HOURS", "office hours"},
		{"Punctuation", "What are your office hours?", "what are your office hours"},
		{"Curly Apostrophe", "I’m feeling anxious today.", "im feeling anxious today"},
		{"Whitespace", "  cancel   my\tsubscription \n", "cancel my subscription"},
		{"Only Punctuation", "?!...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestWords(t *testing.T) {
	got := Words("I feel GOOD, not bad!")
	want := []string{"i", "feel", "good", "not", "bad"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Words() = %v, want %v", got, want)
	}
	if len(Words("")) != 0 {
		t.Error("Words(\"\") should be empty")
	}
}

func TestHasWord(t *testing.T) {
	words := Words("Goodness, I feel badly")
	if HasWord(words, "good") {
		t.Error("substring of a word must not match")
	}
	if HasWord(words, "bad") {
		t.Error("substring of a word must not match")
	}
	if !HasWord(words, "feel") {
		t.Error("expected whole word match")
	}
}

func TestContainsAny(t *testing.T) {
	if !ContainsAny("how do i cancel my subscription", []string{"refund", "my subscription"}) {
		t.Error("expected match")
	}
	if ContainsAny("hello there", []string{"refund"}) {
		t.Error("unexpected match")
	}
}
