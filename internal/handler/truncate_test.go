package handler

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateKeepsValidUTF8(t *testing.T) {
	value := strings.Repeat("é", 300)

	got := truncate(value, eventPathMax)

	if !utf8.ValidString(got) {
		t.Error("truncated value is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n != eventPathMax {
		t.Errorf("rune count: got %d, want %d", n, eventPathMax)
	}
}

func TestTruncateLeavesShortValues(t *testing.T) {
	if got := truncate("page_home", 240); got != "page_home" {
		t.Errorf("got %q, want input unchanged", got)
	}
}
