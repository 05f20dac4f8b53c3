package util

import "testing"

func TestSanitizeTextRemovesNulAndControls(t *testing.T) {
	in := "ab\x00cd\x01\x02\n\txy"
	out := SanitizeText(in)
	if out != "abcd\n\txy" {
		t.Fatalf("unexpected sanitized output: %q", out)
	}
}

func TestSnippetTruncates(t *testing.T) {
	out := Snippet("hello world", 5)
	if out != "hello..." {
		t.Fatalf("unexpected snippet: %q", out)
	}
	if Snippet("short", 100) != "short" {
		t.Fatalf("short input must pass through unchanged")
	}
}

func TestCountAlnum(t *testing.T) {
	if n := CountAlnum("ab1 --- \n..x"); n != 4 {
		t.Fatalf("expected 4 alnum chars, got %d", n)
	}
	if n := CountAlnum("Партия 123"); n != 9 {
		t.Fatalf("expected cyrillic letters to count, got %d", n)
	}
}
