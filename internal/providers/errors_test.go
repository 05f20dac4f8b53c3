package providers

import (
	"errors"
	"testing"
)

func TestClassifyError(t *testing.T) {
	cases := []struct {
		msg  string
		want ErrorType
	}{
		{"openai completion error 401: invalid api key", ErrorAuth},
		{"insufficient_quota for this account", ErrorQuota},
		{"error 429: rate limit exceeded", ErrorRate},
		{"request context too long", ErrorContext},
		{"service temporarily unavailable", ErrorTransient},
		{"something else entirely", ErrorPermanent},
	}
	for _, c := range cases {
		if got := ClassifyError(errors.New(c.msg)); got != c.want {
			t.Fatalf("ClassifyError(%q) = %s, want %s", c.msg, got, c.want)
		}
	}
	if ClassifyError(nil) != "" {
		t.Fatalf("nil error must classify to empty type")
	}
}
