package postgres

import "testing"

func TestSourceURL(t *testing.T) {
	tests := map[string]string{
		"migrations":             "file://migrations",
		"/srv/app/migrations":    "file:///srv/app/migrations",
		"file://migrations":      "file://migrations",
		"github://org/repo/path": "github://org/repo/path",
	}

	for in, want := range tests {
		if got := sourceURL(in); got != want {
			t.Fatalf("sourceURL(%q) = %q, want %q", in, got, want)
		}
	}
}
