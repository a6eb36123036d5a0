package s3

import "testing"

func TestRandomIDHexShape(t *testing.T) {
	id := randomID()
	if len(id) != 32 {
		t.Fatalf("expected 32 hex chars, got %d (%q)", len(id), id)
	}
	if id == randomID() {
		t.Fatal("ids must not repeat")
	}
}

func TestApplyPrefix(t *testing.T) {
	cases := []struct {
		prefix string
		key    string
		want   string
	}{
		{"", "abc/file.pdf", "abc/file.pdf"},
		{"uploads", "abc/file.pdf", "uploads/abc/file.pdf"},
	}
	for _, c := range cases {
		if got := applyPrefix(c.prefix, c.key); got != c.want {
			t.Fatalf("applyPrefix(%q, %q) = %q, want %q", c.prefix, c.key, got, c.want)
		}
	}
}

func TestNormalizePrefixTrimsSlashes(t *testing.T) {
	if got := normalizePrefix(" /uploads/ "); got != "uploads" {
		t.Fatalf("unexpected prefix: %q", got)
	}
}

func TestStripPrefixRoundTrip(t *testing.T) {
	prefix := normalizePrefix("uploads/")
	key := applyPrefix(prefix, "user/file.pdf")
	if got := stripPrefix(prefix, key); got != "user/file.pdf" {
		t.Fatalf("unexpected storage key: %q", got)
	}
}
