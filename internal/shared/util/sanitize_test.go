package util

import "testing"

func TestSanitizeFileNameReplacesSeparators(t *testing.T) {
	got, err := SanitizeFileName("dir/sub\\resume.pdf")
	if err != nil {
		t.Fatalf("sanitize: %v", err)
	}
	if got != "dir_sub_resume.pdf" {
		t.Fatalf("unexpected name: %q", got)
	}
}

func TestSanitizeFileNameRejectsTraversal(t *testing.T) {
	if _, err := SanitizeFileName("../../etc/passwd"); err == nil {
		t.Fatal("expected traversal to be rejected")
	}
}

func TestSanitizeFileNameRejectsEmpty(t *testing.T) {
	if _, err := SanitizeFileName("   "); err == nil {
		t.Fatal("expected blank name to be rejected")
	}
}

func TestHashUserKeyStable(t *testing.T) {
	a := HashUserKey("user-1")
	b := HashUserKey("user-1")
	if a != b {
		t.Fatalf("expected stable hash, got %q vs %q", a, b)
	}
	if a == HashUserKey("user-2") {
		t.Fatal("expected different users to hash differently")
	}
}
