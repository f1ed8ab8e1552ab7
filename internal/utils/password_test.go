package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("expected hash to differ from plaintext")
	}
	if !CheckPasswordHash("s3cret", hash) {
		t.Fatal("expected matching password to verify")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Fatal("expected wrong password to fail")
	}
}
