package auth

import "testing"

func TestHashPassword_DistinctSalts(t *testing.T) {
	t.Parallel()

	h1, err := HashPassword("p1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("p1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Fatalf("expected distinct hashes for identical input, got %q twice", h1)
	}
}

func TestCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("p1")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if !CheckPassword("p1", hash) {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPassword("p2", hash) {
		t.Fatalf("expected mismatched password to fail")
	}
	if CheckPassword("p1", "not-a-bcrypt-hash") {
		t.Fatalf("expected malformed hash to verify as false")
	}
}
