package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

// TestBcryptHasher_HashAndCompare はハッシュと照合の往復を検証する。
func TestBcryptHasher_HashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hashed, err := hasher.Hash("secret-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hashed == "secret-password" {
		t.Fatal("hash must not equal the raw password")
	}

	if err := hasher.Compare(hashed, "secret-password"); err != nil {
		t.Errorf("Compare with correct password returned error: %v", err)
	}
	if err := hasher.Compare(hashed, "wrong-password"); err == nil {
		t.Error("Compare with wrong password should return error")
	}
}

// TestBcryptHasher_HashIsSalted は同一パスワードのハッシュが毎回異なることを検証する。
func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	first, err := hasher.Hash("secret-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	second, err := hasher.Hash("secret-password")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password should differ (salt)")
	}
}

// TestNewBcryptHasher_OutOfRangeCost は範囲外のコストがデフォルトに丸められることを検証する。
func TestNewBcryptHasher_OutOfRangeCost(t *testing.T) {
	hasher := NewBcryptHasher(99)
	if hasher.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", hasher.cost, bcrypt.DefaultCost)
	}

	hasher = NewBcryptHasher(-1)
	if hasher.cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want %d", hasher.cost, bcrypt.DefaultCost)
	}
}
