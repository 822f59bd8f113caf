package utils

import (
    "testing"

    "github.com/golang-jwt/jwt/v5"

    "github.com/pochitasw/vetclinic/internal/model"
)

func TestAccessTokenRoundTrip(t *testing.T) {
    at, err := NewAccessToken("secret", 42, model.RoleVet, 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }

    parsed, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte("secret"), nil
    })
    if err != nil || !parsed.Valid {
        t.Fatalf("token did not verify: %v", err)
    }
    claims := parsed.Claims.(jwt.MapClaims)
    if sub, _ := claims["sub"].(float64); uint64(sub) != 42 {
        t.Errorf("sub = %v, want 42", claims["sub"])
    }
    if claims["role"] != "VETERINARIO" {
        t.Errorf("role = %v, want VETERINARIO", claims["role"])
    }
}

func TestAccessTokenWrongSecret(t *testing.T) {
    at, err := NewAccessToken("secret", 1, model.RoleAdmin, 15)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    if _, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
        return []byte("other"), nil
    }); err == nil {
        t.Fatal("token verified with the wrong secret")
    }
}

func TestRefreshTokenHashing(t *testing.T) {
    rt, err := NewRefreshToken(30)
    if err != nil {
        t.Fatalf("NewRefreshToken: %v", err)
    }
    if len(rt.Raw) != 96 {
        t.Fatalf("raw length = %d, want 96", len(rt.Raw))
    }
    h := HashRefreshRaw(rt.Raw)
    if h == rt.Raw {
        t.Error("hash equals the raw token")
    }
    if h != HashRefreshRaw(rt.Raw) {
        t.Error("hash is not deterministic")
    }

    other, err := NewRefreshToken(30)
    if err != nil {
        t.Fatalf("NewRefreshToken: %v", err)
    }
    if HashRefreshRaw(other.Raw) == h {
        t.Error("distinct tokens hashed to the same value")
    }
}

func TestPasswordHashing(t *testing.T) {
    hash, err := HashPassword("hunter22", 4)
    if err != nil {
        t.Fatalf("HashPassword: %v", err)
    }
    if !VerifyPassword(hash, "hunter22") {
        t.Error("correct password rejected")
    }
    if VerifyPassword(hash, "hunter23") {
        t.Error("wrong password accepted")
    }
}

func TestPasswordHashingCostFallback(t *testing.T) {
    // A zero cost must not error; it takes the library default.
    hash, err := HashPassword("hunter22", 0)
    if err != nil {
        t.Fatalf("HashPassword with zero cost: %v", err)
    }
    if !VerifyPassword(hash, "hunter22") {
        t.Error("correct password rejected")
    }
}
