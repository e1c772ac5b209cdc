package utils

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestGenerateAndParseToken_Admin(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("admin@x.com", true, "", "super-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, "super-secret")
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims["email"] != "admin@x.com" {
		t.Fatalf("email mismatch: got %v", claims["email"])
	}
	if claims["isAdmin"] != true {
		t.Fatalf("expected isAdmin=true, got %v", claims["isAdmin"])
	}
}

func TestGenerateAndParseToken_Student(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("s@x.com", false, "abc123", "super-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, "super-secret")
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims["studentId"] != "abc123" {
		t.Fatalf("studentId mismatch: got %v", claims["studentId"])
	}
	if _, ok := claims["isAdmin"]; ok {
		t.Fatalf("student token must not carry isAdmin")
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("a@x.com", true, "", "secret", -time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ParseToken(tok, "secret"); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken("a@x.com", true, "", "right-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ParseToken(tok, "wrong-secret"); err == nil {
		t.Fatal("expected error for wrong secret, got nil")
	}
}

func TestGenerateToken_EmptySecret(t *testing.T) {
	t.Parallel()

	if _, err := GenerateToken("a@x.com", true, "", "", time.Hour); err == nil {
		t.Fatal("expected error for empty secret, got nil")
	}
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"missing header", "", "", true},
		{"no bearer prefix", "abc.def.ghi", "", true},
		{"wrong scheme", "Basic abc", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			got, err := BearerToken(r)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("BearerToken error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("token mismatch: got %q want %q", got, tt.want)
			}
		})
	}
}

func TestHashAndComparePasswords(t *testing.T) {
	t.Parallel()

	digest, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if digest == "s3cret" {
		t.Fatal("digest must not equal the plaintext")
	}
	if !ComparePasswords(digest, "s3cret") {
		t.Fatal("correct password rejected")
	}
	if ComparePasswords(digest, "wrong") {
		t.Fatal("wrong password accepted")
	}
}
