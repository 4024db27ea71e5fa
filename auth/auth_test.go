// Copyright (c) 2025 Shane Orto.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			if err != nil {
				t.Fatalf("GenerateID() error = %v", err)
			}
			if len(id) != tt.wantLen {
				t.Errorf("GenerateID() length = %d, want %d", len(id), tt.wantLen)
			}
			// Verify it's valid hex
			for _, c := range id {
				if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
					t.Errorf("GenerateID() contains invalid hex char: %c", c)
				}
			}
		})
	}

	// Test randomness - two IDs should be different
	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	if id1 == id2 {
		t.Error("GenerateID() produced duplicate IDs (extremely unlikely)")
	}
}

func TestGenerateHostKey(t *testing.T) {
	tests := []struct {
		name    string
		eventID string
		salt    string
	}{
		{"standard", "event123", "secret-salt"},
		{"empty event id", "", "salt"},
		{"empty salt", "event456", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := GenerateHostKey(tt.eventID, tt.salt)

			if key == "" {
				t.Error("GenerateHostKey() returned empty string")
			}

			// Should be deterministic
			key2 := GenerateHostKey(tt.eventID, tt.salt)
			if key != key2 {
				t.Error("GenerateHostKey() is not deterministic")
			}

			// Different inputs should produce different keys
			if tt.eventID != "" && tt.salt != "" {
				differentKey := GenerateHostKey(tt.eventID+"x", tt.salt)
				if key == differentKey {
					t.Error("GenerateHostKey() produced same key for different event IDs")
				}
			}

			// No base64 padding
			if strings.Contains(key, "=") {
				t.Error("GenerateHostKey() contains padding")
			}
		})
	}
}

func TestValidateHostKey(t *testing.T) {
	eventID := "event789"
	salt := "validation-salt"
	key := GenerateHostKey(eventID, salt)

	tests := []struct {
		name    string
		eventID string
		key     string
		salt    string
		wantErr bool
	}{
		{"valid key", eventID, key, salt, false},
		{"wrong key", eventID, "bogus-key", salt, true},
		{"wrong event", "other-event", key, salt, true},
		{"wrong salt", eventID, key, "other-salt", true},
		{"empty key", eventID, "", salt, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHostKey(tt.eventID, tt.key, tt.salt)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHostKey() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewVoterToken(t *testing.T) {
	tok := NewVoterToken()
	if len(tok) != 36 {
		t.Errorf("NewVoterToken() length = %d, want 36 (uuid)", len(tok))
	}

	tok2 := NewVoterToken()
	if tok == tok2 {
		t.Error("NewVoterToken() produced duplicate tokens (extremely unlikely)")
	}
}

func TestGenerateShareSlug(t *testing.T) {
	slug := GenerateShareSlug("event123", "slug-salt")

	if slug == "" {
		t.Fatal("GenerateShareSlug() returned empty string")
	}

	// Deterministic
	if slug != GenerateShareSlug("event123", "slug-salt") {
		t.Error("GenerateShareSlug() is not deterministic")
	}

	// Different events produce different slugs
	if slug == GenerateShareSlug("event124", "slug-salt") {
		t.Error("GenerateShareSlug() produced same slug for different events")
	}

	// Base62 only
	for _, c := range slug {
		valid := (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !valid {
			t.Errorf("GenerateShareSlug() contains non-base62 char: %c", c)
		}
	}
}

func TestHashIP(t *testing.T) {
	hash := HashIP("192.168.1.1", "ip-salt")

	if len(hash) != 16 {
		t.Errorf("HashIP() length = %d, want 16", len(hash))
	}

	// Deterministic
	if hash != HashIP("192.168.1.1", "ip-salt") {
		t.Error("HashIP() is not deterministic")
	}

	// Salt matters
	if hash == HashIP("192.168.1.1", "other-salt") {
		t.Error("HashIP() ignored salt")
	}
}
