package config

import (
	"strings"
	"testing"
)

func TestNewPasswordConfig(t *testing.T) {
	tests := []struct {
		name    string
		cost    int
		pepper  string
		wantErr bool
	}{
		{name: "default cost", cost: 12},
		{name: "with pepper", cost: 12, pepper: "test-pepper"},
		{name: "boundary cost 10", cost: 10},
		{name: "boundary cost 14", cost: 14},
		{name: "boundary cost 9 rejected", cost: 9, wantErr: true},
		{name: "boundary cost 15 rejected", cost: 15, wantErr: true},
		{name: "zero cost", cost: 0, wantErr: true},
		{name: "negative cost", cost: -5, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := NewPasswordConfig(tt.cost, tt.pepper)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPasswordConfig() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if config.BcryptCost != tt.cost {
				t.Errorf("NewPasswordConfig() BcryptCost = %v, want %v", config.BcryptCost, tt.cost)
			}
			if config.Pepper != tt.pepper {
				t.Errorf("NewPasswordConfig() Pepper = %v, want %v", config.Pepper, tt.pepper)
			}
		})
	}
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	config, err := NewPasswordConfig(10, "")
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	password := "test-password-123"
	hash, err := config.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "" || hash == password {
		t.Fatalf("HashPassword() returned %q", hash)
	}
	if !strings.HasPrefix(hash, "$2a$10$") {
		t.Errorf("HashPassword() hash %q does not carry cost 10", hash)
	}

	if !config.VerifyPassword(password, hash) {
		t.Error("VerifyPassword() should accept the original password")
	}
	if config.VerifyPassword("wrong-password", hash) {
		t.Error("VerifyPassword() should reject a wrong password")
	}

	second, err := config.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if second == hash {
		t.Error("HashPassword() should salt each hash")
	}
}

func TestPasswordConfig_Pepper(t *testing.T) {
	peppered, err := NewPasswordConfig(10, "server-secret")
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}
	plain, err := NewPasswordConfig(10, "")
	if err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	hash, err := peppered.HashPassword("password123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	if !peppered.VerifyPassword("password123", hash) {
		t.Error("VerifyPassword() should accept the password with the same pepper")
	}
	if plain.VerifyPassword("password123", hash) {
		t.Error("VerifyPassword() should reject the password without the pepper")
	}
}
