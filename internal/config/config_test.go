package config

import "testing"

func TestValidate_RequiresSecrets(t *testing.T) {
	cfg := Config{JWTSecret: "s", CaptchaSecret: "c"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}

	if err := (Config{CaptchaSecret: "c"}).Validate(); err == nil {
		t.Error("expected error when JWT_SECRET is missing")
	}
	if err := (Config{JWTSecret: "s"}).Validate(); err == nil {
		t.Error("expected error when RECAPTCHA_SECRET is missing")
	}
}

func TestParseCORSOrigins(t *testing.T) {
	got := parseCORSOrigins(" https://app.example.com, http://localhost:3000 ,")
	if len(got) != 2 || got[0] != "https://app.example.com" || got[1] != "http://localhost:3000" {
		t.Errorf("unexpected origins: %#v", got)
	}
	if parseCORSOrigins("") != nil {
		t.Error("empty input must return nil")
	}
}

func TestDatabaseURL(t *testing.T) {
	cfg := Config{DBUser: "u", DBPass: "p", DBHost: "h", DBPort: "5432", DBName: "d"}
	want := "postgres://u:p@h:5432/d?sslmode=disable"
	if got := cfg.DatabaseURL(); got != want {
		t.Errorf("DatabaseURL: got %q, want %q", got, want)
	}
}
