package passgen

import (
	"strings"
	"testing"
)

func TestPasswordLength(t *testing.T) {
	for _, length := range []int{4, 8, 16, 64} {
		pw, err := Password(length, Options{})
		if err != nil {
			t.Fatalf("Password(%d) failed: %v", length, err)
		}
		if len(pw) != length {
			t.Errorf("expected length %d, got %d", length, len(pw))
		}
	}
}

func TestPasswordMinimumLength(t *testing.T) {
	pw, err := Password(1, Options{})
	if err != nil {
		t.Fatalf("Password failed: %v", err)
	}
	if len(pw) != 4 {
		t.Errorf("expected short requests to be raised to 4, got %d", len(pw))
	}
}

func TestPasswordContainsEveryEnabledClass(t *testing.T) {
	for i := 0; i < 20; i++ {
		pw, err := Password(8, Options{})
		if err != nil {
			t.Fatalf("Password failed: %v", err)
		}
		for _, class := range []string{lowercase, uppercase, digits, symbols} {
			if !strings.ContainsAny(pw, class) {
				t.Errorf("password %q missing a character from class %q", pw, class[:5])
			}
		}
	}
}

func TestPasswordRespectsDisabledClasses(t *testing.T) {
	pw, err := Password(32, Options{NoSymbols: true, NoUppercase: true})
	if err != nil {
		t.Fatalf("Password failed: %v", err)
	}
	if strings.ContainsAny(pw, symbols) {
		t.Errorf("password %q contains disabled symbols", pw)
	}
	if strings.ContainsAny(pw, uppercase) {
		t.Errorf("password %q contains disabled uppercase", pw)
	}
}

func TestPasswordAllClassesDisabled(t *testing.T) {
	if _, err := Password(16, Options{NoLowercase: true, NoUppercase: true, NoDigits: true, NoSymbols: true}); err == nil {
		t.Error("expected error with every class disabled, got nil")
	}
}

func TestPasswordNotRepeating(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 10; i++ {
		pw, err := Password(16, Options{})
		if err != nil {
			t.Fatalf("Password failed: %v", err)
		}
		if seen[pw] {
			t.Fatalf("duplicate password generated: %q", pw)
		}
		seen[pw] = true
	}
}

func TestPassphrase(t *testing.T) {
	phrase, err := Passphrase(4, "-")
	if err != nil {
		t.Fatalf("Passphrase failed: %v", err)
	}

	words := strings.Split(phrase, "-")
	if len(words) != 4 {
		t.Fatalf("expected 4 words, got %d (%q)", len(words), phrase)
	}
	for _, w := range words {
		if w == "" {
			t.Errorf("empty word in passphrase %q", phrase)
		}
	}
}

func TestPassphraseMinimumCount(t *testing.T) {
	phrase, err := Passphrase(0, " ")
	if err != nil {
		t.Fatalf("Passphrase failed: %v", err)
	}
	if phrase == "" {
		t.Error("expected at least one word")
	}
}
