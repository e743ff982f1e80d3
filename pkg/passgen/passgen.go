// Package passgen generates random passphrases. It is a convenience
// collaborator for callers that want a strong passphrase suggested to them;
// the engine itself never depends on it.
package passgen

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	lowercase = "abcdefghijklmnopqrstuvwxyz"
	uppercase = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digits    = "0123456789"
	symbols   = "!@#$%^&*()-_=+[]{}|;:,.<>?"

	minLength = 4
)

// Options selects the character classes a generated password draws from.
// The zero value enables everything.
type Options struct {
	NoLowercase bool
	NoUppercase bool
	NoDigits    bool
	NoSymbols   bool
}

// Password generates a random password of the given length with at least
// one character from every enabled class. Lengths below 4 are raised to 4.
func Password(length int, opts Options) (string, error) {
	if length < minLength {
		length = minLength
	}

	var pool string
	var required []byte

	classes := []struct {
		disabled bool
		chars    string
	}{
		{opts.NoLowercase, lowercase},
		{opts.NoUppercase, uppercase},
		{opts.NoDigits, digits},
		{opts.NoSymbols, symbols},
	}
	for _, class := range classes {
		if class.disabled {
			continue
		}
		pool += class.chars
		c, err := pick(class.chars)
		if err != nil {
			return "", err
		}
		required = append(required, c)
	}

	if pool == "" {
		return "", fmt.Errorf("no character classes enabled")
	}

	chars := required
	for len(chars) < length {
		c, err := pick(pool)
		if err != nil {
			return "", err
		}
		chars = append(chars, c)
	}

	if err := shuffle(chars); err != nil {
		return "", err
	}
	return string(chars[:length]), nil
}

// Passphrase joins count random words from the built-in list, giving each
// word a one-in-three chance of a digit suffix.
func Passphrase(count int, separator string) (string, error) {
	if count < 1 {
		count = 1
	}

	words := make([]string, 0, count)
	for i := 0; i < count; i++ {
		idx, err := randInt(len(wordList))
		if err != nil {
			return "", err
		}
		word := wordList[idx]

		suffix, err := randInt(3)
		if err != nil {
			return "", err
		}
		if suffix == 0 {
			d, err := randInt(10)
			if err != nil {
				return "", err
			}
			word = fmt.Sprintf("%s%d", word, d)
		}
		words = append(words, word)
	}

	return strings.Join(words, separator), nil
}

func pick(pool string) (byte, error) {
	idx, err := randInt(len(pool))
	if err != nil {
		return 0, err
	}
	return pool[idx], nil
}

func shuffle(chars []byte) error {
	for i := len(chars) - 1; i > 0; i-- {
		j, err := randInt(i + 1)
		if err != nil {
			return err
		}
		chars[i], chars[j] = chars[j], chars[i]
	}
	return nil
}

func randInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to draw randomness: %w", err)
	}
	return int(v.Int64()), nil
}

var wordList = []string{
	"anchor", "basalt", "cobalt", "drift", "ember", "falcon", "glacier",
	"harbor", "ivory", "juniper", "kestrel", "lantern", "meadow", "nebula",
	"orchid", "pepper", "quartz", "raven", "saddle", "thicket", "umber",
	"velvet", "willow", "xenon", "yonder", "zephyr", "bramble", "cinder",
	"dapple", "elm", "fjord", "garnet", "hollow", "inlet", "jasper",
	"knoll", "larch", "mica", "nectar", "osprey", "pine", "quill",
	"ridge", "spruce", "tundra", "upland", "vista", "wren",
}
