package main

import (
	"fmt"
	"os"
	"runtime"
	"syscall"

	"golang.org/x/term"
)

// PassphraseEnvVar overrides interactive prompting when set.
const PassphraseEnvVar = "OUROBOROS_STEGO_PASSPHRASE"

// zeroBytes overwrites a byte slice with zeros
func zeroBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// readPassphrase collects the passphrase from the environment or the
// terminal. With confirm set the user has to type it twice.
func readPassphrase(confirm bool) (string, error) {
	if envPass := os.Getenv(PassphraseEnvVar); envPass != "" {
		return envPass, nil
	}

	passphrase, err := readPassword("Passphrase: ")
	if err != nil {
		return "", err
	}

	if confirm {
		again, err := readPassword("Confirm passphrase: ")
		if err != nil {
			zeroBytes(passphrase)
			return "", err
		}
		match := string(passphrase) == string(again)
		zeroBytes(again)
		if !match {
			zeroBytes(passphrase)
			return "", fmt.Errorf("passphrases do not match")
		}
	}

	result := string(passphrase)
	zeroBytes(passphrase)
	return result, nil
}

func readPassword(prompt string) ([]byte, error) {
	fmt.Fprint(os.Stderr, prompt)

	var passphrase []byte
	var err error

	if term.IsTerminal(int(syscall.Stdin)) {
		passphrase, err = term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
	} else {
		// STDIN is piped, fall back to the controlling terminal.
		tty, ttyErr := os.Open("/dev/tty")
		if ttyErr != nil {
			return nil, fmt.Errorf("cannot read passphrase: STDIN is piped and /dev/tty is not available. Set %s", PassphraseEnvVar)
		}
		defer tty.Close()

		passphrase, err = term.ReadPassword(int(tty.Fd()))
		fmt.Fprintln(os.Stderr)
	}

	if err != nil {
		return nil, err
	}
	return passphrase, nil
}
