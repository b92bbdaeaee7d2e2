// Command set-password interactively sets the gateway's API password: it
// argon2id-hashes the entered password, rewrites api.password_hash in
// config.toml, and deletes the persisted session key so cookies issued under
// the old password stop working.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"golang.org/x/term"

	"github.com/lngateway/lngateway/lib/security"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	raw, err := os.ReadFile(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", configPath, err)
		os.Exit(1)
	}

	var doc map[string]interface{}
	if err := toml.Unmarshal(raw, &doc); err != nil {
		fmt.Fprintf(os.Stderr, "cannot parse %s: %v\n", configPath, err)
		os.Exit(1)
	}

	password, err := promptPassword()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hashing failed: %v\n", err)
		os.Exit(1)
	}

	api, ok := doc["api"].(map[string]interface{})
	if !ok {
		api = map[string]interface{}{}
		doc["api"] = api
	}
	api["password_hash"] = hash

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
		fmt.Fprintf(os.Stderr, "cannot encode config: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(configPath, buf.Bytes(), 0o600); err != nil {
		fmt.Fprintf(os.Stderr, "cannot write %s: %v\n", configPath, err)
		os.Exit(1)
	}
	fmt.Printf("Password hash updated in %s\n", configPath)

	// Old cookies must die with the old password.
	keyPath := os.Getenv("SESSION_KEY_PATH")
	if keyPath == "" {
		keyPath = "session_key.bin"
	}
	if err := os.Remove(keyPath); err == nil {
		fmt.Printf("Deleted old session key: %s\n", keyPath)
	} else if !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "cannot delete %s: %v\n", keyPath, err)
		os.Exit(1)
	}
}

func promptPassword() (string, error) {
	fmt.Print("Enter new password: ")
	first, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	fmt.Print("Confirm password: ")
	second, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	if len(first) == 0 {
		return "", fmt.Errorf("password must not be empty")
	}
	return string(first), nil
}
