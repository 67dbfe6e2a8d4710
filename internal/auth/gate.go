// Package auth implements the optional password gate in front of the
// assessment. With no password configured the gate is disabled and every
// session passes straight through.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"os"

	"venturemeter/internal/statestore"
)

// DefaultKey is where the authenticated-session marker is persisted.
const DefaultKey = "venture-meter-auth"

// PasswordEnv configures the gate password. Empty disables the gate.
const PasswordEnv = "VENTUREMETER_PASSWORD"

// Gate checks a shared password once per install and remembers success
// across sessions. The marker stores a digest of the password, so changing
// the password invalidates previously authenticated sessions.
type Gate struct {
	kv       statestore.KV
	key      string
	password string
}

// NewGate creates a gate over kv. An empty password disables it.
func NewGate(kv statestore.KV, password string) *Gate {
	return &Gate{kv: kv, key: DefaultKey, password: password}
}

// PasswordFromEnv reads the configured gate password.
func PasswordFromEnv() string {
	return os.Getenv(PasswordEnv)
}

// Enabled reports whether a password is configured.
func (g *Gate) Enabled() bool {
	return g.password != ""
}

// Authenticated reports whether this install already passed the gate.
// A disabled gate is always authenticated.
func (g *Gate) Authenticated() (bool, error) {
	if !g.Enabled() {
		return true, nil
	}
	marker, ok, err := g.kv.Get(g.key)
	if err != nil {
		return false, err
	}
	return ok && marker == g.digest(), nil
}

// Authenticate checks input against the configured password and persists
// the marker on success.
func (g *Gate) Authenticate(input string) (bool, error) {
	if !g.Enabled() {
		return true, nil
	}
	if subtle.ConstantTimeCompare([]byte(input), []byte(g.password)) != 1 {
		return false, nil
	}
	if err := g.kv.Set(g.key, g.digest()); err != nil {
		return false, err
	}
	return true, nil
}

// Revoke clears the persisted marker.
func (g *Gate) Revoke() error {
	return g.kv.Remove(g.key)
}

func (g *Gate) digest() string {
	sum := sha256.Sum256([]byte(g.password))
	return hex.EncodeToString(sum[:])
}
