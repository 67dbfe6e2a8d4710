package auth

import (
	"testing"

	"venturemeter/internal/statestore"
)

func TestDisabledGatePassesThrough(t *testing.T) {
	g := NewGate(statestore.NewMemoryKV(), "")

	if g.Enabled() {
		t.Error("gate with empty password must be disabled")
	}
	ok, err := g.Authenticated()
	if err != nil || !ok {
		t.Errorf("Authenticated() = %v, %v; want true", ok, err)
	}
	ok, err = g.Authenticate("anything")
	if err != nil || !ok {
		t.Errorf("Authenticate() = %v, %v; want true", ok, err)
	}
}

func TestAuthenticateAndPersist(t *testing.T) {
	kv := statestore.NewMemoryKV()
	g := NewGate(kv, "open-sesame")

	ok, err := g.Authenticated()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("fresh install must not be authenticated")
	}

	ok, err = g.Authenticate("wrong")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("wrong password accepted")
	}

	ok, err = g.Authenticate("open-sesame")
	if err != nil || !ok {
		t.Fatalf("Authenticate() = %v, %v; want true", ok, err)
	}

	// A new gate over the same store sees the marker.
	again := NewGate(kv, "open-sesame")
	ok, err = again.Authenticated()
	if err != nil || !ok {
		t.Errorf("Authenticated() after restart = %v, %v; want true", ok, err)
	}
}

func TestPasswordChangeInvalidatesMarker(t *testing.T) {
	kv := statestore.NewMemoryKV()
	g := NewGate(kv, "first")
	if ok, _ := g.Authenticate("first"); !ok {
		t.Fatal("setup authentication failed")
	}

	rotated := NewGate(kv, "second")
	ok, err := rotated.Authenticated()
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("rotated password must invalidate the old marker")
	}
}

func TestRevoke(t *testing.T) {
	kv := statestore.NewMemoryKV()
	g := NewGate(kv, "pw")
	if ok, _ := g.Authenticate("pw"); !ok {
		t.Fatal("setup authentication failed")
	}
	if err := g.Revoke(); err != nil {
		t.Fatal(err)
	}
	if ok, _ := g.Authenticated(); ok {
		t.Error("revoked gate still authenticated")
	}
}
