package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueVerify(t *testing.T) {
	signer, err := NewSigner("secret", nil, 0)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}

	token, err := signer.Issue(Identity{Username: "alice", UserID: 7})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	identity, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if identity.Username != "alice" || identity.UserID != 7 {
		t.Errorf("got identity=%+v, expected alice/7", identity)
	}
}

func TestTokenWithoutTTLNeverExpires(t *testing.T) {
	signer, _ := NewSigner("secret", nil, 0)
	token, _ := signer.Issue(Identity{Username: "alice", UserID: 7})

	signer.now = func() time.Time { return time.Now().Add(100 * 365 * 24 * time.Hour) }
	if _, err := signer.Verify(token); err != nil {
		t.Errorf("got err=%v, expected token without exp to stay valid", err)
	}
}

func TestTokenExpires(t *testing.T) {
	signer, _ := NewSigner("secret", nil, time.Hour)
	token, _ := signer.Issue(Identity{Username: "alice", UserID: 7})

	signer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := signer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("got err=%v, expected %v", err, ErrInvalidToken)
	}
}

func TestVerifyRejects(t *testing.T) {
	signer, _ := NewSigner("secret", nil, 0)
	other, _ := NewSigner("other", nil, 0)
	good, _ := signer.Issue(Identity{Username: "alice", UserID: 7})
	foreign, _ := other.Issue(Identity{Username: "alice", UserID: 7})

	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	none := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Username: "alice", UserID: 7})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	noIdentity := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{})
	anonymous, _ := noIdentity.SignedString([]byte("secret"))

	var tests = []struct {
		name   string
		token  string
		expect error
	}{
		{"empty", "", ErrMissingToken},
		{"malformed", "not-a-token", ErrInvalidToken},
		{"wrong secret", foreign, ErrInvalidToken},
		{"tampered", tampered, ErrInvalidToken},
		{"alg none", unsigned, ErrInvalidToken},
		{"no identity", anonymous, ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := signer.Verify(tt.token); !errors.Is(err, tt.expect) {
				t.Errorf("got err=%v, expected %v", err, tt.expect)
			}
		})
	}
}

func TestSecretRotation(t *testing.T) {
	old, _ := NewSigner("old", nil, 0)
	token, _ := old.Issue(Identity{Username: "alice", UserID: 7})

	rotated, err := NewSigner("new", []string{"old"}, 0)
	if err != nil {
		t.Fatalf("new signer: %v", err)
	}
	if _, err := rotated.Verify(token); err != nil {
		t.Errorf("got err=%v, expected token signed with previous secret to verify", err)
	}

	fresh, _ := rotated.Issue(Identity{Username: "alice", UserID: 7})
	if _, err := old.Verify(fresh); err == nil {
		t.Errorf("expected old signer to reject token signed with the new secret")
	}
}

func TestNewSignerRequiresSecret(t *testing.T) {
	if _, err := NewSigner("", []string{"old"}, 0); err == nil {
		t.Errorf("expected error for empty secret")
	}
}
