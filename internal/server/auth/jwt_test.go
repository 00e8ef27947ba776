package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/ledgerkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndValidate_Success(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("super-secret"), time.Hour)
	userID := "user-123"

	tok, err := issuer.Issue(userID)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	gotUserID, err := issuer.Validate(tok)
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if gotUserID != userID {
		t.Fatalf("userID mismatch: got %q want %q", gotUserID, userID)
	}
}

func TestIssue_EmptyUserID(t *testing.T) {
	t.Parallel()

	if _, err := NewTokenIssuer([]byte("k"), time.Hour).Issue(""); err == nil {
		t.Fatalf("expected error for empty user id")
	}
}

func TestIssue_ZeroValidityHasNoExpiry(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("k"), 0)
	tok, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		t.Fatalf("ParseUnverified: %v", err)
	}
	if claims.ExpiresAt != nil {
		t.Fatalf("expected no exp claim, got %v", claims.ExpiresAt)
	}
	if claims.IssuedAt == nil {
		t.Fatalf("expected iat claim")
	}

	// far in the future it is still accepted
	issuer.now = func() time.Time { return time.Now().Add(24 * 365 * time.Hour) }
	if _, err := issuer.Validate(tok); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("secret"), time.Minute)
	tok, err := issuer.Issue("u1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	issuer.now = func() time.Time { return time.Now().Add(time.Hour) }

	_, err = issuer.Validate(tok)
	if err == nil {
		t.Fatalf("expected error for expired token, got nil")
	}
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected common.ErrTokenExpired, got %v", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewTokenIssuer([]byte("right-secret"), time.Hour).Issue("u2")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = NewTokenIssuer([]byte("wrong-secret"), time.Hour).Validate(tok)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestValidate_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	claims := Claims{UserID: "u3"}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}

	issuer := NewTokenIssuer(secret, time.Hour)
	for name, tok := range map[string]string{"HS512": hs512, "none": none} {
		if _, err := issuer.Validate(tok); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("%s: expected common.ErrInvalidToken, got %v", name, err)
		}
	}
}

func TestValidate_EmptyUserIDClaim(t *testing.T) {
	t.Parallel()

	secret := []byte("k")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewTokenIssuer(secret, time.Hour).Validate(tok); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected common.ErrInvalidToken, got %v", err)
	}
}

func TestValidate_MalformedAndEmpty(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer([]byte("k"), time.Hour)
	for _, tok := range []string{"", "not.a.jwt", "garbage"} {
		if _, err := issuer.Validate(tok); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("%q: expected common.ErrInvalidToken, got %v", tok, err)
		}
	}
}
