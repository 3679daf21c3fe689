package auth

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// TokenTTL is the validity window of a signed JWT. Tokens are minted
	// fresh for every request and never reused near expiry.
	TokenTTL = 120 * time.Second

	jwtIssuer  = "cdp"
	jwtRESTURI = "api.coinbase.com"
)

type jwtHeader struct {
	Alg   string `json:"alg"`
	Kid   string `json:"kid"`
	Nonce string `json:"nonce"`
	Typ   string `json:"typ"`
}

type jwtClaims struct {
	Iss string `json:"iss"`
	Sub string `json:"sub"`
	Nbf int64  `json:"nbf"`
	Exp int64  `json:"exp"`
	URI string `json:"uri,omitempty"`
}

// SignRequest generates a JWT for a REST request. The URI claim binds the
// token to "<METHOD> api.coinbase.com<path>".
func (c *Credentials) SignRequest(method, path string) (string, error) {
	uri := fmt.Sprintf("%s %s%s", strings.ToUpper(method), jwtRESTURI, path)
	return c.sign(uri)
}

// SignWS generates a JWT for WebSocket authentication. WebSocket tokens
// carry no URI claim.
func (c *Credentials) SignWS() (string, error) {
	return c.sign("")
}

func (c *Credentials) sign(uri string) (string, error) {
	now := time.Now().Unix()

	header := jwtHeader{
		Alg:   "ES256",
		Kid:   c.APIKey,
		Nonce: strings.ReplaceAll(uuid.NewString(), "-", ""),
		Typ:   "JWT",
	}
	claims := jwtClaims{
		Iss: jwtIssuer,
		Sub: c.APIKey,
		Nbf: now,
		Exp: now + int64(TokenTTL/time.Second),
		URI: uri,
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("encode header: %w", err)
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encode claims: %w", err)
	}

	signingInput := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(claimsJSON)

	signature, err := signES256(c.PrivateKey, []byte(signingInput))
	if err != nil {
		return "", err
	}

	return signingInput + "." + base64.RawURLEncoding.EncodeToString(signature), nil
}

// signES256 signs data with ECDSA P-256/SHA-256 and returns the JOSE
// fixed-size r||s signature encoding.
func signES256(key *ecdsa.PrivateKey, data []byte) ([]byte, error) {
	hashed := sha256.Sum256(data)

	r, s, err := ecdsa.Sign(rand.Reader, key, hashed[:])
	if err != nil {
		return nil, fmt.Errorf("sign jwt: %w", err)
	}

	// Each component is left-padded to the 32-byte curve order size.
	sig := make([]byte, 64)
	r.FillBytes(sig[:32])
	s.FillBytes(sig[32:])
	return sig, nil
}
