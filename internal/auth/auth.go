// Package auth provides Coinbase Advanced Trade API authentication using
// ES256-signed JWTs.
package auth

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"
	"strings"
)

// Credentials holds the CDP API key and EC private key for signing requests.
type Credentials struct {
	APIKey     string            // e.g. "organizations/{org_id}/apiKeys/{key_id}"
	PrivateKey *ecdsa.PrivateKey // P-256 private key for ES256 signing
}

// NewCredentials parses a PEM-encoded EC private key and returns credentials.
func NewCredentials(apiKey, privateKeyPEM string) (*Credentials, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if privateKeyPEM == "" {
		return nil, fmt.Errorf("private key is required")
	}

	key, err := ParsePrivateKey([]byte(privateKeyPEM))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	return &Credentials{APIKey: apiKey, PrivateKey: key}, nil
}

// LoadCredentials loads credentials from an API key and a private key file.
func LoadCredentials(apiKey, privateKeyPath string) (*Credentials, error) {
	if privateKeyPath == "" {
		return nil, fmt.Errorf("private key path is required")
	}

	data, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}

	return NewCredentials(apiKey, string(data))
}

// FromEnv loads credentials from COINBASE_API_KEY and COINBASE_PRIVATE_KEY.
// Escaped newlines in the private key value are expanded.
func FromEnv() (*Credentials, error) {
	apiKey := os.Getenv("COINBASE_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("COINBASE_API_KEY environment variable not set")
	}

	privateKey := os.Getenv("COINBASE_PRIVATE_KEY")
	if privateKey == "" {
		return nil, fmt.Errorf("COINBASE_PRIVATE_KEY environment variable not set")
	}

	return NewCredentials(apiKey, strings.ReplaceAll(privateKey, `\n`, "\n"))
}

// ParsePrivateKey parses a PEM-encoded EC private key.
// Both SEC1 ("EC PRIVATE KEY") and PKCS#8 ("PRIVATE KEY") blocks are accepted.
func ParsePrivateKey(pemData []byte) (*ecdsa.PrivateKey, error) {
	block, _ := pem.Decode(pemData)
	if block == nil {
		return nil, fmt.Errorf("failed to decode PEM block")
	}

	switch block.Type {
	case "EC PRIVATE KEY":
		return x509.ParseECPrivateKey(block.Bytes)

	case "PRIVATE KEY":
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parse PKCS#8 key: %w", err)
		}
		ecKey, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("key is not an EC private key")
		}
		return ecKey, nil

	default:
		return nil, fmt.Errorf("unsupported PEM block type %q", block.Type)
	}
}
