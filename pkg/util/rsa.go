package util

import (
	"crypto/rsa"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// InitRSAPrivateKey parses a PKCS#1 or PKCS#8 PEM encoded RSA private key.
func InitRSAPrivateKey(pemKey string) (*rsa.PrivateKey, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(pemKey))
	if err != nil {
		return nil, errors.Wrap(err, "parse rsa private key")
	}
	return key, nil
}
