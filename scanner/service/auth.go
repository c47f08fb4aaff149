package service

import (
	"context"
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/procwarden/procwarden/config"
	"github.com/procwarden/procwarden/pkg/logger"
	"github.com/procwarden/procwarden/pkg/util"
	"github.com/procwarden/procwarden/scanner/domain"
	"go.uber.org/fx"
)

const (
	tokenIssuer            = "procwarden"
	defaultTokenDurationHr = 24
)

// AuthService issues and verifies RS256 bearer tokens for scanner operators.
type AuthService struct {
	enabled      bool
	key          *rsa.PrivateKey
	passwordHash string
	tokenTTL     time.Duration
	now          func() time.Time
}

type AuthParams struct {
	fx.In
	Config config.AuthConfig
}

func NewAuthenticator(params AuthParams) (domain.Authenticator, error) {
	return NewAuthService(params.Config)
}

// NewAuthService returns a disabled service when auth.enabled is off.
func NewAuthService(cfg config.AuthConfig) (*AuthService, error) {
	if !cfg.Enabled {
		return &AuthService{now: time.Now}, nil
	}
	pemKey, err := cfg.PrivateKeyPEM()
	if err != nil {
		return nil, err
	}
	key, err := util.InitRSAPrivateKey(pemKey)
	if err != nil {
		return nil, err
	}
	durationHr := cfg.TokenDurationHr
	if durationHr <= 0 {
		durationHr = defaultTokenDurationHr
	}
	return &AuthService{
		enabled:      true,
		key:          key,
		passwordHash: string(cfg.OperatorPasswordHash),
		tokenTTL:     time.Duration(durationHr) * time.Hour,
		now:          time.Now,
	}, nil
}

func (svc *AuthService) Enabled() bool {
	return svc.enabled
}

// IssueToken checks the operator password and signs a token for clientID.
func (svc *AuthService) IssueToken(ctx context.Context, clientID, password string) (string, time.Time, error) {
	if !svc.enabled {
		return "", time.Time{}, domain.ErrAuthDisabled
	}
	if clientID == "" {
		return "", time.Time{}, errors.Wrap(domain.ErrInvalidCredentials, "client_id is required")
	}
	ok, err := util.ComparePasswordAndHash(password, svc.passwordHash)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "verify operator password")
	}
	if !ok {
		logger.Logger(ctx).Warn().Str("client_id", clientID).Msg("operator password rejected")
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	now := svc.now()
	expiresAt := now.Add(svc.tokenTTL)
	claims := domain.Claims{
		ClientID: clientID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   clientID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tokenStr, err := token.SignedString(svc.key)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "sign token")
	}
	return tokenStr, expiresAt, nil
}

// VerifyToken validates signature, issuer and time claims.
func (svc *AuthService) VerifyToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	if !svc.enabled {
		return nil, domain.ErrAuthDisabled
	}
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return &svc.key.PublicKey, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithTimeFunc(svc.now))
	if err != nil {
		return nil, errors.Wrap(domain.ErrInvalidToken, err.Error())
	}
	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
