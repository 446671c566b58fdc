package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lmorazan/corresponsal-backend/internal/models"
)

// ErrInvalidToken covers a malformed, mis-signed, or expired token.
var ErrInvalidToken = errors.New("invalid token")

// AgentClaims is the JWT payload: the agent identity plus the branch
// and agency metadata embedded at login. The token is the only place
// this is persisted.
type AgentClaims struct {
	Username       string `json:"username"`
	Role           string `json:"role"`
	Agencia        string `json:"agencia"`
	Sucursal       string `json:"sucursal"`
	CodigoAgencia  string `json:"codigoAgencia"`
	CodigoSucursal string `json:"codigoSucursal"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies signed JWTs for correspondent agents.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret, issuer, and lifetime.
func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Generate issues a signed JWT embedding the agent identity.
func (t *TokenManager) Generate(agent models.Agent) (string, error) {
	now := time.Now()
	claims := AgentClaims{
		Username:       agent.Username,
		Role:           agent.Role,
		Agencia:        agent.Agencia,
		Sucursal:       agent.Sucursal,
		CodigoAgencia:  agent.CodigoAgencia,
		CodigoSucursal: agent.CodigoSucursal,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Subject:   agent.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses and validates a bearer token and returns the embedded
// agent. Any parse, signature, or expiry failure maps to ErrInvalidToken.
func (t *TokenManager) Verify(tokenString string) (models.Agent, error) {
	claims := &AgentClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return models.Agent{}, ErrInvalidToken
	}
	return models.Agent{
		Username:       claims.Username,
		Role:           claims.Role,
		Agencia:        claims.Agencia,
		Sucursal:       claims.Sucursal,
		CodigoAgencia:  claims.CodigoAgencia,
		CodigoSucursal: claims.CodigoSucursal,
	}, nil
}
