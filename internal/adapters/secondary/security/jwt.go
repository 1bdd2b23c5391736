package security

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/HamdanRaza309/Social-Media-App-Backend/internal/core/domain"
)

// SessionClaims étend les claims standards JWT. Le token est
// auto-porté : tout ce qu'il faut pour authentifier tient dedans,
// aucune table de sessions côté serveur.
type SessionClaims struct {
	AccountID string `json:"account_id"`
	jwt.RegisteredClaims
}

type JWTProvider struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	ttl        time.Duration
	issuer     string
}

// NewJWTProvider charge les clés RSA depuis des chaînes PEM.
func NewJWTProvider(privateKeyPEM, publicKeyPEM []byte, ttl time.Duration) (*JWTProvider, error) {
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &JWTProvider{
		privateKey: privKey,
		publicKey:  pubKey,
		ttl:        ttl,
		issuer:     "social-media-backend",
	}, nil
}

// Issue signe un token de session liant l'ID du compte à une fenêtre
// de validité fixe.
func (j *JWTProvider) Issue(accountID string) (string, time.Duration, error) {
	now := time.Now()
	claims := SessionClaims{
		AccountID: accountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    j.issuer,
			Subject:   accountID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(j.privateKey)
	if err != nil {
		return "", 0, err
	}
	return token, j.ttl, nil
}

// Validate vérifie la signature et l'expiry, retourne l'AccountID.
// Les deux causes d'échec restent distinctes en interne
// (ErrTokenExpired vs ErrInvalidToken) même si le transport les expose
// uniformément en 403.
func (j *JWTProvider) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Vérifier que l'alg est bien RSA : empêche les attaques où
		// l'attaquant force l'algo à "none" ou "HS256".
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.publicKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrInvalidToken
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims.Subject, nil
	}
	return "", domain.ErrInvalidToken
}
