package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongGame    = errors.New("token was issued for another game")
)

// ViewClaims grants read-only access to the snapshot of one game.
type ViewClaims struct {
	GameID string `json:"game_id"`
	jwt.RegisteredClaims
}

// ViewTokenIssuer signs and checks HS256 view tokens.
type ViewTokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewViewTokenIssuer(secret string, ttl time.Duration) *ViewTokenIssuer {
	return &ViewTokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue creates a view token for gameID.
func (i *ViewTokenIssuer) Issue(gameID string) (string, error) {
	now := i.now()
	claims := &ViewClaims{
		GameID: gameID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   gameID,
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Validate parses tokenString and returns its claims.
func (i *ViewTokenIssuer) Validate(tokenString string) (*ViewClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ViewClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now))

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*ViewClaims); ok && token.Valid && claims.GameID != "" {
		return claims, nil
	}

	return nil, ErrInvalidToken
}

// ValidateForGame validates tokenString and checks it was issued for gameID.
func (i *ViewTokenIssuer) ValidateForGame(tokenString, gameID string) (*ViewClaims, error) {
	claims, err := i.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.GameID != gameID {
		return nil, ErrWrongGame
	}
	return claims, nil
}
