package sessiontoken

import (
	"errors"
	"fmt"
	"time"
	e "yeonghwa/internal/core/domain/errors"
	"yeonghwa/internal/core/domain/user"

	"github.com/golang-jwt/jwt/v5"
)

// ClockSkewLeeway tolerates clocks of several instances being slightly apart.
const ClockSkewLeeway = time.Minute

type Claims struct {
	UserID string `json:"id"`
	jwt.RegisteredClaims
}

// JWT issues and verifies HS256 session tokens. With a zero ttl the tokens
// carry no expiry.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(secret string, ttl time.Duration, now func() time.Time) *JWT {
	if secret == "" {
		panic(e.NewInvalidStateError("JWT secret must not be empty"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &JWT{secret: []byte(secret), ttl: ttl, now: now}
}

func (j *JWT) IssueToken(userID user.ID) (token user.SessionToken, err error) {
	if userID == "" {
		return token, fmt.Errorf("could not issue session token: empty user id")
	}
	issuedAt := j.now()
	claims := Claims{
		UserID: string(userID),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
	}
	if j.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(j.ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		return token, fmt.Errorf("could not sign session token: %w", err)
	}
	return user.SessionToken(signed), nil
}

func (j *JWT) VerifyToken(token user.SessionToken) (userID user.ID, err error) {
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(
		string(token),
		claims,
		func(t *jwt.Token) (interface{}, error) { return j.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(j.now),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(ClockSkewLeeway),
	)
	if err != nil {
		return userID, fmt.Errorf("%w: %w", user.ErrInvalidSessionToken, err)
	}
	if claims.UserID == "" {
		return userID, fmt.Errorf("%w: %w", user.ErrInvalidSessionToken, errors.New("no user id claim"))
	}
	return user.ID(claims.UserID), nil
}
