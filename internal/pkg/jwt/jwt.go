package jwt

import (
	"errors"
	"time"

	"github.com/cmlabs-hris/tuition-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

var (
	ErrInvalidToken     = errors.New("invalid or missing access token")
	ErrInvalidTokenType = errors.New("token is not an access token")
)

// Service verifies bearer tokens issued by the identity provider and turns
// their claims into an Actor. Tokens are HS256 with claims
// {user_id, role, type: "access", exp}.
type Service interface {
	JWTAuth() *jwtauth.JWTAuth
	GenerateAccessToken(actor user.Actor) (token string, expiresAt int64, err error)
	ActorFromClaims(claims map[string]interface{}) (user.Actor, error)
}

type JWTService struct {
	accessTokenExpirationTime time.Duration
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime time.Duration) Service {
	return &JWTService{
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// GenerateAccessToken signs a token for actor. Production tokens come from the
// identity provider; this is used by tests and local tooling.
func (j *JWTService) GenerateAccessToken(actor user.Actor) (token string, expiresAt int64, err error) {
	if err := actor.Validate(); err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(j.accessTokenExpirationTime).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": actor.UserID,
		"role":    string(actor.Role),
		"type":    "access",
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) ActorFromClaims(claims map[string]interface{}) (user.Actor, error) {
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return user.Actor{}, ErrInvalidTokenType
	}
	userID, _ := claims["user_id"].(string)
	role, _ := claims["role"].(string)

	actor := user.Actor{UserID: userID, Role: user.Role(role)}
	if err := actor.Validate(); err != nil {
		return user.Actor{}, ErrInvalidToken
	}
	return actor, nil
}
