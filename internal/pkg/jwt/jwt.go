package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/punchd-app/punchd-backend-go/internal/domain/worker"
)

// Service issues and verifies the access tokens the API runs on. The login
// flows live elsewhere; the core only needs verification and the claim set
// that identifies an actor.
type Service interface {
	GenerateAccessToken(workerID string, companyID string, role worker.Role) (token string, expiresAt int64, err error)

	// GenerateSSEToken issues a short-lived token for stream connections,
	// which cannot carry an Authorization header.
	GenerateSSEToken(workerID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (workerID string, err error)

	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(workerID string, companyID string, role worker.Role) (string, int64, error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt := time.Now().Add(expDuration).Unix()

	claims := map[string]interface{}{
		"worker_id":  workerID,
		"company_id": companyID,
		"role":       string(role),
		"type":       "access",
		"exp":        expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresAt, nil
}

// GenerateSSEToken issues a five minute token bound to one worker.
func (j *JWTService) GenerateSSEToken(workerID string) (string, int, error) {
	expiresIn := 300
	expiresAt := time.Now().Add(time.Duration(expiresIn) * time.Second).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"worker_id": workerID,
		"type":      "sse",
		"exp":       expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateSSEToken checks an SSE token and returns the worker it belongs to.
func (j *JWTService) ValidateSSEToken(tokenString string) (string, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "sse" {
		return "", jwt.ErrInvalidJWT()
	}

	workerIDVal, ok := token.Get("worker_id")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	workerID, ok := workerIDVal.(string)
	if !ok || workerID == "" {
		return "", jwt.ErrInvalidJWT()
	}

	return workerID, nil
}
