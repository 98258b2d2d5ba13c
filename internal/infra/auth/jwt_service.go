package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"emotionai/config"
	domainerrors "emotionai/internal/domain/errors"
	"emotionai/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using
// HS256-signed JWTs. The signing secret is injected once at construction and
// never logged.
type jwtService struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewJWTService is the constructor for jwtService. It fails with
// ErrMissingSecret when no signing secret is configured.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Token == "" {
		return nil, domainerrors.ErrMissingSecret.WrapMessage("token signing secret is empty")
	}

	ttl := time.Duration(0)
	if cfg.Auth != nil {
		ttl = cfg.Auth.AccessTokenTTL
	}
	if ttl <= 0 {
		ttl = 60 * time.Minute
	}

	return &jwtService{
		secret:     []byte(cfg.SecretKey.Token),
		defaultTTL: ttl,
	}, nil
}

// Issue signs the given claims with the default TTL.
func (s *jwtService) Issue(claims map[string]any) (string, error) {
	return s.IssueWithTTL(claims, s.defaultTTL)
}

// IssueWithTTL signs the given claims with an explicit time-to-live. The
// subject is coerced to its string form before signing: resolution later
// depends on exact string equality, so a numeric account id must become its
// decimal representation here, not at lookup time.
func (s *jwtService) IssueWithTTL(claims map[string]any, ttl time.Duration) (string, error) {
	sub, ok := claims["sub"]
	if !ok {
		return "", errors.New("claims must include a subject")
	}

	mapClaims := jwt.MapClaims{}
	for k, v := range claims {
		mapClaims[k] = v
	}
	mapClaims["sub"] = coerceSubject(sub)
	mapClaims["exp"] = time.Now().Add(ttl).Unix()
	mapClaims["iat"] = time.Now().Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks signature validity and expiration. Every failure collapses
// into the result's Failure field; no jwt library error escapes this boundary.
func (s *jwtService) Verify(tokenString string) service.VerifyResult {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})

	if err != nil {
		return service.VerifyResult{Failure: classifyVerifyError(err)}
	}
	if !token.Valid {
		return service.VerifyResult{Failure: service.FailureSignature}
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return service.VerifyResult{Failure: service.FailureMalformed}
	}

	claims := &service.Claims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.Subject = sub
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return service.VerifyResult{Claims: claims}
}

// coerceSubject converts any subject value to its canonical string form.
func coerceSubject(sub any) string {
	switch v := sub.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		// JSON-decoded numbers arrive as float64; account ids are integral.
		return strconv.FormatInt(int64(v), 10)
	default:
		return fmt.Sprint(v)
	}
}

func classifyVerifyError(err error) service.VerifyFailure {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return service.FailureExpired
	case errors.Is(err, jwt.ErrSignatureInvalid), errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return service.FailureSignature
	default:
		return service.FailureMalformed
	}
}
