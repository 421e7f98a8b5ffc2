package auth

import (
	"time"

	"shelf/config"
	domainerrors "shelf/internal/domain/errors"
	"shelf/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// legacySubjectClaim carries the user id in tokens minted before "sub" was adopted.
const legacySubjectClaim = "_id"

// jwtService verifies HS256-signed bearer tokens against the process-wide secret.
type jwtService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg == nil || cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return newJWTService(cfg.JWT.Secret, time.Now), nil
}

func newJWTService(secret string, now func() time.Time) *jwtService {
	return &jwtService{
		secret: []byte(secret),
		now:    now,
	}
}

// ValidateToken decodes the token, enforces expiry and signature, and returns its claims.
// Expiry is judged on the decoded payload before the signature verdict is applied.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	claims := jwt.MapClaims{}
	token, parseErr := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token has no usable exp claim")
	}
	if !s.now().Before(exp.Time) {
		return nil, domainerrors.ErrTokenExpired.WrapMessage("token expired at " + exp.Time.UTC().Format(time.RFC3339))
	}

	if parseErr != nil || token == nil || !token.Valid {
		return nil, errors.Wrap(domainerrors.ErrInvalidToken, errMessage(parseErr))
	}

	userID, err := subjectOf(claims)
	if err != nil {
		return nil, err
	}

	return &service.Claims{
		UserID:    userID,
		ExpiresAt: exp.Time,
	}, nil
}

func (s *jwtService) keyFunc(token *jwt.Token) (any, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrSignatureInvalid
	}

	return s.secret, nil
}

func subjectOf(claims jwt.MapClaims) (uuid.UUID, error) {
	subject, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidToken.WrapMessage("malformed sub claim")
	}
	if subject == "" {
		subject, _ = claims[legacySubjectClaim].(string)
	}
	if subject == "" {
		return uuid.Nil, domainerrors.ErrInvalidToken.WrapMessage("token has no subject")
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, domainerrors.ErrInvalidToken.WrapMessage("subject is not a user id")
	}

	return userID, nil
}

func errMessage(err error) string {
	if err == nil {
		return "token rejected"
	}

	return err.Error()
}
