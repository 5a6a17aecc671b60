package appjwt

import (
	"crypto/rsa"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type AppJWT struct {
	key           *rsa.PrivateKey
	signingMethod *jwt.SigningMethodRSA
	issuer        string
}

// NewAppJWT reads the RSA private key from the given pem file. The key and
// the issuer are injected here once, nothing reads the env later.
func NewAppJWT(privateKeyPath, issuer string) (*AppJWT, error) {
	privateKeyFileBytes, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, err
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyFileBytes)
	if err != nil {
		return nil, err
	}

	return &AppJWT{key: privateKey, signingMethod: jwt.SigningMethodRS512, issuer: issuer}, nil
}

type VerificationClaims struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Channel string `json:"channel"`
	jwt.RegisteredClaims
}

func (a *AppJWT) GenWithClaims(tokenExpAt time.Time, claims VerificationClaims, subject string) (string, error) {
	timeNow := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(tokenExpAt),
		IssuedAt:  jwt.NewNumericDate(timeNow),
		NotBefore: jwt.NewNumericDate(timeNow),
		Issuer:    a.issuer,
		Subject:   subject,
		ID:        uuid.NewString(),
	}

	jwtToken := jwt.NewWithClaims(a.signingMethod, claims)

	sToken, err := jwtToken.SignedString(a.key)
	if err != nil {
		return "", err
	}

	return sToken, nil
}

// be carfull the subject shuold match from the signing phase, use "" to skip it
func (a *AppJWT) VerifyToken(token, subject string) (*VerificationClaims, error) {
	keyFn := func(t *jwt.Token) (any, error) {
		return &a.key.PublicKey, nil
	}

	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{a.signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(a.issuer),
		jwt.WithSubject(subject),
		jwt.WithIssuedAt(),
	}

	jwtToken, err := jwt.ParseWithClaims(token, &VerificationClaims{}, keyFn, parserOptions...)
	if err != nil {
		return nil, err
	}

	claims, ok := jwtToken.Claims.(*VerificationClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return claims, nil
}
