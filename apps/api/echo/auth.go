package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/campushub/support-service/core"
)

var (
	// appJWTConfig is the default JWT auth middleware config; the signing
	// key is installed by configureAuth.
	appJWTConfig = middleware.JWTConfig{
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    "principalToken",
		Claims:        new(Claims),
	}

	jwtConf struct {
		appName         string
		expirationDelta time.Duration
	}
)

// Claims represents the authorization claims transmitted via a JWT.
// The numeric user id and role set are embedded by the identity service at
// authentication time; no directory lookup happens per request.
type Claims struct {
	jwt.StandardClaims
	UserID   int      `json:"id,omitempty"`
	Username string   `json:"username,omitempty"`
	Roles    []string `json:"roles,omitempty"`
}

// Valid implements jwt.Claims; tokens carrying roles the directory does not
// issue are rejected outright.
func (c *Claims) Valid() error {
	if err := c.StandardClaims.Valid(); err != nil {
		return err
	}
	for _, r := range c.Roles {
		if !core.ValidRole(r) {
			return errors.Errorf("unknown role %q", r)
		}
	}
	return nil
}

func configureAuth(conf *core.Config) echo.MiddlewareFunc {
	appJWTConfig.SigningKey = []byte(conf.SecretKey)
	jwtConf.appName = conf.AppName
	jwtConf.expirationDelta = conf.Server.JWTExpirationDelta
	return middleware.JWTWithConfig(appJWTConfig)
}

// GetPrincipalClaims builds the Claims the identity service would issue for
// prin; used by tests and tooling.
func GetPrincipalClaims(prin core.Principal) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    jwtConf.appName,
			Subject:   prin.Username,
			ExpiresAt: now.Add(jwtConf.expirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		UserID:   prin.ID,
		Username: prin.Username,
		Roles:    prin.Roles,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims) (string, error) {
	method := jwt.GetSigningMethod(appJWTConfig.SigningMethod)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString(appJWTConfig.SigningKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextPrincipal(ctx echo.Context) (core.Principal, error) {
	token, ok := ctx.Get(appJWTConfig.ContextKey).(*jwt.Token)
	if !ok {
		return core.Principal{}, errUnauthorized
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return core.Principal{}, errUnauthorized
	}
	return core.Principal{
		ID:       claims.UserID,
		Username: claims.Username,
		Roles:    claims.Roles,
		Token:    token.Raw,
	}, nil
}
