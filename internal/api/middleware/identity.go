package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/99minutos/user-console/internal/api/console"
)

// ConsoleIDKey is the echo context key holding the browser's console id.
const ConsoleIDKey = "console_id"

// IdentityConfig configures the signed cookie that identifies a browser.
type IdentityConfig struct {
	CookieName string
	Secret     []byte
	Secure     bool
	MaxAge     time.Duration
}

// consoleClaims is the JWT payload stored in the identity cookie.
type consoleClaims struct {
	jwt.RegisteredClaims
	ConsoleID string `json:"console_id"`
}

// Identity reads the browser's console id from a signed cookie, issuing a new
// one when the cookie is missing, tampered with or expired. A valid cookie
// past half of its lifetime is reissued for the same id, so the identity
// lives as long as the browser keeps visiting.
func Identity(cfg IdentityConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			claims, err := parseIdentity(c, cfg)
			if err != nil || claims.ConsoleID == "" {
				claims = &consoleClaims{ConsoleID: uuid.NewString()}
			}
			if claims.IssuedAt == nil || needsRefresh(cfg, claims, now) {
				if err := setIdentityCookie(c, cfg, claims.ConsoleID, now); err != nil {
					return err
				}
			}

			c.Set(ConsoleIDKey, claims.ConsoleID)
			return next(c)
		}
	}
}

func needsRefresh(cfg IdentityConfig, claims *consoleClaims, now time.Time) bool {
	if cfg.MaxAge <= 0 || claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Sub(now) < cfg.MaxAge/2
}

func setIdentityCookie(c echo.Context, cfg IdentityConfig, id string, now time.Time) error {
	signed, err := signIdentity(cfg, id, now)
	if err != nil {
		return fmt.Errorf("identity: sign cookie: %w", err)
	}
	c.SetCookie(&http.Cookie{
		Name:     cfg.CookieName,
		Value:    signed,
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(cfg.MaxAge.Seconds()),
	})
	return nil
}

// Console attaches the per-browser collaborators built by factory.
func Console(factory *console.Factory) echo.MiddlewareFunc {
	return attachConsole(func(c echo.Context, id string) *console.Console {
		return factory.Build(c.Request().Context(), id)
	})
}

// ConsoleJSON is Console for the JSON API.
func ConsoleJSON(factory *console.Factory) echo.MiddlewareFunc {
	return attachConsole(func(c echo.Context, id string) *console.Console {
		return factory.BuildAPI(c.Request().Context(), id)
	})
}

func attachConsole(build func(c echo.Context, id string) *console.Console) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := c.Get(ConsoleIDKey).(string)
			if id == "" {
				return echo.NewHTTPError(http.StatusInternalServerError, "missing console identity")
			}
			console.Set(c, build(c, id))
			return next(c)
		}
	}
}

func parseIdentity(c echo.Context, cfg IdentityConfig) (*consoleClaims, error) {
	cookie, err := c.Cookie(cfg.CookieName)
	if err != nil {
		return nil, err
	}

	claims := &consoleClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return cfg.Secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func signIdentity(cfg IdentityConfig, id string, now time.Time) (string, error) {
	claims := consoleClaims{ConsoleID: id}
	claims.IssuedAt = jwt.NewNumericDate(now)
	if cfg.MaxAge > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(cfg.MaxAge))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cfg.Secret)
}
