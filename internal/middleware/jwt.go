package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject claim — the customer's email — into the
// request context.  The provided secret must match the one used when
// issuing tokens.  This middleware wraps the hold and reserve routes so
// that handlers take the customer identity from a verified credential
// rather than trusting a request body field; handlers access it via
// c.Get("email").
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // Read the Authorization header.  A valid header starts with
            // "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Parse the token with our secret.  The callback supplies the
            // signing key and rejects any token not signed with an HMAC
            // method (tokens are issued as HS256).
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            // The subject claim carries the customer's email.  An empty
            // subject would defeat the engine's identity checks, so reject
            // it here instead of letting the engine return a 400.
            email, _ := claims["sub"].(string)
            if email == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing subject"})
            }
            c.Set("email", email)
            return next(c)
        }
    }
}

// CustomerEmail extracts the verified customer email placed in the context
// by JWTAuth.  It returns "" when the route is not authenticated.
func CustomerEmail(c echo.Context) string {
    if v := c.Get("email"); v != nil {
        if s, ok := v.(string); ok {
            return s
        }
    }
    return ""
}
