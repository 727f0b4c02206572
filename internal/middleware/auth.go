package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "finanzas/internal/errors"
)

// userIDKey is the gin context key holding the authenticated user id.
const userIDKey = "userID"

// IdentityClaims are the claims read from identity provider tokens. The
// subject is the opaque, stable user identifier.
type IdentityClaims struct {
	jwt.RegisteredClaims
}

// GenerateIdentityToken signs an HS256 token for userID. It stands in for
// the external identity provider in development and tests.
func GenerateIdentityToken(secret, issuer, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseIdentityToken validates a token and returns its subject. When issuer
// is non-empty the token must carry it.
func ParseIdentityToken(secret, issuer, tokenString string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, opts...)
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid identity token")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("identity token has no subject")
	}
	return claims.Subject, nil
}

// Identity verifies the bearer token and sets the user id in the context.
func Identity(secret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		userID, err := ParseIdentityToken(secret, issuer, parts[1])
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrUnauthorized.Code,
			"message": message,
		},
	})
}
