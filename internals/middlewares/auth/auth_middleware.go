// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/faaiqa01/course-online-nm-rbd/internals/configs"
	helper "github.com/faaiqa01/course-online-nm-rbd/internals/helpers"
)

// Public webhook path yang di-skip auth
var skipPaths = map[string]struct{}{
	"/api/payments/notification": {},
}

func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Skip path tertentu (webhook dsb.)
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		// 2) Ambil Authorization (atau cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims, err := ParseClaims(tokenString, configs.JWTSecret)
		if err != nil {
			log.Println("[ERROR] Gagal parse token:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token tidak valid")
		}

		// 3) Simpan klaim ke Locals supaya handler tidak tergantung state global
		c.Locals(helper.LocUserID, claims.UserID)
		c.Locals(helper.LocUserName, claims.UserName)
		c.Locals(helper.LocRole, claims.Role)
		c.Locals(helper.LocRawToken, tokenString)

		return c.Next()
	}
}

// OptionalAuthMiddleware mengisi Locals bila token valid, tapi tidak menolak
// request anonim (dipakai katalog & detail course publik).
func OptionalAuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return c.Next()
		}
		claims, err := ParseClaims(tokenString, configs.JWTSecret)
		if err != nil {
			return c.Next()
		}
		c.Locals(helper.LocUserID, claims.UserID)
		c.Locals(helper.LocUserName, claims.UserName)
		c.Locals(helper.LocRole, claims.Role)
		c.Locals(helper.LocRawToken, tokenString)
		return c.Next()
	}
}

/* =======================================================================
   Claims
======================================================================= */

type AccessClaims struct {
	UserID   uint
	UserName string
	Role     string
}

func ParseClaims(tokenString, secret string) (AccessClaims, error) {
	if secret == "" {
		return AccessClaims{}, errors.New("missing JWT secret")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	}); err != nil {
		return AccessClaims{}, err
	}

	if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
		return AccessClaims{}, err
	}

	out := AccessClaims{}
	if v, ok := claims["user_id"].(float64); ok && v > 0 {
		out.UserID = uint(v)
	}
	if out.UserID == 0 {
		return AccessClaims{}, errors.New("user_id tidak ada di token")
	}
	if v, ok := claims["user_name"].(string); ok {
		out.UserName = v
	}
	if v, ok := claims["role"].(string); ok {
		out.Role = v
	}
	return out, nil
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	expRaw, ok := claims["exp"]
	if !ok {
		return errors.New("token tanpa exp")
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		return errors.New("exp bukan angka")
	}
	exp := time.Unix(int64(expFloat), 0)
	if time.Now().After(exp.Add(leeway)) {
		return errors.New("token expired")
	}
	return nil
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	const p = "Bearer "
	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, p) && len(authHeader) > len(p) {
		return strings.TrimSpace(authHeader[len(p):]), nil
	}
	if v := strings.TrimSpace(c.Cookies("access_token")); v != "" {
		return v, nil
	}
	return "", errors.New("Unauthorized - Token tidak ditemukan")
}
