package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/faaiqa01/course-online-nm-rbd/internals/constants"
)

// Keys yang diisi AuthMiddleware ke Locals.
const (
	LocUserID   = "user_id"
	LocUserName = "user_name"
	LocRole     = "role"
	LocRawToken = "raw_token"
)

var ErrNotAuthenticated = errors.New("tidak terautentikasi")

// GetUserID mengembalikan ID user dari Locals (diisi AuthMiddleware).
func GetUserID(c *fiber.Ctx) (uint, error) {
	v, ok := c.Locals(LocUserID).(uint)
	if !ok || v == 0 {
		return 0, ErrNotAuthenticated
	}
	return v, nil
}

func GetUserName(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocUserName).(string); ok {
		return v
	}
	return ""
}

func GetRole(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRole).(string); ok {
		return v
	}
	return ""
}

func IsStudent(c *fiber.Ctx) bool {
	return GetRole(c) == constants.RoleStudent
}

func IsInstructor(c *fiber.Ctx) bool {
	return GetRole(c) == constants.RoleInstructor
}

// GetRawAccessToken mengembalikan access token dari:
// 1) Locals("raw_token") yang diset middleware
// 2) Authorization header "Bearer <token>"
// 3) cookie "access_token"
func GetRawAccessToken(c *fiber.Ctx) string {
	if v, ok := c.Locals(LocRawToken).(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	const p = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(p) && strings.HasPrefix(auth, p) {
		return strings.TrimSpace(auth[len(p):])
	}
	return strings.TrimSpace(c.Cookies("access_token"))
}
