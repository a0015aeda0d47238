package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/faaiqa01/course-online-nm-rbd/internals/constants"
	helper "github.com/faaiqa01/course-online-nm-rbd/internals/helpers"
)

// OnlyRolesCanAccess menolak request di luar daftar role yang diizinkan.
func OnlyRolesCanAccess(message string, allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := helper.GetRole(c)
		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}
		return helper.Error(c, fiber.StatusForbidden, message)
	}
}

func OnlyStudent(feature string) fiber.Handler {
	return OnlyRolesCanAccess(constants.RoleErrorStudent(feature), constants.RoleStudent)
}

func OnlyInstructor(feature string) fiber.Handler {
	return OnlyRolesCanAccess(constants.RoleErrorInstructor(feature), constants.RoleInstructor)
}
