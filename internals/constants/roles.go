package constants

import "fmt"

const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
)

// Template pesan error role
const (
	ErrOnlyStudentsCanAccess    = "❌ Hanya student yang boleh mengakses fitur %s."
	ErrOnlyInstructorsCanAccess = "❌ Hanya instructor yang boleh mengakses fitur %s."
)

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

func RoleErrorInstructor(feature string) string {
	return fmt.Sprintf(ErrOnlyInstructorsCanAccess, feature)
}

var AllRoles = []string{
	RoleStudent,
	RoleInstructor,
}
