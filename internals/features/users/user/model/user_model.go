package model

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/faaiqa01/course-online-nm-rbd/internals/constants"
)

// UserModel merepresentasikan tabel users di database.
// Role diisi sekali saat register dan tidak pernah diubah operasi mana pun.
type UserModel struct {
	UserID           uint    `gorm:"column:user_id;primaryKey;autoIncrement" json:"user_id"`
	UserName         string  `gorm:"column:user_name;size:120;not null" json:"user_name"`
	UserEmail        string  `gorm:"column:user_email;size:120;unique;not null" json:"user_email"`
	UserPasswordHash string  `gorm:"column:user_password_hash;size:255;not null" json:"-"`
	UserRole         string  `gorm:"column:user_role;type:varchar(20);not null;default:'student'" json:"user_role"`

	// Field khusus instructor (verifikasi)
	UserExpertise          *string `gorm:"column:user_expertise;size:100" json:"user_expertise,omitempty"`
	UserInstitution        *string `gorm:"column:user_institution;size:150" json:"user_institution,omitempty"`
	UserTeachingExperience *int    `gorm:"column:user_teaching_experience" json:"user_teaching_experience,omitempty"`
	UserCertificateType    string  `gorm:"column:user_certificate_type;size:50;default:'default'" json:"user_certificate_type"`
	UserCertificateData    *string `gorm:"column:user_certificate_data;size:500" json:"user_certificate_data,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.UserPasswordHash = string(hash)
	return nil
}

func (u *UserModel) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.UserPasswordHash), []byte(plain)) == nil
}

// IsVerified: instructor dianggap terverifikasi bila sudah mengunggah
// sertifikat (tipe bukan default dan datanya terisi).
func (u *UserModel) IsVerified() bool {
	if u.UserRole != constants.RoleInstructor {
		return false
	}
	return u.UserCertificateType != "default" &&
		u.UserCertificateData != nil && *u.UserCertificateData != ""
}
