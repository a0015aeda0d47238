package service

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	cartModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/carts/model"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	enrollModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&courseModel.CourseModel{},
		&enrollModel.EnrollmentModel{},
		&cartModel.CartItemModel{},
	))
	return db
}

func seedCourse(t *testing.T, db *gorm.DB, id uint, premium bool, price int) {
	t.Helper()
	require.NoError(t, db.Create(&courseModel.CourseModel{
		CourseID:        id,
		CourseTitle:     "Course",
		CourseIsPremium: premium,
		CoursePrice:     price,
	}).Error)
}

func TestAddToCartRefusalMatrix(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, 10, false, 0)
	seedCourse(t, db, 20, true, 150000)
	seedCourse(t, db, 30, true, 200000)
	seedCourse(t, db, 40, true, 90000)

	// Course 30: sudah punya akses penuh.
	require.NoError(t, db.Create(&enrollModel.EnrollmentModel{
		EnrollmentUserID: 1, EnrollmentCourseID: 30, EnrollmentUnlocked: true,
	}).Error)
	// Course 40: enrollment terkunci menunggu pembayaran.
	require.NoError(t, db.Create(&enrollModel.EnrollmentModel{
		EnrollmentUserID: 1, EnrollmentCourseID: 40, EnrollmentUnlocked: false,
	}).Error)

	cases := []struct {
		name     string
		courseID uint
		want     AddOutcome
	}{
		{"course tidak ada", 99, AddCourseNotFound},
		{"course gratis", 10, AddNotPremium},
		{"sudah terbuka", 30, AddAlreadyUnlocked},
		{"menunggu pembayaran", 40, AddAwaitingPayment},
		{"premium normal", 20, AddOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := AddToCart(db, 1, tc.courseID)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	// Tambah kedua kali untuk course yang sama.
	got, err := AddToCart(db, 1, 20)
	require.NoError(t, err)
	require.Equal(t, AddAlreadyInCart, got)
}

func TestRemoveFromCart(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, 20, true, 150000)

	removed, err := RemoveFromCart(db, 1, 20)
	require.NoError(t, err)
	require.False(t, removed)

	_, err = AddToCart(db, 1, 20)
	require.NoError(t, err)

	removed, err = RemoveFromCart(db, 1, 20)
	require.NoError(t, err)
	require.True(t, removed)
}

func TestViewCartSubtotal(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, 20, true, 150000)
	seedCourse(t, db, 30, true, 200000)

	for _, id := range []uint{20, 30} {
		_, err := AddToCart(db, 1, id)
		require.NoError(t, err)
	}

	view, err := ViewCart(db, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)
	require.Equal(t, 350000, view.Subtotal)
}

func TestCheckoutSimulated(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, 20, true, 150000)
	seedCourse(t, db, 30, true, 200000)

	for _, id := range []uint{20, 30} {
		_, err := AddToCart(db, 1, id)
		require.NoError(t, err)
	}

	enrolled, err := CheckoutSimulated(db, 1)
	require.NoError(t, err)
	require.ElementsMatch(t, []uint{20, 30}, enrolled)

	var enrollments []enrollModel.EnrollmentModel
	require.NoError(t, db.Where("enrollment_user_id = ?", 1).Find(&enrollments).Error)
	require.Len(t, enrollments, 2)
	for _, e := range enrollments {
		require.True(t, e.EnrollmentUnlocked)
	}

	var count int64
	require.NoError(t, db.Model(&cartModel.CartItemModel{}).Count(&count).Error)
	require.Zero(t, count, "keranjang harus kosong setelah checkout")

	_, err = CheckoutSimulated(db, 1)
	require.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutSkipsVanishedCourse(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, 20, true, 150000)
	seedCourse(t, db, 30, true, 200000)

	for _, id := range []uint{20, 30} {
		_, err := AddToCart(db, 1, id)
		require.NoError(t, err)
	}
	require.NoError(t, db.Delete(&courseModel.CourseModel{}, 30).Error)

	enrolled, err := CheckoutSimulated(db, 1)
	require.NoError(t, err)
	require.Equal(t, []uint{20}, enrolled)

	var count int64
	require.NoError(t, db.Model(&cartModel.CartItemModel{}).Count(&count).Error)
	require.Zero(t, count, "item course yang hilang tetap dibersihkan")
}
