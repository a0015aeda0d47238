package service

import (
	"errors"

	"gorm.io/gorm"

	cartModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/carts/model"
	courseModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/courses/model"
	enrollModel "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/model"
	enrollService "github.com/faaiqa01/course-online-nm-rbd/internals/features/lms/enrollments/service"
)

type AddOutcome int

const (
	AddOK AddOutcome = iota
	AddCourseNotFound
	AddNotPremium       // course gratis: langsung enroll, bukan keranjang
	AddAlreadyUnlocked  // sudah punya akses penuh
	AddAwaitingPayment  // enrollment terkunci menunggu pembayaran
	AddAlreadyInCart
)

// AddToCart memakai matriks penolakan: gratis, sudah terbuka, menunggu
// bayar, atau sudah ada di keranjang — semuanya bukan kondisi tambah.
func AddToCart(db *gorm.DB, userID, courseID uint) (AddOutcome, error) {
	var course courseModel.CourseModel
	if err := db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AddCourseNotFound, nil
		}
		return 0, err
	}
	if !course.CourseIsPremium {
		return AddNotPremium, nil
	}

	var enrollment enrollModel.EnrollmentModel
	err := db.Where("enrollment_user_id = ? AND enrollment_course_id = ?", userID, courseID).
		First(&enrollment).Error
	if err == nil {
		if enrollment.EnrollmentUnlocked {
			return AddAlreadyUnlocked, nil
		}
		return AddAwaitingPayment, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	item := cartModel.CartItemModel{
		CartItemUserID:   userID,
		CartItemCourseID: courseID,
	}
	if err := db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return AddAlreadyInCart, nil
		}
		return 0, err
	}
	return AddOK, nil
}

func RemoveFromCart(db *gorm.DB, userID, courseID uint) (bool, error) {
	res := db.Where("cart_item_user_id = ? AND cart_item_course_id = ?", userID, courseID).
		Delete(&cartModel.CartItemModel{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

type CartView struct {
	Items    []cartModel.CartItemModel `json:"items"`
	Subtotal int                       `json:"subtotal"`
}

func ViewCart(db *gorm.DB, userID uint) (CartView, error) {
	var items []cartModel.CartItemModel
	if err := db.Preload("CartItemCourse").
		Where("cart_item_user_id = ?", userID).
		Order("cart_item_id ASC").
		Find(&items).Error; err != nil {
		return CartView{}, err
	}
	view := CartView{Items: items}
	for _, it := range items {
		if it.CartItemCourse != nil {
			view.Subtotal += it.CartItemCourse.CoursePrice
		}
	}
	return view, nil
}

var ErrCartEmpty = errors.New("keranjang kosong")

// CheckoutSimulated: jalur checkout tanpa gateway — semua item keranjang
// dibuka sekaligus lalu keranjang dikosongkan, dalam satu transaksi.
// Item yang course-nya sudah dihapus dilewati diam-diam.
func CheckoutSimulated(db *gorm.DB, userID uint) ([]uint, error) {
	var enrolled []uint
	err := db.Transaction(func(tx *gorm.DB) error {
		var items []cartModel.CartItemModel
		if err := tx.Where("cart_item_user_id = ?", userID).Find(&items).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}
		for _, it := range items {
			var course courseModel.CourseModel
			err := tx.First(&course, it.CartItemCourseID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			if err := enrollService.UpsertUnlocked(tx, userID, course.CourseID); err != nil {
				return err
			}
			enrolled = append(enrolled, course.CourseID)
		}
		return tx.Where("cart_item_user_id = ?", userID).
			Delete(&cartModel.CartItemModel{}).Error
	})
	if err != nil {
		return nil, err
	}
	return enrolled, nil
}
