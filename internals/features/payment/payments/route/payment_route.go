package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/faaiqa01/course-online-nm-rbd/internals/features/payment/payments/controller"
	authMw "github.com/faaiqa01/course-online-nm-rbd/internals/middlewares/auth"
)

func PaymentRoutes(app *fiber.App, db *gorm.DB) {
	ctrl := &controller.PaymentController{DB: db}

	// Webhook dari Midtrans, tanpa auth (diverifikasi via signature).
	app.Post("/api/payments/notification", ctrl.Notification)

	payments := app.Group("/api/payments",
		authMw.AuthMiddleware(),
		authMw.OnlyStudent("melakukan pembayaran"),
	)

	payments.Post("/create-transaction/:course_id", ctrl.CreateTransaction)
	payments.Post("/cart/create-transaction", ctrl.CreateCartTransaction)
	payments.Post("/check-status/:order_id", ctrl.CheckStatus)
	payments.Post("/retry/:order_id", ctrl.Retry)
	payments.Post("/mark-failed/:order_id", ctrl.MarkFailed)
	payments.Get("/history", ctrl.History)
	payments.Get("/invoice/:order_id", ctrl.Invoice)
	payments.Delete("/:order_id", ctrl.Delete)
}
