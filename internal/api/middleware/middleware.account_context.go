package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/EstoreFactory109/SellerQI-sub008/internal/common"
)

// AccountContextMiddleware middleware để quản lý seller account context.
// - Đọc X-Account-Id từ header, fallback sang query param accountId
// - Lưu account_id vào context cho handler và base handler dùng để scope dữ liệu
// - Route nào yêu cầu account context mà thiếu cả hai sẽ bị từ chối
func AccountContextMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		accountID := strings.TrimSpace(c.Get("X-Account-Id"))
		if accountID == "" {
			accountID = strings.TrimSpace(c.Query("accountId"))
		}
		if accountID == "" {
			return JSONResponse(c, common.StatusBadRequest, fiber.Map{
				"code":    common.ErrCodeValidationInput.Code,
				"message": "Thiếu header X-Account-Id",
				"status":  "error",
			})
		}

		c.Locals("account_id", accountID)
		return c.Next()
	}
}
