package basehdl

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/thinklm/ma-shift-change/internal/global"
)

// HandleHealth GET /health — trạng thái service và kết nối document store.
// Store mất kết nối không làm endpoint fail: service vẫn sống, chỉ báo degraded.
func HandleHealth(c fiber.Ctx) error {
	storeStatus := "disconnected"
	if global.MongoDB_Session != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := global.MongoDB_Session.Ping(ctx, nil); err == nil {
			storeStatus = "connected"
		}
	}

	status := "ok"
	if storeStatus != "connected" {
		status = "degraded"
	}

	return JSONResponse(c, http.StatusOK, fiber.Map{
		"status": status,
		"store":  storeStatus,
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
