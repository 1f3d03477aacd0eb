package main

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/thinklm/ma-shift-change/internal/database"
	"github.com/thinklm/ma-shift-change/internal/global"
	"github.com/thinklm/ma-shift-change/internal/logger"
)

// initLogger khởi tạo hệ thống logging cho toàn bộ ứng dụng.
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Khởi tạo logger thất bại: %v", err))
	}
	logger.GetAppLogger().Info("Hệ thống logging đã sẵn sàng")
}

// main_thread khởi tạo và chạy Fiber server trên main goroutine.
func main_thread() {
	app := InitFiberApp()

	cfg := global.ServerConfig
	log := logger.GetAppLogger()

	log.WithFields(map[string]interface{}{
		"address":  cfg.Address,
		"timezone": cfg.Timezone,
		"policy":   cfg.MergePolicy,
	}).Info("Khởi động server nhật ký giao ca")

	if err := app.Listen(cfg.Address, fiber.ListenConfig{}); err != nil {
		log.Fatalf("Fiber Listen lỗi: %v", err)
	}
}

func main() {
	initLogger()

	// Khởi tạo các biến toàn cục (config, validator, timezone, manifest, store)
	InitGlobal()

	// Đăng ký các collection vào registry (bỏ qua khi store degraded)
	InitRegistry()

	defer func() {
		if global.MongoDB_Session != nil {
			_ = database.CloseInstance(global.MongoDB_Session)
		}
	}()

	main_thread()
}
