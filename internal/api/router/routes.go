// Package router cung cấp khung đăng ký route cho toàn ứng dụng.
// Mỗi domain xuất một RegisterFunc; SetupRoutes gom tất cả lại dưới /api/v1.
package router

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/thinklm/ma-shift-change/internal/api/base/handler"
)

// CRUDHandler là bề mặt đọc generic mà mọi collection expose.
type CRUDHandler interface {
	HandleFind(c fiber.Ctx) error
	HandleFindOne(c fiber.Ctx) error
	HandleFindOneById(c fiber.Ctx) error
	HandleFindWithPagination(c fiber.Ctx) error
	HandleCount(c fiber.Ctx) error
	HandleDistinct(c fiber.Ctx) error
	HandleExists(c fiber.Ctx) error
}

// CRUDConfig bật tắt từng nhóm route generic.
type CRUDConfig struct {
	EnableFind     bool
	EnableCount    bool
	EnableDistinct bool
	EnableExists   bool
}

// ReadOnlyConfig là cấu hình chuẩn cho các collection phiếu giao ca:
// client chỉ đọc qua route generic, ghi luôn đi qua nghiệp vụ insert.
var ReadOnlyConfig = CRUDConfig{
	EnableFind:     true,
	EnableCount:    true,
	EnableDistinct: true,
	EnableExists:   true,
}

// Router giữ group gốc /api/v1.
type Router struct {
	V1 fiber.Router
}

// NewRouter tạo router với group /api/v1 trên app.
func NewRouter(app *fiber.App) *Router {
	return &Router{
		V1: app.Group("/api/v1"),
	}
}

// RegisterRouteWithMiddleware đăng ký các route của một prefix kèm middleware.
// Fiber v3 beta áp middleware qua group con + Use để middleware chỉ chạm các
// route của prefix này.
func RegisterRouteWithMiddleware(parent fiber.Router, prefix string, middlewares []fiber.Handler, register func(r fiber.Router)) {
	group := parent.Group(prefix)
	for _, m := range middlewares {
		group.Use(m)
	}
	register(group)
}

// RegisterCRUDRoutes đăng ký bộ route đọc generic cho một collection.
func (r *Router) RegisterCRUDRoutes(parent fiber.Router, prefix string, handler CRUDHandler, cfg CRUDConfig) {
	RegisterRouteWithMiddleware(parent, prefix, nil, func(r fiber.Router) {
		if cfg.EnableFind {
			r.Get("/", handler.HandleFind)
			r.Get("/one", handler.HandleFindOne)
			r.Get("/paginate", handler.HandleFindWithPagination)
		}
		if cfg.EnableCount {
			r.Get("/count", handler.HandleCount)
		}
		if cfg.EnableExists {
			r.Get("/exists", handler.HandleExists)
		}
		if cfg.EnableDistinct {
			r.Get("/distinct/:field", handler.HandleDistinct)
		}
		if cfg.EnableFind {
			// Đăng ký sau cùng để không nuốt các path tĩnh phía trên
			r.Get("/:id", handler.HandleFindOneById)
		}
	})
}

// RegisterFunc là hàm đăng ký route của một domain.
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes tạo router, đăng ký health và route của các domain.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	r := NewRouter(app)

	app.Get("/health", basehdl.HandleHealth)

	for _, register := range regs {
		if err := register(r.V1, r); err != nil {
			return err
		}
	}

	return nil
}
