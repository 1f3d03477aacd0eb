package logger

import (
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// WithRequest gắn thông tin request hiện tại vào log entry.
func WithRequest(lg *logrus.Logger, c fiber.Ctx) *logrus.Entry {
	return lg.WithFields(logrus.Fields{
		"request_id": requestID(c),
		"method":     c.Method(),
		"path":       c.Path(),
		"ip":         c.IP(),
	})
}

// WithModule gắn tên module vào log entry.
func WithModule(lg *logrus.Logger, module string) *logrus.Entry {
	return lg.WithField("module", module)
}

func requestID(c fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
