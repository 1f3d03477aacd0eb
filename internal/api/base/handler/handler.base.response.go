package basehdl

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	"github.com/thinklm/ma-shift-change/internal/common"
)

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8.
// Charset cần set tường minh để client hiển thị đúng tiếng Bồ Đào Nha có dấu.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// Respond chuẩn hóa response trả về cho client theo envelope
// {code, message, data, status}. Dùng được bởi mọi handler, có hoặc không
// embed BaseHandler.
func Respond(c fiber.Ctx, data interface{}, err error) error {
	if err != nil {
		var customErr *common.Error
		if errors.As(err, &customErr) {
			return JSONResponse(c, customErr.StatusCode, fiber.Map{
				"code":    customErr.Code.Code,
				"message": customErr.Message,
				"details": customErr.Details,
				"status":  "error",
			})
		}
		return JSONResponse(c, http.StatusInternalServerError, fiber.Map{
			"code":    common.ErrCodeSystemInternal.Code,
			"message": err.Error(),
			"status":  "error",
		})
	}

	return JSONResponse(c, http.StatusOK, fiber.Map{
		"code":    http.StatusOK,
		"message": common.MsgSuccess,
		"data":    data,
		"status":  "success",
	})
}

// SafeHandler bọc handler với recover để server luôn trả được response,
// kể cả khi handler panic.
func SafeHandler(c fiber.Ctx, handler func() error) error {
	defer func() {
		if r := recover(); r != nil {
			debug.PrintStack()
			_ = Respond(c, nil, common.NewError(
				common.ErrCodeSystemInternal,
				fmt.Sprintf("Lỗi hệ thống không mong muốn: %v", r),
				http.StatusInternalServerError,
				nil,
			))
		}
	}()
	return handler()
}

// HandleResponse giữ tên phương thức quen thuộc trên BaseHandler, ủy quyền
// cho Respond.
func (h *BaseHandler[T]) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	_ = Respond(c, data, err)
}
