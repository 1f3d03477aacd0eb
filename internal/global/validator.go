package global

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// InitValidator khởi tạo và đăng ký các custom validator
func InitValidator() {
	Validate = validator.New()

	_ = Validate.RegisterValidation("shift_label", validateShiftLabel)
	_ = Validate.RegisterValidation("report_date", validateReportDate)
}

// validateShiftLabel kiểm tra nhãn ca trực hợp lệ (A, B hoặc C).
// Giá trị rỗng hoặc placeholder của form đều không hợp lệ.
func validateShiftLabel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "A", "B", "C":
		return true
	default:
		return false
	}
}

// validateReportDate kiểm tra ngày dạng YYYY-MM-DD. Rỗng coi là hợp lệ
// (bắt buộc hay không do tag required quyết định).
func validateReportDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
