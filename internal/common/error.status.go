// Package common định nghĩa hệ thống mã lỗi và error type dùng chung
// cho toàn bộ service nhật ký giao ca (shift closure diary).
//
// Quy ước mã lỗi: <CATEGORY>_<NUMBER>
//   - VAL_xxx: lỗi validation dữ liệu đầu vào
//   - DB_xxx:  lỗi thao tác với document store
//   - BIZ_xxx: lỗi nghiệp vụ (quy tắc giao ca)
//   - SYS_xxx: lỗi hệ thống
package common

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrorCode mô tả một mã lỗi có phân loại.
type ErrorCode struct {
	Code        string // Mã lỗi, ví dụ "VAL_001"
	Category    string // Nhóm lỗi: validation, database, business, system
	SubCategory string // Nhóm con, ví dụ "format", "required"
	Description string // Mô tả mặc định
}

// Danh sách mã lỗi của service.
var (
	// Validation
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "validation",
		SubCategory: "input",
		Description: "Dữ liệu đầu vào không hợp lệ",
	}
	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "validation",
		SubCategory: "format",
		Description: "Định dạng dữ liệu không hợp lệ",
	}
	ErrCodeValidationRequired = ErrorCode{
		Code:        "VAL_003",
		Category:    "validation",
		SubCategory: "required",
		Description: "Thiếu trường bắt buộc",
	}

	// Database
	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "database",
		SubCategory: "connection",
		Description: "Không kết nối được document store",
	}
	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "database",
		SubCategory: "query",
		Description: "Lỗi truy vấn document store",
	}
	ErrCodeDatabaseNotFound = ErrorCode{
		Code:        "DB_003",
		Category:    "database",
		SubCategory: "not_found",
		Description: "Không tìm thấy bản ghi",
	}
	ErrCodeDatabaseDuplicate = ErrorCode{
		Code:        "DB_004",
		Category:    "database",
		SubCategory: "duplicate",
		Description: "Bản ghi đã tồn tại",
	}
	ErrCodeDatabaseTimeout = ErrorCode{
		Code:        "DB_005",
		Category:    "database",
		SubCategory: "timeout",
		Description: "Truy vấn document store quá thời gian",
	}

	// Business (quy tắc phiếu giao ca)
	ErrCodeShiftMissing = ErrorCode{
		Code:        "BIZ_001",
		Category:    "business",
		SubCategory: "shift",
		Description: "Chưa chọn ca trực",
	}
	ErrCodeGaugeMissing = ErrorCode{
		Code:        "BIZ_002",
		Category:    "business",
		SubCategory: "gauge",
		Description: "Thiếu số đo mức silo",
	}
	ErrCodeGaugeFormat = ErrorCode{
		Code:        "BIZ_003",
		Category:    "business",
		SubCategory: "gauge",
		Description: "Số đo mức silo không hợp lệ",
	}
	ErrCodeConflictingAnswer = ErrorCode{
		Code:        "BIZ_004",
		Category:    "business",
		SubCategory: "answer",
		Description: "Câu trả lời Sim/Não không nhất quán",
	}

	// System
	ErrCodeSystemInternal = ErrorCode{
		Code:        "SYS_001",
		Category:    "system",
		SubCategory: "internal",
		Description: "Lỗi hệ thống",
	}
	ErrCodeSystemUnavailable = ErrorCode{
		Code:        "SYS_002",
		Category:    "system",
		SubCategory: "unavailable",
		Description: "Dịch vụ tạm thời không khả dụng",
	}
)

// Error là error type chuẩn của service, mang mã lỗi, thông điệp,
// HTTP status và chi tiết bổ sung.
type Error struct {
	Code       ErrorCode              // Mã lỗi có phân loại
	Message    string                 // Thông điệp cho client
	StatusCode int                    // HTTP status trả về
	Details    map[string]interface{} // Chi tiết bổ sung (tùy chọn)
}

// Error implement interface error.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("[%s] %s", e.Code.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code.Code, e.Code.Description)
}

// Is cho phép errors.Is so sánh theo mã lỗi.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code.Code == t.Code.Code
}

// NewError tạo một *Error mới.
func NewError(code ErrorCode, message string, statusCode int, details map[string]interface{}) *Error {
	if message == "" {
		message = code.Description
	}
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Các sentinel error dùng chung. So sánh bằng errors.Is.
var (
	ErrNotFound      = NewError(ErrCodeDatabaseNotFound, "Không tìm thấy bản ghi", http.StatusNotFound, nil)
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Dữ liệu đầu vào không hợp lệ", http.StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Định dạng dữ liệu không hợp lệ", http.StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationRequired, "Thiếu trường bắt buộc", http.StatusBadRequest, nil)
	ErrConnection    = NewError(ErrCodeDatabaseConnection, "Không kết nối được document store", http.StatusServiceUnavailable, nil)

	// Sentinel nghiệp vụ của phiếu giao ca. Thông điệp hiển thị giữ nguyên
	// tiếng Bồ Đào Nha vì UI vận hành của nhà máy dùng tiếng Bồ.
	ErrShiftMissing      = NewError(ErrCodeShiftMissing, "Escolha o seu turno!", http.StatusBadRequest, nil)
	ErrGaugeMissing      = NewError(ErrCodeGaugeMissing, "Preencha o nível do silo de cal!", http.StatusBadRequest, nil)
	ErrGaugeFormat       = NewError(ErrCodeGaugeFormat, "Nível do silo de cal inválido", http.StatusBadRequest, nil)
	ErrConflictingAnswer = NewError(ErrCodeConflictingAnswer, "Marque exatamente uma opção (Sim ou Não)", http.StatusBadRequest, nil)
)

// ConvertMongoError chuyển error của mongo-driver về *Error chuẩn của service.
// err == nil trả về nil. *Error truyền qua nguyên vẹn.
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return NewError(ErrCodeDatabaseDuplicate, "Bản ghi đã tồn tại", http.StatusConflict, map[string]interface{}{
			"cause": err.Error(),
		})
	case mongo.IsTimeout(err):
		return NewError(ErrCodeDatabaseTimeout, "Truy vấn document store quá thời gian", http.StatusGatewayTimeout, map[string]interface{}{
			"cause": err.Error(),
		})
	case mongo.IsNetworkError(err):
		return NewError(ErrCodeDatabaseConnection, "Mất kết nối document store", http.StatusServiceUnavailable, map[string]interface{}{
			"cause": err.Error(),
		})
	default:
		return NewError(ErrCodeDatabaseQuery, err.Error(), http.StatusInternalServerError, nil)
	}
}
