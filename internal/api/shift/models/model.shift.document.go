// Package models chứa các model thuộc domain Shift (phiếu giao ca).
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tên các field cố định của một document phiếu giao ca. Các field còn lại
// do manifest quyết định.
const (
	FieldID         = "_id"
	FieldDate       = "date"
	FieldEndedShift = "endedshift"
)

// ShiftPlaceholder là lựa chọn mặc định của form khi chưa chọn ca.
const ShiftPlaceholder = "Selecione"

// ShiftOptions các nhãn ca hợp lệ của nhà máy.
var ShiftOptions = []string{"A", "B", "C"}

// RecordGroup phân nhóm bản ghi giao ca, mỗi nhóm một collection.
type RecordGroup string

const (
	GroupETA  RecordGroup = "eta"  // Trạm xử lý nước cấp (ETA) + các hạng mục MBR
	GroupETEI RecordGroup = "etei" // Trạm xử lý nước thải công nghiệp (ETEI)
	GroupOBS  RecordGroup = "obs"  // Các quan sát dạng văn bản
)

// AllGroups trả về các nhóm theo thứ tự hiển thị cố định.
func AllGroups() []RecordGroup {
	return []RecordGroup{GroupETA, GroupETEI, GroupOBS}
}

// Valid kiểm tra nhóm có hợp lệ hay không.
func (g RecordGroup) Valid() bool {
	switch g {
	case GroupETA, GroupETEI, GroupOBS:
		return true
	}
	return false
}

// ShiftDocument là một bản ghi giao ca dạng schemaless. Luôn mang _id
// (identifier dạng chuỗi), date (thời điểm chốt ca) và endedshift (nhãn ca).
type ShiftDocument map[string]interface{}

// ID trả về identifier của document, "" nếu thiếu.
func (d ShiftDocument) ID() string {
	if id, ok := d[FieldID].(string); ok {
		return id
	}
	return ""
}

// EndedShift trả về nhãn ca đã chốt, "" nếu thiếu.
func (d ShiftDocument) EndedShift() string {
	if s, ok := d[FieldEndedShift].(string); ok {
		return s
	}
	return ""
}

// Date trả về thời điểm chốt ca. Driver bson giải mã datetime thành
// primitive.DateTime khi decode vào map nên cả hai dạng đều được chấp nhận.
// Trả về zero time nếu field thiếu hoặc sai kiểu.
func (d ShiftDocument) Date() time.Time {
	switch v := d[FieldDate].(type) {
	case time.Time:
		return v
	case primitive.DateTime:
		return v.Time()
	default:
		return time.Time{}
	}
}

// MergedShiftView là kết quả gộp các bản ghi của một nhóm trong một window.
// View chỉ tồn tại trong response, không bao giờ được ghi xuống store.
type MergedShiftView struct {
	Group      RecordGroup            `json:"group"`
	Date       time.Time              `json:"date"`
	EndedShift string                 `json:"endedshift"`
	Fields     map[string]interface{} `json:"fields"`
}
