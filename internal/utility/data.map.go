// Package utility chứa các hàm tiện ích nhỏ dùng chung.
package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ToMap chuyển một struct (hoặc map) thành map[string]interface{} qua bson
// round-trip, giữ nguyên tên field theo bson tag.
func ToMap(data interface{}) (map[string]interface{}, error) {
	if data == nil {
		return nil, fmt.Errorf("data không được nil")
	}
	if m, ok := data.(map[string]interface{}); ok {
		return m, nil
	}

	raw, err := bson.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("lỗi khi marshal dữ liệu: %w", err)
	}
	var result map[string]interface{}
	if err := bson.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("lỗi khi unmarshal dữ liệu: %w", err)
	}
	return result, nil
}

// MapContainsKey kiểm tra map có chứa key hay không.
func MapContainsKey(m map[string]interface{}, key string) bool {
	if m == nil {
		return false
	}
	_, exists := m[key]
	return exists
}
