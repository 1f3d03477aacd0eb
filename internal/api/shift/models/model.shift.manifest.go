// Package models - manifest các field phiếu giao ca.
// Manifest là dữ liệu (file JSON trong config/manifest), không phải schema
// cứng trong code: thêm một hạng mục kiểm tra mới chỉ cần sửa file manifest.
package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// FieldKind kiểu dữ liệu của một field trong manifest.
type FieldKind string

const (
	KindBool   FieldKind = "bool"   // Câu hỏi Sim/Não
	KindNumber FieldKind = "number" // Số đo (ví dụ mức silo, %)
	KindText   FieldKind = "text"   // Quan sát dạng văn bản
)

// FieldSpec mô tả một field của một nhóm bản ghi.
type FieldSpec struct {
	Name string    `json:"name"`
	Kind FieldKind `json:"kind"`
}

// FieldManifest ánh xạ nhóm bản ghi sang danh sách field có thứ tự.
type FieldManifest struct {
	groups map[RecordGroup][]FieldSpec
}

// manifestFile là cấu trúc file JSON trên đĩa.
type manifestFile struct {
	Groups map[string][]FieldSpec `json:"groups"`
}

// LoadFieldManifest đọc và kiểm tra manifest từ file JSON.
// Lỗi nếu: thiếu nhóm, nhóm lạ, field trùng tên trong một nhóm, kind lạ.
func LoadFieldManifest(path string) (*FieldManifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("không đọc được manifest %s: %w", path, err)
	}

	var file manifestFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("manifest %s không phải JSON hợp lệ: %w", path, err)
	}

	m := &FieldManifest{groups: make(map[RecordGroup][]FieldSpec)}
	for name, fields := range file.Groups {
		group := RecordGroup(name)
		if !group.Valid() {
			return nil, fmt.Errorf("manifest chứa nhóm không hợp lệ: %q", name)
		}
		seen := make(map[string]bool)
		for _, f := range fields {
			if f.Name == "" {
				return nil, fmt.Errorf("nhóm %s có field không tên", name)
			}
			if seen[f.Name] {
				return nil, fmt.Errorf("nhóm %s có field trùng tên: %q", name, f.Name)
			}
			seen[f.Name] = true
			switch f.Kind {
			case KindBool, KindNumber, KindText:
			default:
				return nil, fmt.Errorf("field %s.%s có kind không hợp lệ: %q", name, f.Name, f.Kind)
			}
		}
		m.groups[group] = fields
	}

	for _, group := range AllGroups() {
		if len(m.groups[group]) == 0 {
			return nil, fmt.Errorf("manifest thiếu nhóm %s", group)
		}
	}

	return m, nil
}

// Fields trả về danh sách field của một nhóm, giữ nguyên thứ tự manifest.
func (m *FieldManifest) Fields(group RecordGroup) []FieldSpec {
	return m.groups[group]
}

// Has kiểm tra một field có thuộc nhóm hay không.
func (m *FieldManifest) Has(group RecordGroup, name string) bool {
	for _, f := range m.groups[group] {
		if f.Name == name {
			return true
		}
	}
	return false
}

// KindOf trả về kind của field trong nhóm, "" nếu field không tồn tại.
func (m *FieldManifest) KindOf(group RecordGroup, name string) FieldKind {
	for _, f := range m.groups[group] {
		if f.Name == name {
			return f.Kind
		}
	}
	return ""
}

// NewFieldManifest tạo manifest trực tiếp từ map, dùng cho test.
func NewFieldManifest(groups map[RecordGroup][]FieldSpec) *FieldManifest {
	return &FieldManifest{groups: groups}
}
