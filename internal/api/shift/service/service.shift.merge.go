// Package shiftsvc - gộp các bản ghi của một nhóm trong một window thành
// một view duy nhất.
package shiftsvc

import (
	models "github.com/thinklm/ma-shift-change/internal/api/shift/models"
)

// MergePolicy quyết định cách xử lý khi nhiều bản ghi trong window cùng có
// một field.
type MergePolicy string

const (
	// PolicyOverwrite: bản ghi sau (mới hơn) thắng. Mặc định.
	PolicyOverwrite MergePolicy = "overwrite"
	// PolicyConcat: hành vi cũ, nối văn bản bằng hai dòng trống.
	// Chỉ áp dụng cho field kind text; các kind khác luôn ghi đè.
	PolicyConcat MergePolicy = "concat"
)

// PolicyFromString parse chính sách từ cấu hình, giá trị lạ về overwrite.
func PolicyFromString(s string) MergePolicy {
	if MergePolicy(s) == PolicyConcat {
		return PolicyConcat
	}
	return PolicyOverwrite
}

// Merge gộp các bản ghi (đã sort date tăng dần) của một nhóm thành một view.
//
// Trả về nil khi không có bản ghi hoặc khi gặp bản ghi thiếu date: date là
// dấu hiệu tồn tại của bản ghi, thiếu nó coi như window không có dữ liệu.
// date và endedshift luôn lấy theo bản ghi sau cùng; date được đổi về múi
// giờ vận hành. Các field còn lại khởi tạo bằng chuỗi rỗng theo manifest rồi
// fold theo policy.
func (s *ShiftService) Merge(group models.RecordGroup, docs []models.ShiftDocument) *models.MergedShiftView {
	if len(docs) == 0 {
		return nil
	}

	fields := make(map[string]interface{})
	for _, spec := range s.manifest.Fields(group) {
		fields[spec.Name] = ""
	}

	view := &models.MergedShiftView{
		Group:  group,
		Fields: fields,
	}

	for _, doc := range docs {
		date := doc.Date()
		if date.IsZero() {
			return nil
		}
		view.Date = date.In(s.loc)
		view.EndedShift = doc.EndedShift()

		for _, spec := range s.manifest.Fields(group) {
			value, ok := doc[spec.Name]
			if !ok {
				continue
			}

			if s.policy == PolicyConcat && spec.Kind == models.KindText {
				current, _ := fields[spec.Name].(string)
				text, _ := value.(string)
				if current == "" {
					fields[spec.Name] = text
				} else {
					fields[spec.Name] = current + "\n\n" + text
				}
				continue
			}

			fields[spec.Name] = value
		}
	}

	return view
}
