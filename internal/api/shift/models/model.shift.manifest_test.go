package models

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shift_fields.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("không ghi được file manifest tạm: %v", err)
	}
	return path
}

const validManifest = `{
  "groups": {
    "eta": [
      {"name": "troca_filtro_polidor_1", "kind": "bool"},
      {"name": "troca_filtro_polidor_2", "kind": "bool"}
    ],
    "etei": [
      {"name": "troca_filtro_polidor", "kind": "bool"},
      {"name": "nivel_silo_cal", "kind": "number"}
    ],
    "obs": [
      {"name": "obs_geral", "kind": "text"}
    ]
  }
}`

func TestLoadFieldManifest(t *testing.T) {
	m, err := LoadFieldManifest(writeManifest(t, validManifest))
	if err != nil {
		t.Fatalf("LoadFieldManifest trả về lỗi: %v", err)
	}

	fields := m.Fields(GroupETA)
	if len(fields) != 2 {
		t.Fatalf("nhóm eta có %d field, muốn 2", len(fields))
	}
	// Thứ tự manifest phải được giữ nguyên
	if fields[0].Name != "troca_filtro_polidor_1" || fields[1].Name != "troca_filtro_polidor_2" {
		t.Fatalf("thứ tự field sai: %v", fields)
	}

	if !m.Has(GroupETEI, "nivel_silo_cal") {
		t.Fatal("Has không tìm thấy nivel_silo_cal trong nhóm etei")
	}
	if m.Has(GroupOBS, "nivel_silo_cal") {
		t.Fatal("Has tìm thấy field ở nhóm sai")
	}

	if kind := m.KindOf(GroupETEI, "nivel_silo_cal"); kind != KindNumber {
		t.Fatalf("KindOf trả về %q, muốn %q", kind, KindNumber)
	}
	if kind := m.KindOf(GroupETEI, "khong_ton_tai"); kind != "" {
		t.Fatalf("KindOf field không tồn tại trả về %q, muốn chuỗi rỗng", kind)
	}
}

func TestLoadFieldManifestErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "field trùng tên trong một nhóm",
			content: `{"groups": {
				"eta": [{"name": "x", "kind": "bool"}, {"name": "x", "kind": "bool"}],
				"etei": [{"name": "y", "kind": "number"}],
				"obs": [{"name": "z", "kind": "text"}]
			}}`,
		},
		{
			name: "kind không hợp lệ",
			content: `{"groups": {
				"eta": [{"name": "x", "kind": "float"}],
				"etei": [{"name": "y", "kind": "number"}],
				"obs": [{"name": "z", "kind": "text"}]
			}}`,
		},
		{
			name: "thiếu nhóm obs",
			content: `{"groups": {
				"eta": [{"name": "x", "kind": "bool"}],
				"etei": [{"name": "y", "kind": "number"}]
			}}`,
		},
		{
			name: "nhóm lạ",
			content: `{"groups": {
				"eta": [{"name": "x", "kind": "bool"}],
				"etei": [{"name": "y", "kind": "number"}],
				"obs": [{"name": "z", "kind": "text"}],
				"mbr": [{"name": "w", "kind": "bool"}]
			}}`,
		},
		{
			name:    "không phải JSON",
			content: `{groups:}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadFieldManifest(writeManifest(t, tt.content)); err == nil {
				t.Fatal("LoadFieldManifest phải trả về lỗi")
			}
		})
	}
}

func TestShiftDocumentAccessors(t *testing.T) {
	doc := ShiftDocument{
		FieldID:         "01092026B042",
		FieldEndedShift: "B",
	}

	if doc.ID() != "01092026B042" {
		t.Fatalf("ID trả về %q", doc.ID())
	}
	if doc.EndedShift() != "B" {
		t.Fatalf("EndedShift trả về %q", doc.EndedShift())
	}
	if !doc.Date().IsZero() {
		t.Fatal("Date thiếu phải trả về zero time")
	}
}
