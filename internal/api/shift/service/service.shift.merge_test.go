package shiftsvc

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/thinklm/ma-shift-change/internal/api/shift/models"
)

// saoPaulo là múi giờ vận hành cố định cho test (UTC-3, không DST từ 2019).
var saoPaulo = time.FixedZone("-03", -3*60*60)

func testManifest() *models.FieldManifest {
	return models.NewFieldManifest(map[models.RecordGroup][]models.FieldSpec{
		models.GroupETA: {
			{Name: "troca_filtro_polidor_1", Kind: models.KindBool},
			{Name: "regenerar_100", Kind: models.KindBool},
		},
		models.GroupETEI: {
			{Name: "troca_filtro_polidor", Kind: models.KindBool},
			{Name: "nivel_silo_cal", Kind: models.KindNumber},
		},
		models.GroupOBS: {
			{Name: "obs_geral", Kind: models.KindText},
			{Name: "obs_eta", Kind: models.KindText},
		},
	})
}

func TestMergeEmptyWindow(t *testing.T) {
	s := newShiftServiceWith(testManifest(), saoPaulo, PolicyOverwrite)

	if view := s.Merge(models.GroupETA, nil); view != nil {
		t.Fatal("Merge window rỗng phải trả về nil")
	}
	if view := s.Merge(models.GroupETA, []models.ShiftDocument{}); view != nil {
		t.Fatal("Merge slice rỗng phải trả về nil")
	}
}

func TestMergeMissingDate(t *testing.T) {
	s := newShiftServiceWith(testManifest(), saoPaulo, PolicyOverwrite)

	docs := []models.ShiftDocument{
		{models.FieldEndedShift: "A", "troca_filtro_polidor_1": true},
	}
	if view := s.Merge(models.GroupETA, docs); view != nil {
		t.Fatal("Merge bản ghi thiếu date phải trả về nil")
	}
}

func TestMergeOverwritePolicy(t *testing.T) {
	s := newShiftServiceWith(testManifest(), saoPaulo, PolicyOverwrite)

	early := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	late := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)

	docs := []models.ShiftDocument{
		{
			models.FieldDate:         early,
			models.FieldEndedShift:   "A",
			"troca_filtro_polidor_1": false,
			"regenerar_100":          true,
		},
		{
			models.FieldDate:         late,
			models.FieldEndedShift:   "A",
			"troca_filtro_polidor_1": true,
		},
	}

	view := s.Merge(models.GroupETA, docs)
	if view == nil {
		t.Fatal("Merge trả về nil")
	}

	// Bản ghi sau thắng
	if view.Fields["troca_filtro_polidor_1"] != true {
		t.Fatalf("troca_filtro_polidor_1 = %v, muốn true", view.Fields["troca_filtro_polidor_1"])
	}
	// Field chỉ có ở bản ghi đầu vẫn giữ giá trị
	if view.Fields["regenerar_100"] != true {
		t.Fatalf("regenerar_100 = %v, muốn true", view.Fields["regenerar_100"])
	}

	// date lấy theo bản ghi sau cùng, đổi về múi giờ vận hành
	if !view.Date.Equal(late) {
		t.Fatalf("Date = %v, muốn %v", view.Date, late)
	}
	if view.Date.Location() != saoPaulo {
		t.Fatalf("Date phải ở múi giờ vận hành, đang ở %v", view.Date.Location())
	}
	if view.EndedShift != "A" {
		t.Fatalf("EndedShift = %q, muốn A", view.EndedShift)
	}
}

func TestMergeInitializesMissingFields(t *testing.T) {
	s := newShiftServiceWith(testManifest(), saoPaulo, PolicyOverwrite)

	docs := []models.ShiftDocument{
		{
			models.FieldDate:       time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
			models.FieldEndedShift: "C",
			"obs_geral":            "turno tranquilo",
		},
	}

	view := s.Merge(models.GroupOBS, docs)
	if view == nil {
		t.Fatal("Merge trả về nil")
	}

	// Field manifest không có trong bản ghi phải về chuỗi rỗng sentinel
	if view.Fields["obs_eta"] != "" {
		t.Fatalf("obs_eta = %v, muốn chuỗi rỗng", view.Fields["obs_eta"])
	}
	if view.Fields["obs_geral"] != "turno tranquilo" {
		t.Fatalf("obs_geral = %v", view.Fields["obs_geral"])
	}
}

func TestMergeConcatPolicy(t *testing.T) {
	s := newShiftServiceWith(testManifest(), saoPaulo, PolicyConcat)

	d1 := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	docs := []models.ShiftDocument{
		{models.FieldDate: d1, models.FieldEndedShift: "B", "obs_geral": "parada da bomba 2"},
		{models.FieldDate: d2, models.FieldEndedShift: "B", "obs_geral": "bomba 2 religada"},
	}

	view := s.Merge(models.GroupOBS, docs)
	if view == nil {
		t.Fatal("Merge trả về nil")
	}

	want := "parada da bomba 2\n\nbomba 2 religada"
	if view.Fields["obs_geral"] != want {
		t.Fatalf("obs_geral = %q, muốn %q", view.Fields["obs_geral"], want)
	}
}

func TestMergeConcatOnlyAppliesToText(t *testing.T) {
	s := newShiftServiceWith(testManifest(), saoPaulo, PolicyConcat)

	d1 := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	docs := []models.ShiftDocument{
		{models.FieldDate: d1, models.FieldEndedShift: "B", "nivel_silo_cal": 40.0},
		{models.FieldDate: d2, models.FieldEndedShift: "B", "nivel_silo_cal": 55.5},
	}

	view := s.Merge(models.GroupETEI, docs)
	if view == nil {
		t.Fatal("Merge trả về nil")
	}
	// Kind number luôn ghi đè, kể cả với policy concat
	if view.Fields["nivel_silo_cal"] != 55.5 {
		t.Fatalf("nivel_silo_cal = %v, muốn 55.5", view.Fields["nivel_silo_cal"])
	}
}

func TestMergeAcceptsPrimitiveDateTime(t *testing.T) {
	s := newShiftServiceWith(testManifest(), saoPaulo, PolicyOverwrite)

	// Driver decode datetime thành primitive.DateTime khi đọc vào map
	stamp := time.Date(2026, 9, 1, 12, 30, 0, 0, time.UTC)
	docs := []models.ShiftDocument{
		{
			models.FieldDate:       primitive.NewDateTimeFromTime(stamp),
			models.FieldEndedShift: "A",
		},
	}

	view := s.Merge(models.GroupETA, docs)
	if view == nil {
		t.Fatal("Merge trả về nil")
	}
	if !view.Date.Equal(stamp) {
		t.Fatalf("Date = %v, muốn %v", view.Date, stamp)
	}
}
