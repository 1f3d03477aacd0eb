package shiftsvc

import (
	"errors"
	"regexp"
	"testing"
	"time"

	shiftdto "github.com/thinklm/ma-shift-change/internal/api/shift/dto"
	models "github.com/thinklm/ma-shift-change/internal/api/shift/models"
	"github.com/thinklm/ma-shift-change/internal/common"
)

func fullManifest() *models.FieldManifest {
	return models.NewFieldManifest(map[models.RecordGroup][]models.FieldSpec{
		models.GroupETA: {
			{Name: "troca_filtro_polidor_1", Kind: models.KindBool},
			{Name: "troca_filtro_polidor_2", Kind: models.KindBool},
			{Name: "coluna_di_saturada_100", Kind: models.KindBool},
			{Name: "coluna_di_saturada_101", Kind: models.KindBool},
			{Name: "regenerar_100", Kind: models.KindBool},
			{Name: "regenerar_101", Kind: models.KindBool},
			{Name: "dosou_antiespumante", Kind: models.KindBool},
			{Name: "envio_sanitario_mbr", Kind: models.KindBool},
			{Name: "transbordou_mbr", Kind: models.KindBool},
		},
		models.GroupETEI: {
			{Name: "troca_filtro_polidor", Kind: models.KindBool},
			{Name: "nivel_silo_cal", Kind: models.KindNumber},
		},
		models.GroupOBS: {
			{Name: "obs_geral", Kind: models.KindText},
			{Name: "obs_eta", Kind: models.KindText},
			{Name: "obs_quimicos", Kind: models.KindText},
			{Name: "obs_etei", Kind: models.KindText},
			{Name: "obs_mbr", Kind: models.KindText},
			{Name: "obs_sanitaria", Kind: models.KindText},
		},
	})
}

func validSubmission() *shiftdto.ShiftSubmissionInput {
	yes := shiftdto.YesNo{Sim: true}
	no := shiftdto.YesNo{Nao: true}
	return &shiftdto.ShiftSubmissionInput{
		Shift:                  "B",
		TrocaFiltroPolidor1:    yes,
		TrocaFiltroPolidor2:    no,
		ColunaDiSaturada100:    no,
		ColunaDiSaturada101:    no,
		Regenerar100:           yes,
		Regenerar101:           no,
		DosouAntiespumante:     no,
		EnvioSanitarioMbr:      yes,
		TransbordouMbr:         no,
		TrocaFiltroPolidorEtei: no,
		NivelSiloCal:           "45,5%",
		ObsGeral:               "turno sem intercorrências",
	}
}

func builderService() *ShiftService {
	return newShiftServiceWith(fullManifest(), saoPaulo, PolicyOverwrite)
}

func TestBuildShiftValidation(t *testing.T) {
	s := builderService()

	// Placeholder bị từ chối trước mọi kiểm tra khác
	input := validSubmission()
	input.Shift = models.ShiftPlaceholder
	input.NivelSiloCal = "" // Gauge cũng thiếu nhưng lỗi phải là ca trực
	if _, err := s.Build(input); !errors.Is(err, common.ErrShiftMissing) {
		t.Fatalf("Build trả về %v, muốn ErrShiftMissing", err)
	}

	input = validSubmission()
	input.Shift = ""
	if _, err := s.Build(input); !errors.Is(err, common.ErrShiftMissing) {
		t.Fatalf("Build với shift rỗng trả về %v, muốn ErrShiftMissing", err)
	}

	input = validSubmission()
	input.Shift = "D"
	if _, err := s.Build(input); err == nil {
		t.Fatal("Build với nhãn ca lạ phải trả về lỗi")
	}
}

func TestBuildGaugeValidation(t *testing.T) {
	s := builderService()

	input := validSubmission()
	input.NivelSiloCal = "   "
	if _, err := s.Build(input); !errors.Is(err, common.ErrGaugeMissing) {
		t.Fatalf("Build trả về %v, muốn ErrGaugeMissing", err)
	}

	for _, raw := range []string{"abc", "12,3,4", "150", "-5", "101%"} {
		input = validSubmission()
		input.NivelSiloCal = raw
		if _, err := s.Build(input); !errors.Is(err, common.ErrGaugeFormat) {
			t.Fatalf("Build với gauge %q trả về %v, muốn ErrGaugeFormat", raw, err)
		}
	}
}

func TestBuildConflictingAnswer(t *testing.T) {
	s := builderService()

	// Cả hai ô được đánh dấu
	input := validSubmission()
	input.Regenerar100 = shiftdto.YesNo{Sim: true, Nao: true}
	if _, err := s.Build(input); !errors.Is(err, common.ErrConflictingAnswer) {
		t.Fatalf("Build trả về %v, muốn ErrConflictingAnswer", err)
	}

	// Không ô nào được đánh dấu
	input = validSubmission()
	input.TrocaFiltroPolidorEtei = shiftdto.YesNo{}
	if _, err := s.Build(input); !errors.Is(err, common.ErrConflictingAnswer) {
		t.Fatalf("Build trả về %v, muốn ErrConflictingAnswer", err)
	}
}

func TestBuildValidSubmission(t *testing.T) {
	s := builderService()

	reading, err := s.Build(validSubmission())
	if err != nil {
		t.Fatalf("Build trả về lỗi: %v", err)
	}

	// Identifier: <ddmmyyyy><ca><3 chữ số>
	idPattern := regexp.MustCompile(`^\d{8}B\d{3}$`)
	if !idPattern.MatchString(reading.ID) {
		t.Fatalf("ID %q không đúng định dạng", reading.ID)
	}
	wantPrefix := reading.Date.Format("02012006")
	if reading.ID[:8] != wantPrefix {
		t.Fatalf("ID %q không bắt đầu bằng ngày %s", reading.ID, wantPrefix)
	}

	if reading.Date.Location() != saoPaulo {
		t.Fatalf("Date phải ở múi giờ vận hành, đang ở %v", reading.Date.Location())
	}

	// Ba document cùng identifier và thời điểm
	if len(reading.Documents) != 3 {
		t.Fatalf("Build tạo %d document, muốn 3", len(reading.Documents))
	}
	for _, group := range models.AllGroups() {
		doc := reading.Documents[group]
		if doc.ID() != reading.ID {
			t.Fatalf("document %s có _id %q, muốn %q", group, doc.ID(), reading.ID)
		}
		if !doc.Date().Equal(reading.Date) {
			t.Fatalf("document %s có date %v, muốn %v", group, doc.Date(), reading.Date)
		}
		if doc.EndedShift() != "B" {
			t.Fatalf("document %s có endedshift %q, muốn B", group, doc.EndedShift())
		}
	}

	// Cặp Sim/Não đổi thành bool
	eta := reading.Documents[models.GroupETA]
	if eta["troca_filtro_polidor_1"] != true || eta["troca_filtro_polidor_2"] != false {
		t.Fatalf("giá trị bool nhóm eta sai: %v", eta)
	}

	// Gauge parse với dấu phẩy thập phân và % đuôi
	etei := reading.Documents[models.GroupETEI]
	if etei["nivel_silo_cal"] != 45.5 {
		t.Fatalf("nivel_silo_cal = %v, muốn 45.5", etei["nivel_silo_cal"])
	}

	// Quan sát truyền qua nguyên vẹn, kể cả rỗng
	obs := reading.Documents[models.GroupOBS]
	if obs["obs_geral"] != "turno sem intercorrências" {
		t.Fatalf("obs_geral = %v", obs["obs_geral"])
	}
	if obs["obs_mbr"] != "" {
		t.Fatalf("obs_mbr = %v, muốn chuỗi rỗng", obs["obs_mbr"])
	}
}

func TestBuildDoesNotMutateInput(t *testing.T) {
	s := builderService()

	input := validSubmission()
	snapshot := *input

	if _, err := s.Build(input); err != nil {
		t.Fatalf("Build trả về lỗi: %v", err)
	}
	if *input != snapshot {
		t.Fatal("Build đã thay đổi input")
	}
}

func TestParseGauge(t *testing.T) {
	tests := []struct {
		raw     string
		want    float64
		wantErr bool
	}{
		{"45,5%", 45.5, false},
		{"45.5", 45.5, false},
		{"0", 0, false},
		{"100%", 100, false},
		{" 80 % ", 80, false},
		{"100,1", 0, true},
		{"-1", 0, true},
		{"cheio", 0, true},
	}

	for _, tt := range tests {
		got, err := parseGauge(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseGauge(%q) phải trả về lỗi", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseGauge(%q) trả về lỗi: %v", tt.raw, err)
		}
		if got != tt.want {
			t.Fatalf("parseGauge(%q) = %v, muốn %v", tt.raw, got, tt.want)
		}
	}
}

func TestNewRecordID(t *testing.T) {
	stamp := time.Date(2026, 9, 1, 22, 15, 0, 0, saoPaulo)

	id := newRecordID(stamp, "C", 7)
	if id != "01092026C007" {
		t.Fatalf("newRecordID = %q, muốn 01092026C007", id)
	}

	id = newRecordID(stamp, "A", 999)
	if id != "01092026A999" {
		t.Fatalf("newRecordID = %q, muốn 01092026A999", id)
	}
}

// Build rồi Merge: view phải tái hiện đúng các field của form.
func TestBuildThenMergeRoundTrip(t *testing.T) {
	s := builderService()

	reading, err := s.Build(validSubmission())
	if err != nil {
		t.Fatalf("Build trả về lỗi: %v", err)
	}

	view := s.Merge(models.GroupETEI, []models.ShiftDocument{reading.Documents[models.GroupETEI]})
	if view == nil {
		t.Fatal("Merge trả về nil")
	}
	if view.Fields["nivel_silo_cal"] != 45.5 {
		t.Fatalf("nivel_silo_cal sau merge = %v, muốn 45.5", view.Fields["nivel_silo_cal"])
	}
	if view.EndedShift != "B" {
		t.Fatalf("EndedShift sau merge = %q, muốn B", view.EndedShift)
	}
}
