// Package shiftsvc - dựng bộ document từ form chốt ca và ghi xuống store.
package shiftsvc

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	shiftdto "github.com/thinklm/ma-shift-change/internal/api/shift/dto"
	models "github.com/thinklm/ma-shift-change/internal/api/shift/models"
	"github.com/thinklm/ma-shift-change/internal/common"
	"github.com/thinklm/ma-shift-change/internal/logger"
	"github.com/thinklm/ma-shift-change/internal/utility"
)

// ShiftReading là kết quả dựng từ một form hợp lệ: ba document cùng
// identifier và thời điểm chốt.
type ShiftReading struct {
	ID         string
	Date       time.Time
	EndedShift string
	Documents  map[models.RecordGroup]models.ShiftDocument
}

// yesNoAnswer gắn một cặp checkbox của form với tên field manifest và nhóm.
type yesNoAnswer struct {
	name  string
	group models.RecordGroup
	pair  shiftdto.YesNo
}

// yesNoAnswers liệt kê mọi cặp Sim/Não của form theo thứ tự hiển thị.
func yesNoAnswers(input *shiftdto.ShiftSubmissionInput) []yesNoAnswer {
	return []yesNoAnswer{
		{"troca_filtro_polidor_1", models.GroupETA, input.TrocaFiltroPolidor1},
		{"troca_filtro_polidor_2", models.GroupETA, input.TrocaFiltroPolidor2},
		{"coluna_di_saturada_100", models.GroupETA, input.ColunaDiSaturada100},
		{"coluna_di_saturada_101", models.GroupETA, input.ColunaDiSaturada101},
		{"regenerar_100", models.GroupETA, input.Regenerar100},
		{"regenerar_101", models.GroupETA, input.Regenerar101},
		{"dosou_antiespumante", models.GroupETA, input.DosouAntiespumante},
		{"envio_sanitario_mbr", models.GroupETA, input.EnvioSanitarioMbr},
		{"transbordou_mbr", models.GroupETA, input.TransbordouMbr},
		{"troca_filtro_polidor", models.GroupETEI, input.TrocaFiltroPolidorEtei},
	}
}

// obsFields ánh xạ field quan sát sang giá trị form.
func obsFields(input *shiftdto.ShiftSubmissionInput) map[string]string {
	return map[string]string{
		"obs_geral":     input.ObsGeral,
		"obs_eta":       input.ObsEta,
		"obs_quimicos":  input.ObsQuimicos,
		"obs_etei":      input.ObsEtei,
		"obs_mbr":       input.ObsMbr,
		"obs_sanitaria": input.ObsSanitaria,
	}
}

// parseGauge chuẩn hóa và parse số đo phần trăm từ form: bỏ "%" cuối,
// dấu phẩy thập phân đổi thành dấu chấm. Hợp lệ trong [0, 100].
func parseGauge(raw string) (float64, error) {
	text := strings.TrimSpace(raw)
	text = strings.TrimSuffix(text, "%")
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, ",", ".")

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, common.ErrGaugeFormat
	}
	if value < 0 || value > 100 {
		return 0, common.ErrGaugeFormat
	}
	return value, nil
}

// newRecordID sinh identifier <ddmmyyyy><ca><3 chữ số ngẫu nhiên>.
// Hậu tố ngẫu nhiên 0-999 chỉ là best effort chống trùng trong một window,
// không đảm bảo duy nhất tuyệt đối.
func newRecordID(t time.Time, shift string, n int) string {
	return fmt.Sprintf("%s%s%03d", t.Format("02012006"), shift, n)
}

// Build kiểm tra form và dựng ShiftReading. Input không bị thay đổi.
//
// Thứ tự kiểm tra cố định, dừng ở lỗi đầu tiên:
//  1. ca trực đã chọn (placeholder bị từ chối);
//  2. số đo mức silo có mặt và parse được;
//  3. mọi cặp Sim/Não có đúng một lựa chọn.
func (s *ShiftService) Build(input *shiftdto.ShiftSubmissionInput) (*ShiftReading, error) {
	shift := strings.TrimSpace(input.Shift)
	if shift == "" || shift == models.ShiftPlaceholder {
		return nil, common.ErrShiftMissing
	}
	if !utility.Contains(models.ShiftOptions, shift) {
		return nil, common.NewError(common.ErrCodeValidationInput,
			"Nhãn ca không hợp lệ: "+shift, 400, nil)
	}

	if strings.TrimSpace(input.NivelSiloCal) == "" {
		return nil, common.ErrGaugeMissing
	}
	gauge, err := parseGauge(input.NivelSiloCal)
	if err != nil {
		return nil, err
	}

	for _, answer := range yesNoAnswers(input) {
		if answer.pair.Sim == answer.pair.Nao {
			return nil, common.NewError(common.ErrCodeConflictingAnswer,
				common.ErrConflictingAnswer.Message, 400,
				map[string]interface{}{"field": answer.name})
		}
	}

	now := time.Now().In(s.loc)
	id := newRecordID(now, shift, rand.Intn(1000))

	docs := make(map[models.RecordGroup]models.ShiftDocument)
	for _, group := range models.AllGroups() {
		docs[group] = models.ShiftDocument{
			models.FieldID:         id,
			models.FieldDate:       now,
			models.FieldEndedShift: shift,
		}
	}

	for _, answer := range yesNoAnswers(input) {
		docs[answer.group][answer.name] = answer.pair.Sim
	}
	docs[models.GroupETEI]["nivel_silo_cal"] = gauge
	for name, value := range obsFields(input) {
		docs[models.GroupOBS][name] = value
	}

	return &ShiftReading{
		ID:         id,
		Date:       now,
		EndedShift: shift,
		Documents:  docs,
	}, nil
}

// Submit dựng reading từ form và upsert ba document theo identifier.
// Ba lần ghi độc lập, không có transaction: lỗi giữa chừng được log kèm các
// nhóm đã ghi rồi trả về cho client thử lại.
func (s *ShiftService) Submit(ctx context.Context, input *shiftdto.ShiftSubmissionInput) (*ShiftReading, error) {
	reading, err := s.Build(input)
	if err != nil {
		return nil, err
	}

	written := make([]string, 0, len(reading.Documents))
	for _, group := range models.AllGroups() {
		doc := reading.Documents[group]
		if _, err := s.stores[group].Upsert(ctx, bson.M{models.FieldID: reading.ID}, doc); err != nil {
			logger.GetErrorLogger().WithError(err).WithFields(map[string]interface{}{
				"id":      reading.ID,
				"group":   string(group),
				"written": written,
			}).Error("Ghi phiếu giao ca thất bại giữa chừng")
			return nil, err
		}
		written = append(written, string(group))
	}

	logger.GetAuditLogger().WithFields(map[string]interface{}{
		"id":         reading.ID,
		"endedshift": reading.EndedShift,
		"date":       reading.Date.Format(time.RFC3339),
	}).Info("Đã chốt phiếu giao ca")

	return reading, nil
}
