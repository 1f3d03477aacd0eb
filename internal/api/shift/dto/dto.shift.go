// Package shiftdto chứa DTO cho domain Shift (phiếu giao ca).
// Tên field JSON giữ nguyên tiếng Bồ Đào Nha theo form vận hành của nhà máy.
package shiftdto

import (
	"time"

	models "github.com/thinklm/ma-shift-change/internal/api/shift/models"
)

// YesNo là một cặp checkbox Sim/Não của form. Form hợp lệ khi đúng một trong
// hai được đánh dấu.
type YesNo struct {
	Sim bool `json:"sim"`
	Nao bool `json:"nao"`
}

// ShiftSubmissionInput là payload POST /shift-report/insert, phản chiếu
// nguyên trạng form chốt ca.
type ShiftSubmissionInput struct {
	Shift string `json:"shift"` // Nhãn ca: A, B, C; placeholder của form bị từ chối

	// Nhóm ETA + MBR
	TrocaFiltroPolidor1 YesNo `json:"troca_filtro_polidor_1"`
	TrocaFiltroPolidor2 YesNo `json:"troca_filtro_polidor_2"`
	ColunaDiSaturada100 YesNo `json:"coluna_di_saturada_100"`
	ColunaDiSaturada101 YesNo `json:"coluna_di_saturada_101"`
	Regenerar100        YesNo `json:"regenerar_100"`
	Regenerar101        YesNo `json:"regenerar_101"`
	DosouAntiespumante  YesNo `json:"dosou_antiespumante"`
	EnvioSanitarioMbr   YesNo `json:"envio_sanitario_mbr"`
	TransbordouMbr      YesNo `json:"transbordou_mbr"`

	// Nhóm ETEI
	TrocaFiltroPolidorEtei YesNo  `json:"troca_filtro_polidor"`
	NivelSiloCal           string `json:"nivel_silo_cal"` // Văn bản thô từ form, ví dụ "45,5%"

	// Nhóm quan sát
	ObsGeral     string `json:"obs_geral"`
	ObsEta       string `json:"obs_eta"`
	ObsQuimicos  string `json:"obs_quimicos"`
	ObsEtei      string `json:"obs_etei"`
	ObsMbr       string `json:"obs_mbr"`
	ObsSanitaria string `json:"obs_sanitaria"`
}

// SearchQueryInput là query string của GET /shift-report/search.
type SearchQueryInput struct {
	Date  string `query:"date" validate:"required,report_date"`
	Shift string `query:"shift" validate:"required,shift_label"`
}

// SubmissionResult trả về sau khi chốt ca thành công. Form là trạng thái
// mặc định để client reset; gửi lại y nguyên sẽ fail validation ở placeholder.
type SubmissionResult struct {
	ID         string                `json:"id"`
	Date       time.Time             `json:"date"`
	EndedShift string                `json:"endedshift"`
	Groups     []string              `json:"groups"`
	Form       *ShiftSubmissionInput `json:"form"`
}

// DefaultForm trả về trạng thái form mặc định (shift về placeholder).
func DefaultForm() *ShiftSubmissionInput {
	return &ShiftSubmissionInput{Shift: models.ShiftPlaceholder}
}

// MergedViewOutput là view gộp của một nhóm trong response.
type MergedViewOutput struct {
	Group      string                 `json:"group"`
	Date       string                 `json:"date"`
	EndedShift string                 `json:"endedshift"`
	Fields     map[string]interface{} `json:"fields"`
}

// EmptyObservation là chú thích hiển thị khi một quan sát không có nội dung.
const EmptyObservation = "Sem observações"

// NewMergedViewOutput chuyển view nội bộ sang DTO hiển thị. Với nhóm quan sát,
// field văn bản rỗng được thay bằng chú thích EmptyObservation.
func NewMergedViewOutput(view *models.MergedShiftView) *MergedViewOutput {
	if view == nil {
		return nil
	}

	fields := make(map[string]interface{}, len(view.Fields))
	for name, value := range view.Fields {
		if view.Group == models.GroupOBS {
			if s, ok := value.(string); ok && s == "" {
				fields[name] = EmptyObservation
				continue
			}
		}
		fields[name] = value
	}

	return &MergedViewOutput{
		Group:      string(view.Group),
		Date:       view.Date.Format("2006-01-02 15:04:05"),
		EndedShift: view.EndedShift,
		Fields:     fields,
	}
}
