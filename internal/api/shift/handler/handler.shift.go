// Package shifthdl chứa HTTP handler cho domain Shift (home, insert, search).
package shifthdl

import (
	"net/http"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/thinklm/ma-shift-change/internal/api/base/handler"
	shiftdto "github.com/thinklm/ma-shift-change/internal/api/shift/dto"
	models "github.com/thinklm/ma-shift-change/internal/api/shift/models"
	shiftsvc "github.com/thinklm/ma-shift-change/internal/api/shift/service"
	"github.com/thinklm/ma-shift-change/internal/common"
	"github.com/thinklm/ma-shift-change/internal/global"
	"github.com/thinklm/ma-shift-change/internal/logger"
)

// ShiftHandler xử lý các route nghiệp vụ của phiếu giao ca.
type ShiftHandler struct {
	service *shiftsvc.ShiftService
}

// NewShiftHandler tạo handler với service dựng từ globals.
func NewShiftHandler() (*ShiftHandler, error) {
	service, err := shiftsvc.NewShiftService()
	if err != nil {
		return nil, err
	}
	return &ShiftHandler{service: service}, nil
}

// mergedViewsOutput chuyển map view nội bộ sang DTO theo thứ tự nhóm cố định.
func mergedViewsOutput(views map[models.RecordGroup]*models.MergedShiftView) map[string]*shiftdto.MergedViewOutput {
	out := make(map[string]*shiftdto.MergedViewOutput, len(views))
	for _, group := range models.AllGroups() {
		out[string(group)] = shiftdto.NewMergedViewOutput(views[group])
	}
	return out
}

// HandleHome GET /shift-report/home — view gộp của window mới nhất.
func (h *ShiftHandler) HandleHome(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		day, shift, views, err := h.service.LatestMergedWindow(c.Context())
		if err != nil {
			return basehdl.Respond(c, nil, err)
		}

		return basehdl.Respond(c, fiber.Map{
			"date":       day.Format("2006-01-02"),
			"endedshift": shift,
			"views":      mergedViewsOutput(views),
		}, nil)
	})
}

// HandleInsert POST /shift-report/insert — chốt một phiếu giao ca.
func (h *ShiftHandler) HandleInsert(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		input := new(shiftdto.ShiftSubmissionInput)
		if err := c.Bind().Body(input); err != nil {
			return basehdl.Respond(c, nil, common.NewError(common.ErrCodeValidationFormat,
				"Body không phải JSON hợp lệ", http.StatusBadRequest, nil))
		}

		reading, err := h.service.Submit(c.Context(), input)
		if err != nil {
			logger.WithRequest(logger.GetAppLogger(), c).WithError(err).Warn("Chốt phiếu giao ca bị từ chối")
			return basehdl.Respond(c, nil, err)
		}

		groups := make([]string, 0, len(reading.Documents))
		for _, group := range models.AllGroups() {
			groups = append(groups, string(group))
		}

		return basehdl.Respond(c, &shiftdto.SubmissionResult{
			ID:         reading.ID,
			Date:       reading.Date,
			EndedShift: reading.EndedShift,
			Groups:     groups,
			Form:       shiftdto.DefaultForm(),
		}, nil)
	})
}

// HandleSearch GET /shift-report/search?date=YYYY-MM-DD&shift=S — view gộp
// của một window chỉ định.
func (h *ShiftHandler) HandleSearch(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		input := &shiftdto.SearchQueryInput{
			Date:  c.Query("date"),
			Shift: c.Query("shift"),
		}
		if err := global.Validate.Struct(input); err != nil {
			return basehdl.Respond(c, nil, common.NewError(common.ErrCodeValidationInput,
				"Query cần date=YYYY-MM-DD và shift hợp lệ (A, B, C)", http.StatusBadRequest, nil))
		}

		day, shift, err := h.service.ResolveExplicitWindow(input.Date, input.Shift)
		if err != nil {
			return basehdl.Respond(c, nil, err)
		}

		views, err := h.service.FetchMergedWindow(c.Context(), day, shift)
		if err != nil {
			return basehdl.Respond(c, nil, err)
		}

		return basehdl.Respond(c, fiber.Map{
			"date":       day.Format("2006-01-02"),
			"endedshift": shift,
			"views":      mergedViewsOutput(views),
		}, nil)
	})
}
