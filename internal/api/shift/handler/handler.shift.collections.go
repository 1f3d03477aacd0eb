// Package shifthdl - handler CRUD đọc generic cho từng collection phiếu
// giao ca (/shift-eta, /shift-etei, /shift-obs).
package shifthdl

import (
	"fmt"

	basehdl "github.com/thinklm/ma-shift-change/internal/api/base/handler"
	basesvc "github.com/thinklm/ma-shift-change/internal/api/base/service"
	models "github.com/thinklm/ma-shift-change/internal/api/shift/models"
	"github.com/thinklm/ma-shift-change/internal/global"
)

// ShiftGroupHandler expose bề mặt đọc generic của một nhóm bản ghi.
type ShiftGroupHandler struct {
	*basehdl.BaseHandler[models.ShiftDocument]
	Group models.RecordGroup
}

// NewShiftGroupHandler tạo handler đọc cho một nhóm. Lỗi khi collection của
// nhóm chưa được đăng ký.
func NewShiftGroupHandler(group models.RecordGroup) (*ShiftGroupHandler, error) {
	colName := global.ColNameOf(group)
	col, ok := global.RegistryCollections.Get(colName)
	if !ok {
		return nil, fmt.Errorf("collection %s chưa được đăng ký", colName)
	}

	service := basesvc.NewBaseServiceMongo[models.ShiftDocument](col)
	base := basehdl.NewBaseHandler[models.ShiftDocument](service, basehdl.FilterOptions{
		DeniedFields: []string{"createdAt", "updatedAt"},
	})

	return &ShiftGroupHandler{
		BaseHandler: base,
		Group:       group,
	}, nil
}
