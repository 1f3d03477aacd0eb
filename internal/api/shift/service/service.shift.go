// Package shiftsvc - nghiệp vụ phiếu giao ca: store theo nhóm, truy vấn
// window, gộp bản ghi và dựng document từ form.
package shiftsvc

import (
	"fmt"
	"time"

	basesvc "github.com/thinklm/ma-shift-change/internal/api/base/service"
	models "github.com/thinklm/ma-shift-change/internal/api/shift/models"
	"github.com/thinklm/ma-shift-change/internal/global"
)

// ShiftService gom các thao tác nghiệp vụ trên ba collection phiếu giao ca.
type ShiftService struct {
	stores   map[models.RecordGroup]*basesvc.BaseServiceMongoImpl[models.ShiftDocument]
	manifest *models.FieldManifest
	loc      *time.Location
	policy   MergePolicy
}

// NewShiftService tạo service từ các global đã khởi tạo trong cmd/server.
// Lỗi khi collection chưa đăng ký (store degraded) hoặc manifest chưa load.
func NewShiftService() (*ShiftService, error) {
	if global.ShiftFields == nil {
		return nil, fmt.Errorf("manifest field phiếu giao ca chưa được load")
	}

	stores := make(map[models.RecordGroup]*basesvc.BaseServiceMongoImpl[models.ShiftDocument])
	for _, group := range models.AllGroups() {
		colName := global.ColNameOf(group)
		col, ok := global.RegistryCollections.Get(colName)
		if !ok {
			return nil, fmt.Errorf("collection %s chưa được đăng ký", colName)
		}
		stores[group] = basesvc.NewBaseServiceMongo[models.ShiftDocument](col)
	}

	loc := global.Timezone
	if loc == nil {
		loc = time.UTC
	}

	policy := PolicyOverwrite
	if global.ServerConfig != nil {
		policy = PolicyFromString(global.ServerConfig.MergePolicy)
	}

	return &ShiftService{
		stores:   stores,
		manifest: global.ShiftFields,
		loc:      loc,
		policy:   policy,
	}, nil
}

// newShiftServiceWith tạo service với phụ thuộc tường minh, dùng cho test.
func newShiftServiceWith(manifest *models.FieldManifest, loc *time.Location, policy MergePolicy) *ShiftService {
	return &ShiftService{
		stores:   make(map[models.RecordGroup]*basesvc.BaseServiceMongoImpl[models.ShiftDocument]),
		manifest: manifest,
		loc:      loc,
		policy:   policy,
	}
}

// Store trả về service CRUD của một nhóm, nil nếu nhóm không hợp lệ.
func (s *ShiftService) Store(group models.RecordGroup) *basesvc.BaseServiceMongoImpl[models.ShiftDocument] {
	return s.stores[group]
}
