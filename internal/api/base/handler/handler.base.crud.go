// Package basehdl cung cấp handler CRUD generic trên BaseServiceMongo.
// Các route đọc (find, count, distinct, exists, paginate) của mọi collection
// đi qua handler này; mỗi domain chỉ cần khai báo service và FilterOptions.
package basehdl

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/thinklm/ma-shift-change/internal/api/base/service"
	"github.com/thinklm/ma-shift-change/internal/common"
	"github.com/thinklm/ma-shift-change/internal/utility"
)

// FilterOptions giới hạn filter mà client được phép gửi lên.
type FilterOptions struct {
	DeniedFields     []string // Các field không được phép filter
	AllowedOperators []string // Các toán tử $ được phép; rỗng = dùng mặc định
	MaxFields        int      // Số field tối đa trong một filter; 0 = mặc định 10
}

// defaultAllowedOperators là các toán tử an toàn cho truy vấn đọc.
var defaultAllowedOperators = []string{
	"$eq", "$ne", "$gt", "$gte", "$lt", "$lte", "$in", "$nin", "$and", "$or", "$exists",
}

// BaseHandler xử lý các route đọc generic cho một collection.
type BaseHandler[T any] struct {
	Service    basesvc.BaseServiceMongo[T]
	FilterOpts FilterOptions
}

// NewBaseHandler tạo BaseHandler trên một service.
func NewBaseHandler[T any](service basesvc.BaseServiceMongo[T], filterOpts FilterOptions) *BaseHandler[T] {
	if filterOpts.MaxFields == 0 {
		filterOpts.MaxFields = 10
	}
	if len(filterOpts.AllowedOperators) == 0 {
		filterOpts.AllowedOperators = defaultAllowedOperators
	}
	return &BaseHandler[T]{
		Service:    service,
		FilterOpts: filterOpts,
	}
}

// ProcessFilter parse query param "filter" (JSON) và kiểm tra theo FilterOpts.
// Không có filter trả về bson.M{} (match tất cả).
func (h *BaseHandler[T]) ProcessFilter(c fiber.Ctx) (bson.M, error) {
	raw := c.Query("filter")
	if raw == "" {
		return bson.M{}, nil
	}

	var filter bson.M
	if err := json.Unmarshal([]byte(raw), &filter); err != nil {
		return nil, common.NewError(common.ErrCodeValidationFormat,
			"Filter không phải JSON hợp lệ", http.StatusBadRequest, nil)
	}

	if len(filter) > h.FilterOpts.MaxFields {
		return nil, common.NewError(common.ErrCodeValidationInput,
			fmt.Sprintf("Filter vượt quá %d field", h.FilterOpts.MaxFields), http.StatusBadRequest, nil)
	}

	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}

	return filter, nil
}

// validateFilter kiểm tra đệ quy field bị cấm và toán tử không được phép.
func (h *BaseHandler[T]) validateFilter(filter map[string]interface{}) error {
	for key, value := range filter {
		if strings.HasPrefix(key, "$") {
			if !utility.Contains(h.FilterOpts.AllowedOperators, key) {
				return common.NewError(common.ErrCodeValidationInput,
					fmt.Sprintf("Toán tử không được phép: %s", key), http.StatusBadRequest, nil)
			}
		} else if utility.Contains(h.FilterOpts.DeniedFields, key) {
			return common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Field không được phép filter: %s", key), http.StatusBadRequest, nil)
		}

		switch v := value.(type) {
		case map[string]interface{}:
			if err := h.validateFilter(v); err != nil {
				return err
			}
		case []interface{}:
			for _, item := range v {
				if sub, ok := item.(map[string]interface{}); ok {
					if err := h.validateFilter(sub); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

// processFindOptions đọc sort/limit/skip từ query string thành FindOptions.
func (h *BaseHandler[T]) processFindOptions(c fiber.Ctx) (*options.FindOptions, error) {
	opts := options.Find()

	if rawSort := c.Query("sort"); rawSort != "" {
		// Sort nhận JSON object {"field": 1|-1}
		var sort bson.D
		var sortMap map[string]int
		if err := json.Unmarshal([]byte(rawSort), &sortMap); err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat,
				"Sort không phải JSON hợp lệ", http.StatusBadRequest, nil)
		}
		for field, dir := range sortMap {
			if dir != 1 && dir != -1 {
				return nil, common.NewError(common.ErrCodeValidationInput,
					"Giá trị sort phải là 1 hoặc -1", http.StatusBadRequest, nil)
			}
			sort = append(sort, bson.E{Key: field, Value: dir})
		}
		opts.SetSort(sort)
	}

	if rawLimit := c.Query("limit"); rawLimit != "" {
		limit, err := strconv.ParseInt(rawLimit, 10, 64)
		if err != nil || limit < 0 {
			return nil, common.NewError(common.ErrCodeValidationInput,
				"Limit không hợp lệ", http.StatusBadRequest, nil)
		}
		opts.SetLimit(limit)
	}

	if rawSkip := c.Query("skip"); rawSkip != "" {
		skip, err := strconv.ParseInt(rawSkip, 10, 64)
		if err != nil || skip < 0 {
			return nil, common.NewError(common.ErrCodeValidationInput,
				"Skip không hợp lệ", http.StatusBadRequest, nil)
		}
		opts.SetSkip(skip)
	}

	return opts, nil
}

// HandleFind GET / — danh sách document theo filter.
func (h *BaseHandler[T]) HandleFind(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return Respond(c, nil, err)
		}
		opts, err := h.processFindOptions(c)
		if err != nil {
			return Respond(c, nil, err)
		}
		results, err := h.Service.Find(c.Context(), filter, opts)
		return Respond(c, results, err)
	})
}

// HandleFindOne GET /one — một document theo filter.
func (h *BaseHandler[T]) HandleFindOne(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return Respond(c, nil, err)
		}
		result, err := h.Service.FindOne(c.Context(), filter, nil)
		return Respond(c, result, err)
	})
}

// HandleFindOneById GET /:id — một document theo identifier.
func (h *BaseHandler[T]) HandleFindOneById(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		id := c.Params("id")
		result, err := h.Service.FindOneById(c.Context(), id)
		return Respond(c, result, err)
	})
}

// HandleFindWithPagination GET /paginate — danh sách có phân trang.
func (h *BaseHandler[T]) HandleFindWithPagination(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return Respond(c, nil, err)
		}
		opts, err := h.processFindOptions(c)
		if err != nil {
			return Respond(c, nil, err)
		}

		page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(c.Query("limit", "50"), 10, 64)

		result, err := h.Service.FindWithPagination(c.Context(), filter, page, limit, opts)
		return Respond(c, result, err)
	})
}

// HandleCount GET /count — đếm document theo filter.
func (h *BaseHandler[T]) HandleCount(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return Respond(c, nil, err)
		}
		count, err := h.Service.CountDocuments(c.Context(), filter)
		return Respond(c, fiber.Map{"count": count}, err)
	})
}

// HandleDistinct GET /distinct/:field — các giá trị khác nhau của một field.
func (h *BaseHandler[T]) HandleDistinct(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		field := c.Params("field")
		if utility.Contains(h.FilterOpts.DeniedFields, field) {
			return Respond(c, nil, common.NewError(common.ErrCodeValidationInput,
				fmt.Sprintf("Field không được phép truy vấn: %s", field), http.StatusBadRequest, nil))
		}
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return Respond(c, nil, err)
		}
		values, err := h.Service.Distinct(c.Context(), field, filter)
		return Respond(c, values, err)
	})
}

// HandleExists GET /exists — kiểm tra có document khớp filter hay không.
func (h *BaseHandler[T]) HandleExists(c fiber.Ctx) error {
	return SafeHandler(c, func() error {
		filter, err := h.ProcessFilter(c)
		if err != nil {
			return Respond(c, nil, err)
		}
		exists, err := h.Service.DocumentExists(c.Context(), filter)
		return Respond(c, fiber.Map{"exists": exists}, err)
	})
}
