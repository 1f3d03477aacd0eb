// Package shiftsvc - truy vấn window: một "window" là một ngày lịch cộng
// một nhãn ca, tức tập bản ghi chốt trong [D, D+1 ngày) có endedshift = S.
package shiftsvc

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "github.com/thinklm/ma-shift-change/internal/api/shift/models"
	"github.com/thinklm/ma-shift-change/internal/common"
	"github.com/thinklm/ma-shift-change/internal/utility"
)

// calendarDayOf đưa một thời điểm về 00:00 của ngày lịch đó trong múi giờ
// vận hành.
func (s *ShiftService) calendarDayOf(t time.Time) time.Time {
	local := t.In(s.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
}

// windowFilter dựng filter nửa mở [day, day+1 ngày) kèm nhãn ca.
// AddDate thay vì cộng 24h để ngày đổi giờ DST vẫn phủ đúng ngày lịch.
func windowFilter(day time.Time, shift string) bson.M {
	return bson.M{
		models.FieldDate: bson.M{
			"$gte": day,
			"$lt":  day.AddDate(0, 0, 1),
		},
		models.FieldEndedShift: shift,
	}
}

// ResolveLatestWindow tìm window mới nhất: document có date lớn nhất của
// nhóm ETA (nhóm chuẩn khi xác định "mới nhất"), rồi lấy ngày lịch + nhãn ca
// của nó. Collection rỗng trả về ErrNotFound.
func (s *ShiftService) ResolveLatestWindow(ctx context.Context) (time.Time, string, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: models.FieldDate, Value: -1}})

	doc, err := s.stores[models.GroupETA].FindOne(ctx, bson.D{}, opts)
	if err != nil {
		return time.Time{}, "", err
	}

	date := doc.Date()
	if date.IsZero() {
		return time.Time{}, "", common.ErrNotFound
	}

	return s.calendarDayOf(date), doc.EndedShift(), nil
}

// ResolveExplicitWindow parse và kiểm tra window do client chỉ định.
// dateStr dạng YYYY-MM-DD, hiểu theo múi giờ vận hành.
func (s *ShiftService) ResolveExplicitWindow(dateStr string, shift string) (time.Time, string, error) {
	shift = strings.TrimSpace(shift)
	if shift == "" || shift == models.ShiftPlaceholder {
		return time.Time{}, "", common.ErrShiftMissing
	}
	if !utility.Contains(models.ShiftOptions, shift) {
		return time.Time{}, "", common.NewError(common.ErrCodeValidationInput,
			"Nhãn ca không hợp lệ: "+shift, 400, nil)
	}

	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(dateStr), s.loc)
	if err != nil {
		return time.Time{}, "", common.NewError(common.ErrCodeValidationFormat,
			"Ngày phải có dạng YYYY-MM-DD", 400, nil)
	}

	return day, shift, nil
}

// FetchWindow trả về các bản ghi của một nhóm trong window, sort date tăng dần.
func (s *ShiftService) FetchWindow(ctx context.Context, group models.RecordGroup, day time.Time, shift string) ([]models.ShiftDocument, error) {
	opts := options.Find().SetSort(bson.D{{Key: models.FieldDate, Value: 1}})
	return s.stores[group].Find(ctx, windowFilter(day, shift), opts)
}

// FetchMergedWindow truy vấn ba nhóm song song trong cùng một window và gộp
// từng nhóm. Nhóm không có bản ghi cho view nil.
func (s *ShiftService) FetchMergedWindow(ctx context.Context, day time.Time, shift string) (map[models.RecordGroup]*models.MergedShiftView, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		views    = make(map[models.RecordGroup]*models.MergedShiftView)
		firstErr error
	)

	for _, group := range models.AllGroups() {
		wg.Add(1)
		go func(group models.RecordGroup) {
			defer wg.Done()

			docs, err := s.FetchWindow(ctx, group, day, shift)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			views[group] = s.Merge(group, docs)
		}(group)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return views, nil
}

// LatestMergedWindow resolve window mới nhất rồi fetch + merge cả ba nhóm.
// Hai vòng truy vấn: một để tìm document mới nhất, một để lấy trọn window.
func (s *ShiftService) LatestMergedWindow(ctx context.Context) (time.Time, string, map[models.RecordGroup]*models.MergedShiftView, error) {
	day, shift, err := s.ResolveLatestWindow(ctx)
	if err != nil {
		return time.Time{}, "", nil, err
	}

	views, err := s.FetchMergedWindow(ctx, day, shift)
	if err != nil {
		return time.Time{}, "", nil, err
	}

	return day, shift, views, nil
}
