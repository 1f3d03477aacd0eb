package shiftsvc

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	models "github.com/thinklm/ma-shift-change/internal/api/shift/models"
	"github.com/thinklm/ma-shift-change/internal/common"
)

func TestWindowFilterBounds(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, saoPaulo)

	filter := windowFilter(day, "B")

	dateCond, ok := filter[models.FieldDate].(bson.M)
	if !ok {
		t.Fatal("filter không có điều kiện date")
	}

	gte, ok := dateCond["$gte"].(time.Time)
	if !ok || !gte.Equal(day) {
		t.Fatalf("$gte = %v, muốn %v", dateCond["$gte"], day)
	}

	// Biên trên là nửa mở: đúng 00:00 ngày kế tiếp, không nằm trong window
	lt, ok := dateCond["$lt"].(time.Time)
	if !ok || !lt.Equal(day.AddDate(0, 0, 1)) {
		t.Fatalf("$lt = %v, muốn %v", dateCond["$lt"], day.AddDate(0, 0, 1))
	}

	if filter[models.FieldEndedShift] != "B" {
		t.Fatalf("endedshift = %v, muốn B", filter[models.FieldEndedShift])
	}
}

func TestCalendarDayOf(t *testing.T) {
	s := newShiftServiceWith(testManifest(), saoPaulo, PolicyOverwrite)

	// 02:00 UTC ngày 01/09 là 23:00 ngày 31/08 theo giờ vận hành:
	// ngày lịch phải là 31/08
	stamp := time.Date(2026, 9, 1, 2, 0, 0, 0, time.UTC)
	day := s.calendarDayOf(stamp)

	want := time.Date(2026, 8, 31, 0, 0, 0, 0, saoPaulo)
	if !day.Equal(want) {
		t.Fatalf("calendarDayOf = %v, muốn %v", day, want)
	}

	// Thời điểm đã ở múi giờ vận hành giữ nguyên ngày
	stamp = time.Date(2026, 9, 1, 14, 30, 0, 0, saoPaulo)
	day = s.calendarDayOf(stamp)
	want = time.Date(2026, 9, 1, 0, 0, 0, 0, saoPaulo)
	if !day.Equal(want) {
		t.Fatalf("calendarDayOf = %v, muốn %v", day, want)
	}
}

func TestResolveExplicitWindow(t *testing.T) {
	s := newShiftServiceWith(testManifest(), saoPaulo, PolicyOverwrite)

	day, shift, err := s.ResolveExplicitWindow("2026-09-01", "C")
	if err != nil {
		t.Fatalf("ResolveExplicitWindow trả về lỗi: %v", err)
	}
	if shift != "C" {
		t.Fatalf("shift = %q, muốn C", shift)
	}
	want := time.Date(2026, 9, 1, 0, 0, 0, 0, saoPaulo)
	if !day.Equal(want) {
		t.Fatalf("day = %v, muốn %v", day, want)
	}
}

func TestResolveExplicitWindowRejectsPlaceholder(t *testing.T) {
	s := newShiftServiceWith(testManifest(), saoPaulo, PolicyOverwrite)

	for _, shift := range []string{"", "   ", models.ShiftPlaceholder} {
		if _, _, err := s.ResolveExplicitWindow("2026-09-01", shift); !errors.Is(err, common.ErrShiftMissing) {
			t.Fatalf("shift %q: trả về %v, muốn ErrShiftMissing", shift, err)
		}
	}

	if _, _, err := s.ResolveExplicitWindow("2026-09-01", "X"); err == nil {
		t.Fatal("nhãn ca lạ phải trả về lỗi")
	}
}

func TestResolveExplicitWindowRejectsBadDate(t *testing.T) {
	s := newShiftServiceWith(testManifest(), saoPaulo, PolicyOverwrite)

	for _, date := range []string{"", "01/09/2026", "2026-13-01", "hoje"} {
		if _, _, err := s.ResolveExplicitWindow(date, "A"); err == nil {
			t.Fatalf("ngày %q phải trả về lỗi", date)
		}
	}
}
