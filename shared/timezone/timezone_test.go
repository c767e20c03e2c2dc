package timezone_test

import (
	"mariachi/shared/timezone"
	"testing"
	"time"
)

func TestNow(t *testing.T) {
	now := timezone.Now()
	if now.IsZero() {
		t.Fatal("Now() returned zero time")
	}

	if now.Location() != timezone.GetLocation() {
		t.Errorf("expected Now() in %s, got %s", timezone.GetLocation(), now.Location())
	}
}

func TestToday(t *testing.T) {
	today := timezone.Today()

	if _, err := time.Parse(time.DateOnly, today); err != nil {
		t.Errorf("Today() returned %q: %v", today, err)
	}
}

func TestParseDate(t *testing.T) {
	day, err := timezone.ParseDate("2024-09-15")
	if err != nil {
		t.Fatalf("ParseDate() failed: %v", err)
	}

	if day.Hour() != 0 || day.Location() != timezone.GetLocation() {
		t.Errorf("expected local midnight, got %v", day)
	}

	if _, err := timezone.ParseDate("15/09/2024"); err == nil {
		t.Error("expected an error for a non ISO date")
	}
}

func TestFormat(t *testing.T) {
	stamp := time.Date(2024, 9, 15, 19, 0, 0, 0, timezone.GetLocation())

	if got := timezone.Format(stamp, "2006-01-02 15:04"); got != "2024-09-15 19:00" {
		t.Errorf("unexpected format %q", got)
	}
}
