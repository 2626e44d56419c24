package maintenance

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPurgeSeenContacts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM contacts WHERE seen AND created_at < $1`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := PurgeSeenContacts(context.Background(), db, 90*24*time.Hour)
	if err != nil || n != 4 {
		t.Fatalf("n=%d err=%v", n, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestNextRun(t *testing.T) {
	loc := time.UTC
	before := time.Date(2024, 5, 1, 2, 0, 0, 0, loc)
	if got := nextRun(before, 3, 0); !got.Equal(time.Date(2024, 5, 1, 3, 0, 0, 0, loc)) {
		t.Fatalf("same day: %v", got)
	}
	at := time.Date(2024, 5, 1, 3, 0, 0, 0, loc)
	if got := nextRun(at, 3, 0); !got.Equal(time.Date(2024, 5, 2, 3, 0, 0, 0, loc)) {
		t.Fatalf("exactly at run time rolls over: %v", got)
	}
}

func TestParseClock(t *testing.T) {
	cases := map[string][2]int{"04:30": {4, 30}, "": {3, 0}, "25:00": {3, 0}, "x:1": {3, 0}}
	for in, want := range cases {
		if h, m := parseClock(in); h != want[0] || m != want[1] {
			t.Errorf("%q = %d:%d", in, h, m)
		}
	}
}

func TestStartInboxRetention_DisabledIsNoop(t *testing.T) {
	// KeepDays 0 must return without touching the db.
	StartInboxRetention(context.Background(), nil, RetentionConfig{})
}
