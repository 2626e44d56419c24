// Package maintenance runs scheduled housekeeping against the database.
package maintenance

import (
	"context"
	"database/sql"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// RetentionConfig controls the nightly inbox cleanup. A zero KeepDays
// disables it.
type RetentionConfig struct {
	KeepDays int
	At       string // "HH:MM"
	TZ       string
}

// StartInboxRetention runs PurgeSeenContacts once a day at cfg.At in cfg.TZ
// until ctx is cancelled. Unread messages are never removed.
func StartInboxRetention(ctx context.Context, db *sql.DB, cfg RetentionConfig) {
	if cfg.KeepDays <= 0 {
		return
	}
	loc, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		slog.Warn("[retention] unknown timezone, using local", "tz", cfg.TZ)
		loc = time.Local
	}
	h, m := parseClock(cfg.At)
	olderThan := time.Duration(cfg.KeepDays) * 24 * time.Hour

	go func() {
		for {
			timer := time.NewTimer(time.Until(nextRun(time.Now().In(loc), h, m)))
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
				n, err := PurgeSeenContacts(ctx, db, olderThan)
				if err != nil {
					slog.Error("[retention] purge seen contacts failed", "error", err)
					continue
				}
				slog.Info("[retention] purged seen contacts", "deleted", n, "keep_days", cfg.KeepDays)
			}
		}
	}()
}

// PurgeSeenContacts deletes read messages received more than olderThan ago.
func PurgeSeenContacts(ctx context.Context, db *sql.DB, olderThan time.Duration) (int64, error) {
	const q = `DELETE FROM contacts WHERE seen AND created_at < $1`
	res, err := db.ExecContext(ctx, q, time.Now().Add(-olderThan))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// nextRun is the first h:m strictly after now, in now's location.
func nextRun(now time.Time, h, m int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// parseClock defaults to 03:00 on anything malformed.
func parseClock(s string) (int, int) {
	h, m := 3, 0
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return h, m
	}
	hh, err1 := strconv.Atoi(parts[0])
	mm, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return h, m
	}
	return hh, mm
}
