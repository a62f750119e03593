package storage

import (
	"fmt"
	"time"

	"github.com/alekseinovikov/tui-money/internal/core"
)

// Dates are persisted as fixed-format text, not a native date type, so
// the on-disk format stays explicit and portable.
const dateLayout = "2006-01-02"

func kindToString(kind core.EntryKind) string {
	return string(kind)
}

func kindFromString(value string) (core.EntryKind, error) {
	kind := core.EntryKind(value)
	if !kind.Valid() {
		return "", fmt.Errorf("%w: unknown entry kind %q", core.ErrInvalidData, value)
	}
	return kind, nil
}

func dateToString(d core.Date) string {
	return d.Format(dateLayout)
}

func dateFromString(value string) (core.Date, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return core.Date{}, fmt.Errorf("%w: unparsable date %q", core.ErrInvalidData, value)
	}
	return core.Date{Time: t}, nil
}

func centsToMoney(cents int64) core.Money {
	return core.Cents(cents)
}

func moneyToCents(m core.Money) int64 {
	return m.Cents
}
