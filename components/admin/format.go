package admin

import (
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	layoutDateTimeLong = "2 January 2006 pukul 15.04"
	layoutDateShort    = "2/1/2006"
	layoutDateTime     = "2/1/2006, 15.04.05"
	layoutExpiry       = "02 Jan 2006 pukul 15.04"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatDateLong renders "15 Januari 2024 pukul 10.30".
func FormatDateLong(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return monday.Format(t, layoutDateTimeLong, monday.LocaleIdID)
}

// FormatDate renders "15/1/2024".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layoutDateShort)
}

// FormatDateTime renders "15/1/2024, 10.30.00".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(layoutDateTime)
}

// FormatExpiry renders order expiry as "15 Jan 2024 pukul 10.30".
func FormatExpiry(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return monday.Format(t, layoutExpiry, monday.LocaleIdID)
}

// FormatNumber groups thousands with dots: 15000 -> "15.000".
func FormatNumber(n int64) string {
	return idPrinter.Sprintf("%d", n)
}

// FormatRupiah renders "Rp1.234.567".
func FormatRupiah(n int64) string {
	return "Rp" + FormatNumber(n)
}

func formatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}
