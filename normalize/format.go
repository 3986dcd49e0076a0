package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/bingLAN/chart_driver/common"
)

// Common setting keys of the number separators.
const (
	SettingThousandSeparator = "thousand_separator"
	SettingDecimalSeparator  = "decimal_separator"
)

// NumberFormat renders values shown as text next to the chart.
type NumberFormat struct {
	Thousand string
	Decimal  string
}

func DefaultNumberFormat() NumberFormat {
	return NumberFormat{Thousand: ",", Decimal: "."}
}

// FormatFromSettings reads the separators of the common settings record.
func FormatFromSettings(s common.CommonSetting) NumberFormat {
	return NumberFormat{
		Thousand: s.Str(SettingThousandSeparator, ","),
		Decimal:  s.Str(SettingDecimalSeparator, "."),
	}
}

// Format groups the integer digits of v and keeps every significant
// fraction digit.
func (f NumberFormat) Format(v float64) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(f.Thousand)
		}
		b.WriteRune(d)
	}
	if frac != "" {
		b.WriteString(f.Decimal)
		b.WriteString(frac)
	}
	return b.String()
}

func (f NumberFormat) Affix(v float64, prefix, postfix string) string {
	return prefix + f.Format(v) + postfix
}
