package wixutil

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/fivetwenty-io/wix-templates/internal/constants"
	"github.com/fivetwenty-io/wix-templates/pkg/wix"
)

// Layouts accepted by FormatDateString, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.DateOnly,
	time.RFC1123Z,
	time.RFC1123,
}

// parseLocale returns the tag for locale, or the default locale when it
// cannot be parsed.
func parseLocale(locale string) language.Tag {
	if locale == "" {
		locale = constants.DefaultLocale
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return language.MustParse(constants.DefaultLocale)
	}

	return tag
}

func isEnglish(tag language.Tag) bool {
	base, _ := tag.Base()
	english, _ := language.English.Base()

	return base == english
}

// monthFirst reports whether locale writes dates as "March 14, 2025".
func monthFirst(tag language.Tag) bool {
	if !isEnglish(tag) {
		return false
	}

	region, _ := tag.Region()

	switch region.String() {
	case "US", "PH":
		return true
	default:
		return false
	}
}

// FormatDate formats t as a long date with the month spelled out. Month
// names are always English; locale only picks the order, "March 14, 2025"
// for en-US and en-PH and "14 March 2025" for every other locale.
func FormatDate(t time.Time, locale string) string {
	if monthFirst(parseLocale(locale)) {
		return t.Format("January 2, 2006")
	}

	return t.Format("2 January 2006")
}

// FormatDateString parses s and formats it with FormatDate.
func FormatDateString(s, locale string) (string, error) {
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return FormatDate(t, locale), nil
		}
	}

	return "", fmt.Errorf("%w: %q", wix.ErrInvalidDate, s)
}

// FormatCurrency formats amount in the given ISO 4217 currency using the
// locale's digit grouping, e.g. "$1,234.50" for USD in en-US.
func FormatCurrency(amount float64, currencyCode, locale string) (string, error) {
	if currencyCode == "" {
		currencyCode = constants.DefaultCurrency
	}

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return "", fmt.Errorf("%w: %s", wix.ErrInvalidCurrency, currencyCode)
	}

	tag := parseLocale(locale)
	scale, _ := currency.Standard.Rounding(unit)

	printer := message.NewPrinter(tag)
	digits := printer.Sprint(number.Decimal(math.Abs(amount), number.Scale(scale)))

	// Currencies without a symbol in the locale print their ISO code.
	symbol := printer.Sprint(currency.Symbol(unit))
	known := symbol != unit.String()

	sign := ""
	if amount < 0 {
		sign = "-"
	}

	switch {
	case !isEnglish(tag):
		return sign + digits + " " + symbol, nil
	case known:
		return sign + symbol + digits, nil
	default:
		return sign + symbol + " " + digits, nil
	}
}

// Humanize turns a kebab-case key such as "pricing-plans" into "Pricing Plans".
func Humanize(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "-", " "))
}
