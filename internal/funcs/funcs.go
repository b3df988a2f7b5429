package funcs

import (
	"strings"
	"time"

	"golang.org/x/exp/constraints"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TemplateFuncs are available to every e-mail template parsed by the mailer.
var TemplateFuncs = map[string]any{
	// Time functions
	"now":        time.Now,
	"formatTime": formatTime,

	// String functions
	"uppercase": strings.ToUpper,
	"lowercase": strings.ToLower,
	"toTitle":   toTitle,
	"pluralize": pluralize[int],

	// Number functions
	"incr": incr[int],
	"decr": decr[int],
}

func formatTime(format string, t time.Time) string {
	return t.Format(format)
}

func toTitle(s string) string {
	return cases.Title(language.English).String(s)
}

func pluralize[T constraints.Integer](count T, singular string, plural string) string {
	if count == 1 {
		return singular
	}

	return plural
}

func incr[T constraints.Integer](i T) T {
	return i + 1
}

func decr[T constraints.Integer](i T) T {
	return i - 1
}
