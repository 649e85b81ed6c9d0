package parks

import (
	"regexp"
	"strconv"
	"strings"
)

// detailLine matches "**Key:** Value". The closing asterisks are optional
// and may also sit before the colon ("**Key**: Value").
var detailLine = regexp.MustCompile(`^\*\*(.+?):\*?\*?\s*(.*)$`)

var acresPattern = regexp.MustCompile(`(?i)acres`)

// ParseDetailLine splits a bold key/value line. The key is lowercased with
// spaces replaced by underscores.
func ParseDetailLine(line string) (key, value string, ok bool) {
	match := detailLine.FindStringSubmatch(strings.TrimSpace(line))
	if match == nil {
		return "", "", false
	}
	key = strings.TrimSpace(strings.TrimRight(match[1], "*"))
	key = strings.ReplaceAll(strings.ToLower(key), " ", "_")
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(match[2]), true
}

// detailCoercion reports how a detail value was stored.
type detailCoercion struct {
	key    string
	value  any
	failed bool
}

// coerceDetail applies the established/size specialisations. Other keys are
// stored verbatim.
func coerceDetail(key, value string) detailCoercion {
	switch key {
	case DetailEstablished:
		if year, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return detailCoercion{key: key, value: year}
		}
		return detailCoercion{key: key, value: value, failed: true}
	case DetailSize:
		if acres, ok := ParseAcres(value); ok {
			return detailCoercion{key: DetailSizeAcres, value: acres}
		}
		return detailCoercion{key: DetailSizeRaw, value: value, failed: true}
	}
	return detailCoercion{key: key, value: value}
}

// ParseAcres reads values like "142,500 acres" as an integer acreage.
func ParseAcres(value string) (int, bool) {
	cleaned := acresPattern.ReplaceAllString(value, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return 0, false
	}
	acres, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return acres, true
}
