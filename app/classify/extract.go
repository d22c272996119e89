package classify

import (
	"regexp"
	"strconv"
	"strings"
)

// Numeric extraction helpers. USD amounts are the only guaranteed-correct
// parse; other currency symbols are matched best-effort and rendered with
// a dollar prefix.

var fundingAmountRe = regexp.MustCompile(`(?i)[$€£¥]?\s*([\d,.]+)\s*(billion|million|b|m)\b`)

// ExtractFundingAmount finds the first currency+magnitude expression in
// the text and normalizes it to "$NB" or "$NM". Returns "" when the text
// carries no parseable amount.
func ExtractFundingAmount(text string) string {
	m := fundingAmountRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}

	num, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return ""
	}

	switch strings.ToLower(m[2]) {
	case "billion", "b":
		return "$" + formatAmount(num) + "B"
	case "million", "m":
		return "$" + formatAmount(num) + "M"
	}
	return ""
}

func formatAmount(num float64) string {
	return strconv.FormatFloat(num, 'f', -1, 64)
}

var layoffPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d[\d,]*)\s*(?:employees?|workers?|people|jobs?)\s*(?:laid off|cut|fired|let go)`),
	regexp.MustCompile(`(?i)laid off\s+(\d[\d,]*)`),
	regexp.MustCompile(`(?i)cut(?:ting)?\s+(\d[\d,]*)\s*(?:jobs?|positions?|roles?)`),
}

// ExtractLayoffCount tries the layoff phrasing patterns in order and
// returns the first positive integer found, or 0 when none match.
func ExtractLayoffCount(text string) int {
	for _, pattern := range layoffPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		num, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
		if err == nil && num > 0 {
			return num
		}
	}
	return 0
}

var nonAlphanumericRe = regexp.MustCompile(`[^a-z0-9]`)

// TitleKey builds the fuzzy deduplication key for a title: lower-cased,
// stripped of non-alphanumerics, truncated to 60 characters. Two
// differently-phrased headlines about the same event will NOT share a key;
// that is accepted behavior.
func TitleKey(title string) string {
	key := nonAlphanumericRe.ReplaceAllString(strings.ToLower(title), "")
	if len(key) > 60 {
		key = key[:60]
	}
	return key
}
