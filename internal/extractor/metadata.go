// Package extractor recovers report metadata from the plain text of an ESG
// document using a fixed set of heuristic patterns.
//
// Every rule scans the text once, left to right, and commits to its first
// match. Rules are independent of each other: a miss in one never affects
// another, and a miss is never an error.
package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/user/crm-service/internal/entity"
	"github.com/user/crm-service/pkg/utils"
)

// MetricsESG is the metrics value used when all three ESG pillars are mentioned.
const MetricsESG = "Environment, Social, Governance"

// fallbackSummary bounds the summary taken from the ESG section fallback.
const fallbackSummary = 200

// ws is a whitespace class that also covers Unicode spaces. PDF text layers
// often carry U+00A0 and U+FEFF where ASCII spaces were typed, and RE2's \s
// only matches [\t\n\f\r ].
const ws = `[\s\x0B\p{Z}\x{FEFF}]`

var (
	scoreRe   = regexp.MustCompile(`(?i)ESG` + ws + `*(?:Score|Rating)?` + ws + `*[:\-]?` + ws + `*(\d+(?:\.\d+)?)`)
	companyRe = regexp.MustCompile(`(?i)(?:Company|Organization|Firm|Entity)` + ws + `*[:\-]?` + ws + `*([A-Za-z0-9 &.,'\-]+)`)
	// The label is optional, so this binds the first 19xx/20xx token in the
	// document even when a labelled "Report Year" appears later (a copyright
	// line, a revenue figure). Callers that need the labelled year must not
	// rely on this rule.
	yearRe       = regexp.MustCompile(`(?i)(?:Year|Report Year|Reporting Year)?` + ws + `*[:\-]?` + ws + `*(20\d{2}|19\d{2})`)
	metricsRe    = regexp.MustCompile(`(?i)Metrics` + ws + `*[:\-]?` + ws + `*([A-Za-z, ]+)`)
	summaryRe    = regexp.MustCompile(`(?is)(?:Summary|Overview)` + ws + `*[:\-]?` + ws + `*(.{0,500})`)
	esgSectionRe = regexp.MustCompile(`(?is)ESG.{0,500}`)
)

// Extract applies every field rule to text. It never fails; fields whose
// rule found nothing are left nil.
func Extract(text string) entity.ReportMetadata {
	var md entity.ReportMetadata
	if v, ok := ESGScore(text); ok {
		md.ESGScore = &v
	}
	if v, ok := CompanyName(text); ok {
		md.Company = &v
	}
	if v, ok := ReportingYear(text); ok {
		md.Year = &v
	}
	if v, ok := MetricCategories(text); ok {
		md.Metrics = &v
	}
	if v, ok := Summary(text); ok {
		md.Summary = &v
	}
	return md
}

// ESGScore finds "ESG", "ESG Score" or "ESG Rating" followed by a number.
func ESGScore(text string) (float64, bool) {
	m := scoreRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	score, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return score, true
}

// CompanyName finds a Company/Organization/Firm/Entity label and returns the
// name that follows it. The capture stops at the end of the line and at the
// first gap of two or more spaces, which is how PDF text renders column breaks.
// Separators left dangling by the cut are dropped.
func CompanyName(text string) (string, bool) {
	m := companyRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	name := m[1]
	if i := strings.Index(name, "  "); i >= 0 {
		name = name[:i]
	}
	name = strings.TrimSpace(strings.TrimRight(name, " ,-&"))
	return name, name != ""
}

// ReportingYear returns the first 19xx or 20xx token in text. See yearRe for
// why that is not necessarily the labelled reporting year.
func ReportingYear(text string) (int, bool) {
	m := yearRe.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return year, true
}

// MetricCategories returns MetricsESG when Environment, Social and Governance
// all occur somewhere in text (case-insensitive substrings, any order,
// any distance). Otherwise it falls back to a "Metrics:" label.
func MetricCategories(text string) (string, bool) {
	lower := strings.ToLower(text)
	if strings.Contains(lower, "environment") &&
		strings.Contains(lower, "social") &&
		strings.Contains(lower, "governance") {
		return MetricsESG, true
	}

	m := metricsRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	metrics := strings.TrimSpace(m[1])
	return metrics, metrics != ""
}

// Summary returns the rest of the line after a Summary/Overview label. When no
// label exists it falls back to the text starting at the first "ESG", with
// newlines turned into spaces and cut to 200 characters.
func Summary(text string) (string, bool) {
	if m := summaryRe.FindStringSubmatch(text); m != nil {
		line, _, _ := strings.Cut(m[1], "\n")
		line = strings.TrimSpace(line)
		return line, line != ""
	}

	section := esgSectionRe.FindString(text)
	if section == "" {
		return "", false
	}
	section = strings.ReplaceAll(section, "\n", " ")
	return utils.Truncate(section, fallbackSummary), true
}
