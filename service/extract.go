package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yashsharma-007/Financeautomation/model"
)

// fieldRule matches one labeled value in recognized invoice text and
// assigns the first capture group. Rules are applied in order; a rule
// with no match leaves the field at its default.
type fieldRule struct {
	name    string
	pattern *regexp.Regexp
	assign  func(f *model.ExtractedFields, value string)
}

// The label patterns tolerate whitespace variation and are
// case-insensitive. Amounts accept thousands separators, a decimal point
// and an optional leading currency symbol.
var fieldRules = []fieldRule{
	{
		name:    "invoiceNo",
		pattern: regexp.MustCompile(`(?i)Invoice\s*No[:\s]+(\S+)`),
		assign:  func(f *model.ExtractedFields, v string) { f.InvoiceNo = v },
	},
	{
		name:    "gstin",
		pattern: regexp.MustCompile(`(?i)GSTIN[:\s]+([A-Z0-9]+)`),
		assign:  func(f *model.ExtractedFields, v string) { f.GSTIN = v },
	},
	{
		name:    "amount",
		pattern: regexp.MustCompile(`(?i)Total\s*Amount[:\s]*[₹$]?\s*(\d+[,.\d]*)`),
		assign:  func(f *model.ExtractedFields, v string) { f.Amount = parseAmount(v) },
	},
	{
		name:    "taxAmount",
		pattern: regexp.MustCompile(`(?i)Tax\s*Amount[:\s]*[₹$]?\s*(\d+[,.\d]*)`),
		assign:  func(f *model.ExtractedFields, v string) { f.TaxAmount = parseAmount(v) },
	},
	{
		name:    "date",
		pattern: regexp.MustCompile(`(?i)Date[:\s]+(\d{2}[-/]\d{2}[-/]\d{4})`),
		assign:  func(f *model.ExtractedFields, v string) { f.Date = v },
	},
}

// ExtractFields maps recognized text to structured invoice fields. A field
// with no match keeps its default ("N/A" for strings, 0 for amounts); zero
// matches is not an error. No cross-field validation happens here.
func ExtractFields(text string) model.ExtractedFields {
	fields := model.ExtractedFields{
		InvoiceNo: "N/A",
		GSTIN:     "N/A",
		Date:      "N/A",
	}

	for _, rule := range fieldRules {
		if m := rule.pattern.FindStringSubmatch(text); m != nil {
			rule.assign(&fields, m[1])
		}
	}

	return fields
}

func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
