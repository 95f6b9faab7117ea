package valuation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/wellswap/valuation-engine/internal/model"
)

// requiredDocumentFields must be present in every extraction; each absence
// costs 0.1 confidence. Order is fixed so reported field lists are stable.
var requiredDocumentFields = []string{
	model.FieldPolicyNumber,
	model.FieldInsuredName,
	model.FieldIssueDate,
	model.FieldMaturityDate,
}

// optionalDocumentFields contribute a completeness bonus when present.
var optionalDocumentFields = []string{
	model.FieldPremiumSchedule,
	model.FieldRiders,
	model.FieldExclusions,
	model.FieldCurrency,
}

const (
	missingFieldPenalty    = 0.10
	validationErrorPenalty = 0.15
	completenessBonus      = 0.10
)

var policyNumberPattern = regexp.MustCompile(`^[A-Z0-9]{8,20}$`)

var recognizedCurrencies = map[string]bool{
	"USD": true, "HKD": true, "EUR": true, "GBP": true, "CNY": true,
	"SGD": true, "JPY": true, "KRW": true, "AUD": true, "CAD": true,
	"CHF": true, "TWD": true, "MYR": true, "THB": true,
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
}

// ValidateDocument scores a document extraction independently of the rest of
// the pipeline. An absent extraction is not an error: it yields confidence 0
// with every required field reported missing, which the aggregator and
// confidence calculator consume as a low-confidence signal.
func ValidateDocument(doc *model.DocumentExtraction) model.DocumentAnalysis {
	if doc == nil || len(doc.Fields) == 0 {
		return model.DocumentAnalysis{
			Confidence:    0,
			MissingFields: append([]string(nil), requiredDocumentFields...),
		}
	}

	analysis := model.DocumentAnalysis{
		SuggestedCorrections: make(map[string]string),
	}

	for _, field := range requiredDocumentFields {
		if _, ok := doc.Get(field); !ok {
			analysis.MissingFields = append(analysis.MissingFields, field)
		}
	}

	for _, field := range []string{model.FieldIssueDate, model.FieldMaturityDate} {
		v, ok := doc.Get(field)
		if !ok {
			continue
		}
		if !isValidDate(v) {
			analysis.ValidationErrors = append(analysis.ValidationErrors,
				fmt.Sprintf("%s: unparseable date %q", field, v))
			if fixed := suggestDateCorrection(v); fixed != v {
				analysis.SuggestedCorrections[field] = fixed
			}
		}
	}

	if v, ok := doc.Get(model.FieldPolicyNumber); ok && !policyNumberPattern.MatchString(v) {
		analysis.ValidationErrors = append(analysis.ValidationErrors,
			fmt.Sprintf("%s: does not match expected format", model.FieldPolicyNumber))
		if fixed := suggestPolicyNumberCorrection(v); fixed != v {
			analysis.SuggestedCorrections[model.FieldPolicyNumber] = fixed
		}
	}

	if v, ok := doc.Get(model.FieldCurrency); ok && !recognizedCurrencies[strings.ToUpper(v)] {
		analysis.ValidationErrors = append(analysis.ValidationErrors,
			fmt.Sprintf("%s: unrecognized currency code %q", model.FieldCurrency, v))
	}

	optionalPresent := 0
	for _, field := range optionalDocumentFields {
		if _, ok := doc.Get(field); ok {
			optionalPresent++
		}
	}
	optionalFraction := float64(optionalPresent) / float64(len(optionalDocumentFields))

	requiredPresent := len(requiredDocumentFields) - len(analysis.MissingFields)
	requiredFraction := float64(requiredPresent) / float64(len(requiredDocumentFields))
	analysis.Completeness = requiredFraction*0.8 + optionalFraction*0.2

	confidence := 1.0
	confidence -= float64(len(analysis.MissingFields)) * missingFieldPenalty
	confidence -= float64(len(analysis.ValidationErrors)) * validationErrorPenalty
	confidence += optionalFraction * completenessBonus
	analysis.Confidence = clamp(confidence, 0, 1)

	if len(analysis.SuggestedCorrections) == 0 {
		analysis.SuggestedCorrections = nil
	}

	return analysis
}

func isValidDate(s string) bool {
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

var (
	dmyPattern = regexp.MustCompile(`^(\d{1,2})[/.\s-](\d{1,2})[/.\s-](\d{4})$`)
	ymdPattern = regexp.MustCompile(`^(\d{4})[/.\s-](\d{1,2})[/.\s-](\d{1,2})$`)
)

// suggestDateCorrection normalizes common date shapes to ISO form. It only
// reshapes; it does not validate the calendar date.
func suggestDateCorrection(s string) string {
	s = strings.TrimSpace(s)
	if m := ymdPattern.FindStringSubmatch(s); m != nil {
		return isoDate(m[1], m[2], m[3])
	}
	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		return isoDate(m[3], m[2], m[1])
	}
	return s
}

func isoDate(year, month, day string) string {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}

// suggestPolicyNumberCorrection strips separators OCR tends to hallucinate.
func suggestPolicyNumberCorrection(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
