package assess

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	probabilityRe = regexp.MustCompile(`"cancer_probability":\s*(\d+)`)
	biradsRe      = regexp.MustCompile(`"bi_rads_category":\s*(\d)`)
)

// ParseResponse extracts a structured Assessment from free-form model
// output.
//
// The model is asked for a JSON-like structure but frequently pads it with
// prose or drops fields, so this is pattern extraction, not JSON decoding.
// Parsing never fails: every missing numeric field is derived from what is
// present, starting from a conservative default.
//
// Derivation chain when fields are absent:
//
//   - cancer_probability: keyword scan of the whole response
//     (malignant/suspicious language -> 75, "probably benign" -> 15, else 5)
//   - bi_rads_category: banded from the probability
//     (>=95 -> 6, >=50 -> 5, >=10 -> 4, >=2 -> 3, else 2)
//   - risk_level: >=50 HIGH, >=10 MODERATE, else LOW
//   - urgency_level: >=75 IMMEDIATE, >=25 URGENT, else ROUTINE
//
// risk_level and urgency_level are always derived from the probability,
// never trusted from the response, so the three values stay consistent
// with each other.
func ParseResponse(text string) *Assessment {
	a := &Assessment{RawResponse: text}

	if m := probabilityRe.FindStringSubmatch(text); m != nil {
		a.CancerProbability, _ = strconv.Atoi(m[1])
		if a.CancerProbability > 100 {
			a.CancerProbability = 100
		}
	} else {
		a.CancerProbability = probabilityFromKeywords(text)
	}

	if m := biradsRe.FindStringSubmatch(text); m != nil {
		a.BIRADSCategory, _ = strconv.Atoi(m[1])
	}
	if a.BIRADSCategory < 1 || a.BIRADSCategory > 6 {
		a.BIRADSCategory = biradsFromProbability(a.CancerProbability)
	}

	switch {
	case a.CancerProbability >= 50:
		a.RiskLevel = "HIGH"
	case a.CancerProbability >= 10:
		a.RiskLevel = "MODERATE"
	default:
		a.RiskLevel = "LOW"
	}

	switch {
	case a.CancerProbability >= 75:
		a.UrgencyLevel = "IMMEDIATE"
	case a.CancerProbability >= 25:
		a.UrgencyLevel = "URGENT"
	default:
		a.UrgencyLevel = "ROUTINE"
	}

	a.PrimaryFindings = extractField(text, "primary_findings")
	a.MassDetected = extractField(text, "mass_detected")
	a.Calcifications = extractField(text, "calcifications_detected")
	a.ArchitecturalDistortion = extractField(text, "architectural_distortion")
	a.AsymmetryPresent = extractField(text, "asymmetry_present")
	a.ClinicalRecommendations = extractField(text, "clinical_recommendations")
	a.AdditionalNotes = extractField(text, "additional_notes")

	return a
}

// probabilityFromKeywords estimates a risk percentage from the response
// wording when the numeric field is missing. Malignancy language wins over
// benign language: a sentence like "probably benign but one suspicious
// focus" should read as the higher risk.
func probabilityFromKeywords(text string) int {
	lower := strings.ToLower(text)
	for _, word := range []string{"malignant", "cancer", "suspicious", "concerning"} {
		if strings.Contains(lower, word) {
			return 75
		}
	}
	for _, phrase := range []string{"probably benign", "likely benign"} {
		if strings.Contains(lower, phrase) {
			return 15
		}
	}
	return 5
}

// biradsFromProbability maps a risk percentage onto the BI-RADS bands from
// the prompt. Category 1 is never auto-assigned; without an explicit
// negative read from the model, "benign" is the strongest default claim.
func biradsFromProbability(probability int) int {
	switch {
	case probability >= 95:
		return 6
	case probability >= 50:
		return 5
	case probability >= 10:
		return 4
	case probability >= 2:
		return 3
	default:
		return 2
	}
}

// extractField pulls a named field out of the JSON-like response. Tries a
// quoted value first, then the bracketed placeholder form some models echo
// back. Returns "" when the field is absent; report rendering supplies the
// per-field default text.
func extractField(text, field string) string {
	quoted := regexp.MustCompile(fmt.Sprintf(`"%s":\s*"([^"]*)"`, regexp.QuoteMeta(field)))
	if m := quoted.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	bracketed := regexp.MustCompile(fmt.Sprintf(`"%s":\s*\[([^\]]*)\]`, regexp.QuoteMeta(field)))
	if m := bracketed.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}

	return ""
}
