// Package report renders a risk assessment into the human-readable clinical
// documents shown to reviewers: an executive summary, a detailed report, a
// clinical summary, a BI-RADS assessment and a recommendations sheet.
//
// Rendering is plain string formatting over the structured Assessment; no
// medical judgment happens here beyond the fixed BI-RADS lookup tables.
// Every document carries the educational-use disclaimer.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/ironsheep/mammo-screen-mcp/internal/assess"
	"github.com/ironsheep/mammo-screen-mcp/internal/heuristics"
)

// Report bundles the rendered document sections for one assessment.
type Report struct {
	ExecutiveSummary string `json:"executive_summary"`
	DetailedReport   string `json:"detailed_report"`
	ClinicalSummary  string `json:"clinical_summary"`
	BIRADSReport     string `json:"bi_rads_report"`
	Recommendations  string `json:"recommendations"`

	// GeneratedAt is when the report was rendered (not when the image was
	// analyzed).
	GeneratedAt time.Time `json:"generated_at"`
}

// Renderer produces Reports. The clock is injectable for tests.
type Renderer struct {
	now func() time.Time
}

// NewRenderer returns a renderer using the wall clock.
func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

// NewRendererAt returns a renderer with a fixed clock.
func NewRendererAt(now func() time.Time) *Renderer {
	return &Renderer{now: now}
}

const disclaimer = "DISCLAIMER: This automated analysis is for educational purposes and must be reviewed by a qualified medical professional."

// biradsDescriptions maps each BI-RADS category to its standard label.
var biradsDescriptions = map[int]string{
	1: "Negative - No significant abnormality",
	2: "Benign - Non-cancerous findings",
	3: "Probably Benign - <2% risk of malignancy",
	4: "Suspicious - 2-95% risk of malignancy",
	5: "Highly Suggestive of Malignancy - >95% risk",
	6: "Known Malignancy - Proven cancer",
}

// biradsActions maps each category to the recommended next step.
var biradsActions = map[int]string{
	1: "routine annual screening is recommended",
	2: "routine annual screening is recommended",
	3: "short-term follow-up in 6 months is suggested",
	4: "tissue sampling (biopsy) should be considered",
	5: "tissue sampling (biopsy) is strongly recommended",
	6: "appropriate treatment planning is indicated",
}

// Generate renders all sections for an assessment. verdict may be nil when
// the heuristic validation stage was skipped or bypassed; when present its
// confidence and warnings are included in the detailed report.
func (r *Renderer) Generate(a *assess.Assessment, verdict *heuristics.Verdict) *Report {
	now := r.now()
	return &Report{
		ExecutiveSummary: r.executiveSummary(a, now),
		DetailedReport:   r.detailedReport(a, verdict, now),
		ClinicalSummary:  r.clinicalSummary(a),
		BIRADSReport:     r.biradsReport(a),
		Recommendations:  r.recommendations(a),
		GeneratedAt:      now,
	}
}

func (r *Renderer) executiveSummary(a *assess.Assessment, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "MAMMOGRAPHY AI ANALYSIS - EXECUTIVE SUMMARY\n\n")
	fmt.Fprintf(&b, "Classification:      BI-RADS %d\n", a.BIRADSCategory)
	fmt.Fprintf(&b, "Cancer probability:  %d%%\n", a.CancerProbability)
	fmt.Fprintf(&b, "Risk level:          %s\n", a.RiskLevel)
	fmt.Fprintf(&b, "Urgency:             %s\n\n", a.UrgencyLevel)
	fmt.Fprintf(&b, "Key findings:\n%s\n\n", orDefault(a.PrimaryFindings, "Analysis completed"))
	fmt.Fprintf(&b, "Immediate action required:\n%s\n\n", orDefault(a.ClinicalRecommendations, "Follow standard protocols"))
	fmt.Fprintf(&b, "Report generated: %s\n", now.Format("2006-01-02 15:04:05"))
	if a.Model != "" {
		fmt.Fprintf(&b, "Analysis model:   %s\n", a.Model)
	}
	b.WriteString("\n" + disclaimer)
	return b.String()
}

func (r *Renderer) detailedReport(a *assess.Assessment, verdict *heuristics.Verdict, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "DETAILED MAMMOGRAPHY ANALYSIS REPORT\n\n")

	fmt.Fprintf(&b, "Clinical information:\n")
	fmt.Fprintf(&b, "  Analysis date: %s\n", now.Format("2006-01-02 15:04:05"))
	if a.Model != "" {
		fmt.Fprintf(&b, "  Analysis model: %s\n", a.Model)
	}
	if verdict != nil {
		fmt.Fprintf(&b, "  Image validation confidence: %.2f (accepted as mammogram: %t)\n",
			verdict.Confidence, verdict.IsMammogram)
		for _, w := range verdict.Warnings {
			fmt.Fprintf(&b, "  Validation warning: %s\n", w)
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Classification results:\n")
	fmt.Fprintf(&b, "  BI-RADS category:   %d\n", a.BIRADSCategory)
	fmt.Fprintf(&b, "  Cancer probability: %d%%\n", a.CancerProbability)
	fmt.Fprintf(&b, "  Risk stratification: %s\n", a.RiskLevel)
	fmt.Fprintf(&b, "  Clinical urgency:   %s\n\n", a.UrgencyLevel)

	fmt.Fprintf(&b, "Detailed findings:\n")
	fmt.Fprintf(&b, "  Mass detection: %s\n", orDefault(a.MassDetected, "No masses detected"))
	fmt.Fprintf(&b, "  Calcification analysis: %s\n", orDefault(a.Calcifications, "No significant calcifications"))
	fmt.Fprintf(&b, "  Architectural assessment: %s\n", orDefault(a.ArchitecturalDistortion, "No architectural distortion"))
	fmt.Fprintf(&b, "  Symmetry evaluation: %s\n\n", orDefault(a.AsymmetryPresent, "Bilateral symmetry maintained"))

	fmt.Fprintf(&b, "Primary observations:\n%s\n\n", orDefault(a.PrimaryFindings, "Standard mammographic appearance"))
	fmt.Fprintf(&b, "Clinical recommendations:\n%s\n\n", orDefault(a.ClinicalRecommendations, "Continue routine screening"))
	fmt.Fprintf(&b, "Additional notes:\n%s\n\n", orDefault(a.AdditionalNotes, "No additional observations"))

	b.WriteString(disclaimer)
	return b.String()
}

func (r *Renderer) clinicalSummary(a *assess.Assessment) string {
	var interpretation string
	switch {
	case a.BIRADSCategory <= 2:
		interpretation = "Negative or benign findings"
	case a.BIRADSCategory == 3:
		interpretation = "Probably benign - short interval follow-up suggested"
	case a.BIRADSCategory == 4:
		interpretation = "Suspicious abnormality - tissue sampling recommended"
	case a.BIRADSCategory == 5:
		interpretation = "Highly suggestive of malignancy - appropriate action required"
	default:
		interpretation = "Known malignancy - treatment planning indicated"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "CLINICAL SUMMARY\n\n")
	fmt.Fprintf(&b, "Assessment: BI-RADS %d (%s)\n", a.BIRADSCategory, interpretation)
	fmt.Fprintf(&b, "Cancer risk: %d%% probability\n", a.CancerProbability)
	fmt.Fprintf(&b, "Clinical priority: %s\n\n", a.UrgencyLevel)
	fmt.Fprintf(&b, "Key findings:\n%s\n\n", orDefault(a.PrimaryFindings, "Standard mammographic findings"))
	fmt.Fprintf(&b, "Recommended actions:\n%s", orDefault(a.ClinicalRecommendations, "Continue routine care"))
	return b.String()
}

func (r *Renderer) biradsReport(a *assess.Assessment) string {
	description, ok := biradsDescriptions[a.BIRADSCategory]
	if !ok {
		description = "Assessment pending"
	}
	action, ok := biradsActions[a.BIRADSCategory]
	if !ok {
		action = "clinical correlation is recommended"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "BI-RADS ASSESSMENT REPORT\n\n")
	fmt.Fprintf(&b, "BI-RADS category: %d\n", a.BIRADSCategory)
	fmt.Fprintf(&b, "Description: %s\n", description)
	fmt.Fprintf(&b, "Cancer probability: %d%%\n\n", a.CancerProbability)
	fmt.Fprintf(&b, "Clinical correlation:\n%s\n\n", orDefault(a.ClinicalRecommendations, "Standard follow-up recommended"))
	fmt.Fprintf(&b, "Next steps:\nBased on the BI-RADS %d classification, %s.", a.BIRADSCategory, action)
	return b.String()
}

func (r *Renderer) recommendations(a *assess.Assessment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CLINICAL RECOMMENDATIONS\n\n")
	fmt.Fprintf(&b, "Immediate actions:\n%s\n\n", orDefault(a.ClinicalRecommendations, "Continue standard care"))
	fmt.Fprintf(&b, "Follow-up schedule:\n%s\n\n", followUpSchedule(a.BIRADSCategory, a.UrgencyLevel))
	fmt.Fprintf(&b, "Additional considerations:\n%s\n\n", orDefault(a.AdditionalNotes, "No additional recommendations"))
	fmt.Fprintf(&b, "Priority level: %s\n", a.UrgencyLevel)
	fmt.Fprintf(&b, "Risk assessment: %s (%d%%)", a.RiskLevel, a.CancerProbability)
	return b.String()
}

// followUpSchedule picks a follow-up interval from urgency first, then the
// BI-RADS category.
func followUpSchedule(birads int, urgency string) string {
	switch urgency {
	case "IMMEDIATE":
		return "Immediate consultation within 24-48 hours"
	case "URGENT":
		return "Diagnostic follow-up within 1-2 weeks"
	}
	switch {
	case birads <= 2:
		return "Routine annual screening"
	case birads == 3:
		return "Short-interval follow-up imaging in 6 months"
	default:
		return "As directed by the consulting radiologist"
	}
}

// orDefault substitutes fallback text for fields the model left empty.
func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
