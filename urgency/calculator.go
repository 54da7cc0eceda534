// Package urgency computes a bounded, explainable urgency score for a
// reported issue. Calculate is pure: it performs no I/O and is deterministic
// for a fixed clock reading, so it needs no synchronization.
package urgency

import (
	"fmt"
	"math"
	"strings"
	"time"

	"civicreport-be/models"
)

// Input carries the issue attributes the score is derived from.
// ImageAnalysis is optional free text from an upstream image classifier and
// is treated exactly like the description.
type Input struct {
	IssueType     string
	Location      string
	Description   string
	ImageAnalysis string
}

// Factor is one scoring contribution with its human-readable justification.
// The factor list is part of the service contract, not incidental logging.
type Factor struct {
	Name   string  `json:"name"`
	Impact float64 `json:"impact"`
	Reason string  `json:"reason"`
}

// Result is the full classification output.
type Result struct {
	Score                 int                 `json:"score"`
	Level                 models.UrgencyLevel `json:"level"`
	Factors               []Factor            `json:"factors"`
	Recommendation        string              `json:"recommendation"`
	EstimatedResponseTime string              `json:"estimatedResponseTime"`
}

// Base urgency per issue type, on a 0-100 scale. Unknown types fall back to
// defaultBaseUrgency.
var issueTypeUrgency = map[string]int{
	// Critical infrastructure
	"Gas Leak":          95,
	"Water Main Break":  90,
	"Electrical Hazard": 90,
	"Fire Hazard":       95,
	"Downed Power Line": 95,

	// High priority
	"Pothole":                    70,
	"Broken Streetlight":         65,
	"Traffic Signal Malfunction": 85,
	"Blocked Drainage":           75,
	"Damaged Road":               70,
	"Missing Manhole Cover":      85,

	// Medium priority
	"Garbage Accumulation": 50,
	"Illegal Dumping":      55,
	"Graffiti":             40,
	"Overgrown Vegetation": 35,
	"Sidewalk Damage":      60,
	"Street Sign Damage":   55,

	// Lower priority
	"Noise Complaint":        30,
	"Stray Animals":          45,
	"Public Property Damage": 50,
	"Park Maintenance":       35,
	"Faded Road Markings":    40,
}

const defaultBaseUrgency = 50

// High-traffic and sensitive areas; a location mentioning any of these
// affects more people and raises the score.
var highTrafficAreas = []string{
	"hazratganj", "gomti nagar", "alambagh", "charbagh", "indira nagar",
	"aminabad", "mahanagar", "aliganj", "rajajipuram", "station",
	"hospital", "school", "college", "market", "railway", "expressway",
	"vidhan sabha", "secretariat", "bus stand", "chowk", "crossing",
	"university", "mall", "park", "gate", "temple", "mosque", "church",
}

var safetyKeywords = []string{
	"dangerous", "hazard", "broken", "exposed", "leak",
	"fire", "electrical", "sharp", "deep", "missing",
}

// Calculate scores an issue with a weighted combination of four factors:
// issue-type base urgency (40% of the base rating), location impact, safety
// keyword density and time-of-day sensitivity. The final score is rounded
// and clamped to [0,100].
func Calculate(in Input, now time.Time) Result {
	var factors []Factor
	var total float64

	base, ok := issueTypeUrgency[in.IssueType]
	if !ok {
		base = defaultBaseUrgency
	}
	baseImpact := float64(base) * 0.4
	factors = append(factors, Factor{
		Name:   "Issue Type",
		Impact: baseImpact,
		Reason: fmt.Sprintf("%s has a base urgency rating of %d/100", in.IssueType, base),
	})
	total += baseImpact

	locationLower := strings.ToLower(in.Location)
	highTraffic := false
	for _, area := range highTrafficAreas {
		if strings.Contains(locationLower, area) {
			highTraffic = true
			break
		}
	}
	locationImpact := 12.5
	locationReason := "Moderate traffic area"
	if highTraffic {
		locationImpact = 25
		locationReason = "High traffic area - affects many people"
	}
	factors = append(factors, Factor{
		Name:   "Location Impact",
		Impact: locationImpact,
		Reason: locationReason,
	})
	total += locationImpact

	combinedText := strings.ToLower(in.Description) + " " + strings.ToLower(in.ImageAnalysis)
	safetyCount := 0
	for _, keyword := range safetyKeywords {
		if strings.Contains(combinedText, keyword) {
			safetyCount++
		}
	}
	safetyImpact := math.Min(float64(safetyCount)*5, 25)
	if safetyImpact > 0 {
		factors = append(factors, Factor{
			Name:   "Safety Concern",
			Impact: safetyImpact,
			Reason: fmt.Sprintf("Detected %d safety-related indicator(s)", safetyCount),
		})
		total += safetyImpact
	}

	hour := now.Hour()
	peakHours := (hour >= 7 && hour <= 10) || (hour >= 16 && hour <= 19)
	timeImpact := 5.0
	timeReason := "Reported during off-peak hours"
	if peakHours {
		timeImpact = 10
		timeReason = "Reported during peak hours - higher impact"
	}
	factors = append(factors, Factor{
		Name:   "Time Factor",
		Impact: timeImpact,
		Reason: timeReason,
	})
	total += timeImpact

	score := int(math.Round(total))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	level, recommendation, responseTime := classify(score)

	return Result{
		Score:                 score,
		Level:                 level,
		Factors:               factors,
		Recommendation:        recommendation,
		EstimatedResponseTime: responseTime,
	}
}

// classify buckets a score into its urgency level. The thresholds are fixed
// at 85/65/40.
func classify(score int) (models.UrgencyLevel, string, string) {
	switch {
	case score >= 85:
		return models.UrgencyCritical,
			"Immediate action required. Deploy emergency response team.",
			"1-2 hours"
	case score >= 65:
		return models.UrgencyHigh,
			"High priority. Schedule response within same day.",
			"4-8 hours"
	case score >= 40:
		return models.UrgencyMedium,
			"Moderate priority. Schedule within 2-3 days.",
			"2-3 days"
	default:
		return models.UrgencyLow,
			"Lower priority. Can be scheduled during routine maintenance.",
			"5-7 days"
	}
}

// LevelForScore exposes the threshold mapping on its own, for callers that
// already have a score.
func LevelForScore(score int) models.UrgencyLevel {
	level, _, _ := classify(score)
	return level
}
