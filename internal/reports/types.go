package reports

import "encoding/json"

// Patient is a patient row.
type Patient struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	DateOfBirth       string `json:"dateOfBirth"`
	Gender            string `json:"gender"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	SampleCollectedAt string `json:"sampleCollectedAt"`
	CreatedAt         int64  `json:"createdAt"`
	UpdatedAt         int64  `json:"updatedAt"`
}

// Report is a report row. Section data lives in its own tables and is
// loaded into a Bundle for transformation.
type Report struct {
	ID           string          `json:"id"`
	PatientID    string          `json:"patientId"`
	Quote        string          `json:"quote"`
	Description  string          `json:"description"`
	SettingsJSON json.RawMessage `json:"settings"`
	CreatedAt    int64           `json:"createdAt"`
	UpdatedAt    int64           `json:"updatedAt"`
}

// DietFieldDefinition is an admin-defined extra diet field.
type DietFieldDefinition struct {
	ID                   string `json:"id"`
	FieldID              string `json:"fieldId"`
	Label                string `json:"label"`
	Category             string `json:"category"`
	MinScore             int    `json:"min"`
	MaxScore             int    `json:"max"`
	HighRecommendation   string `json:"highRecommendation"`
	NormalRecommendation string `json:"normalRecommendation"`
	LowRecommendation    string `json:"lowRecommendation"`
}

// NutritionEntry is one (section, field) nutrition score.
type NutritionEntry struct {
	ID           string `json:"id"`
	Section      string `json:"section"`
	Field        string `json:"field"`
	Score        int    `json:"score"`
	HealthImpact string `json:"healthImpact"`
	IntakeLevel  string `json:"intakeLevel"`
	Source       string `json:"source"`
}

// LifestyleCondition is one condition within a lifestyle category.
type LifestyleCondition struct {
	ID            string   `json:"id"`
	CategoryID    string   `json:"categoryId"`
	ConditionName string   `json:"conditionName"`
	Sensitivity   string   `json:"sensitivity"`
	Avoid         []string `json:"avoid"`
	Follow        []string `json:"follow"`
	Consume       []string `json:"consume"`
	Monitor       []string `json:"monitor"`
	AvoidLabel    string   `json:"avoidLabel"`
	FollowLabel   string   `json:"followLabel"`
	ConsumeLabel  string   `json:"consumeLabel"`
	MonitorLabel  string   `json:"monitorLabel"`
}

// MetabolicEntry is one gene result within a metabolic area.
type MetabolicEntry struct {
	ID       string `json:"id"`
	Area     string `json:"area"`
	GeneName string `json:"name"`
	Genotype string `json:"genotype"`
	Impact   string `json:"impact"`
	Advice   string `json:"advice,omitempty"`
}

// SectionItem is a keyed item for the digestive, addiction, sleep, and
// allergy sections.
type SectionItem struct {
	ID          string `json:"id"`
	Section     string `json:"section"`
	Field       string `json:"field"`
	Title       string `json:"title"`
	Icon        string `json:"icon,omitempty"`
	Sensitivity string `json:"sensitivity,omitempty"`
	Description string `json:"description,omitempty"`
}

// Section names for SectionItem rows.
const (
	SectionDigestive = "digestive"
	SectionAddiction = "addiction"
	SectionSleep     = "sleep"
	SectionAllergy   = "allergy"
)

// PreventiveTest is a recommended diagnostic test.
type PreventiveTest struct {
	ID        string `json:"id"`
	Frequency string `json:"frequency"`
	TestName  string `json:"testName"`
}

// Test frequencies for PreventiveTest rows.
const (
	FrequencyHalfYearly = "halfYearly"
	FrequencyYearly     = "yearly"
)

// Supplement is a recommended nutritional supplement.
type Supplement struct {
	ID         string `json:"id"`
	Supplement string `json:"supplement"`
	Needed     bool   `json:"needed"`
}

// FamilyGeneticImpact is one row in the family genetic impact section.
type FamilyGeneticImpact struct {
	ID            string `json:"id"`
	Gene          string `json:"gene"`
	NormalAlleles string `json:"normalAlleles"`
	YourResult    string `json:"yourResult"`
	HealthImpact  string `json:"healthImpact"`
}

// GeneTestResult is one row in the genomic analysis table.
type GeneTestResult struct {
	ID          string `json:"-"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
	GeneName    string `json:"name"`
	Result      string `json:"result"`
}

// HealthSummaryEntry is one strengths/improvements entry.
type HealthSummaryEntry struct {
	ID          string `json:"-"`
	Section     string `json:"section,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Health summary sections.
const (
	SummaryStrengths    = "strengths"
	SummaryImprovements = "improvements"
)

// Bundle is a fully loaded report: the report row, its patient, and every
// section table's rows. Transform flattens a Bundle into the nested JSON
// the report viewer consumes.
type Bundle struct {
	Report               *Report
	Patient              *Patient
	DietFields           []DietFieldDefinition
	Nutrition            []NutritionEntry
	Lifestyle            []LifestyleCondition
	LifestyleImages      map[string]string
	Metabolic            []MetabolicEntry
	SectionItems         []SectionItem
	PreventiveTests      []PreventiveTest
	Supplements          []Supplement
	FamilyImpacts        []FamilyGeneticImpact
	GeneResults          []GeneTestResult
	HealthSummaryEntries []HealthSummaryEntry
}
