package reports

import (
	"encoding/json"
	"testing"
)

func minimalBundle() *Bundle {
	return &Bundle{
		Report: &Report{
			ID:          "r1",
			PatientID:   "p1",
			Quote:       "quote",
			Description: "description",
		},
		Patient: &Patient{
			ID:          "p1",
			Name:        "Jane Roe",
			Gender:      "female",
			DateOfBirth: "1990-04-01",
		},
	}
}

func TestTransformEmptyBundleHasStableShape(t *testing.T) {
	view := Transform(minimalBundle())

	raw, err := json.Marshal(view)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	// Every section must be present and non-null even for an empty report
	for _, key := range []string{
		"content", "settings", "patientInfo", "dynamicDietFieldDefinitions",
		"nutritionData", "lifestyleConditions", "lifestyleCategoryImages",
		"metabolicCore", "digestiveHealth", "genesAndAddiction", "sleepAndRest",
		"allergiesAndSensitivity", "preventiveHealth", "familyGeneticImpactSection",
		"genomicAnalysisTable", "healthSummary",
	} {
		if doc[key] == nil {
			t.Errorf("section %q is null in empty view", key)
		}
	}
}

func TestTransformHeaderAndPatientInfo(t *testing.T) {
	view := Transform(minimalBundle())

	if view.Content.Quote != "quote" {
		t.Errorf("unexpected quote: %s", view.Content.Quote)
	}
	if view.PatientInfo.Name != "Jane Roe" {
		t.Errorf("unexpected patient name: %s", view.PatientInfo.Name)
	}
	if view.PatientInfo.BirthDate != "1990-04-01" {
		t.Errorf("unexpected birth date: %s", view.PatientInfo.BirthDate)
	}
}

func TestTransformNutritionKeying(t *testing.T) {
	b := minimalBundle()
	b.Nutrition = []NutritionEntry{
		{ID: "n1", Section: "vitamins", Field: "vitaminD", Score: 7},
		{ID: "n2", Section: "vitamins", Field: "vitaminB12", Score: 4},
		{ID: "n3", Section: "minerals", Field: "iron", Score: 9},
	}

	view := Transform(b)

	vitamins := view.NutritionData.Data["vitamins"]
	if vitamins == nil {
		t.Fatal("missing vitamins section")
	}
	if vitamins["vitaminD"].Score != 7 {
		t.Errorf("unexpected vitaminD score: %d", vitamins["vitaminD"].Score)
	}
	if len(vitamins) != 2 {
		t.Errorf("expected 2 vitamin fields, got %d", len(vitamins))
	}
	if view.NutritionData.Data["minerals"]["iron"].Score != 9 {
		t.Error("iron entry missing")
	}
}

func TestTransformLifestyleKeying(t *testing.T) {
	b := minimalBundle()
	b.Lifestyle = []LifestyleCondition{
		{CategoryID: "heart", ConditionName: "Hypertension", Sensitivity: "high", Avoid: []string{"salt"}},
		{CategoryID: "heart", ConditionName: "Cholesterol", Sensitivity: "medium"},
		{CategoryID: "bones", ConditionName: "Osteoporosis"},
	}

	view := Transform(b)

	heart := view.LifestyleConditions["heart"]
	if len(heart) != 2 {
		t.Fatalf("expected 2 heart conditions, got %d", len(heart))
	}
	if heart["Hypertension"].Sensitivity != "high" {
		t.Error("condition attributes lost")
	}
	if len(view.LifestyleConditions["bones"]) != 1 {
		t.Error("bones category missing")
	}
}

func TestTransformMetabolicGrouping(t *testing.T) {
	b := minimalBundle()
	b.Metabolic = []MetabolicEntry{
		{ID: "m1", Area: "Lipid Metabolism", GeneName: "APOE", Genotype: "e3/e4", Impact: "elevated", Advice: "limit saturated fat"},
		{ID: "m2", Area: "Lipid Metabolism", GeneName: "LPL", Genotype: "CC", Impact: "normal"},
		{ID: "m3", Area: "Caffeine", GeneName: "CYP1A2", Genotype: "AA", Impact: "fast metabolizer"},
	}

	view := Transform(b)

	lipid := view.MetabolicCore["Lipid Metabolism"]
	if lipid == nil {
		t.Fatal("missing lipid area")
	}
	if len(lipid.Genes) != 2 {
		t.Errorf("expected 2 lipid genes, got %d", len(lipid.Genes))
	}
	if lipid.Advice != "limit saturated fat" {
		t.Errorf("area advice not taken from first carrying row: %q", lipid.Advice)
	}
	if len(view.MetabolicCore["Caffeine"].Genes) != 1 {
		t.Error("caffeine area missing")
	}
}

func TestTransformSectionItemRouting(t *testing.T) {
	b := minimalBundle()
	b.SectionItems = []SectionItem{
		{Section: SectionDigestive, Field: "lactose", Title: "Lactose"},
		{Section: SectionAddiction, Field: "caffeine", Title: "Caffeine"},
		{Section: SectionSleep, Field: "chronotype", Title: "Chronotype"},
		{Section: SectionAllergy, Field: "pollen", Title: "Pollen"},
	}

	view := Transform(b)

	if view.DigestiveHealth.Data["lactose"] == nil {
		t.Error("digestive item not routed")
	}
	if view.GenesAndAddiction.Data["caffeine"] == nil {
		t.Error("addiction item not routed")
	}
	if view.SleepAndRest.Data["chronotype"] == nil {
		t.Error("sleep item not routed")
	}
	if view.AllergiesAndSensitivity.Data["pollen"] == nil {
		t.Error("allergy item not routed")
	}
	if len(view.DigestiveHealth.Data) != 1 {
		t.Errorf("cross-section leakage: %d digestive items", len(view.DigestiveHealth.Data))
	}
}

func TestTransformPreventiveBuckets(t *testing.T) {
	b := minimalBundle()
	b.PreventiveTests = []PreventiveTest{
		{Frequency: FrequencyHalfYearly, TestName: "Lipid Profile"},
		{Frequency: FrequencyHalfYearly, TestName: "Vitamin D"},
		{Frequency: FrequencyYearly, TestName: "HbA1c"},
	}
	b.Supplements = []Supplement{{ID: "s1", Supplement: "D3", Needed: true}}

	view := Transform(b)

	if len(view.PreventiveHealth.DiagnosticTests.HalfYearly) != 2 {
		t.Errorf("expected 2 half-yearly tests, got %v", view.PreventiveHealth.DiagnosticTests.HalfYearly)
	}
	if len(view.PreventiveHealth.DiagnosticTests.Yearly) != 1 {
		t.Errorf("expected 1 yearly test, got %v", view.PreventiveHealth.DiagnosticTests.Yearly)
	}
	if len(view.PreventiveHealth.NutritionalSupplements) != 1 {
		t.Error("supplements missing")
	}
}

func TestTransformGenomicTableNesting(t *testing.T) {
	b := minimalBundle()
	b.GeneResults = []GeneTestResult{
		{Category: "Nutrition", Subcategory: "Vitamins", GeneName: "VDR", Result: "TT"},
		{Category: "Nutrition", Subcategory: "Vitamins", GeneName: "FUT2", Result: "AG"},
		{Category: "Nutrition", Subcategory: "Minerals", GeneName: "HFE", Result: "CC"},
		{Category: "Fitness", Subcategory: "Endurance", GeneName: "ACE", Result: "II"},
	}

	view := Transform(b)

	if len(view.GenomicAnalysisTable.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(view.GenomicAnalysisTable.Categories))
	}

	nutrition := view.GenomicAnalysisTable.Categories[0]
	if nutrition.Category != "Nutrition" {
		t.Errorf("first-seen order not preserved: %s", nutrition.Category)
	}
	if len(nutrition.Subcategories) != 2 {
		t.Fatalf("expected 2 subcategories, got %d", len(nutrition.Subcategories))
	}
	if len(nutrition.Subcategories[0].Genes) != 2 {
		t.Errorf("expected 2 vitamin genes, got %d", len(nutrition.Subcategories[0].Genes))
	}
	if nutrition.Subcategories[1].Area != "Minerals" {
		t.Errorf("unexpected subcategory: %s", nutrition.Subcategories[1].Area)
	}
}

func TestTransformHealthSummarySplit(t *testing.T) {
	b := minimalBundle()
	b.HealthSummaryEntries = []HealthSummaryEntry{
		{Section: SummaryStrengths, Title: "Antioxidants"},
		{Section: SummaryImprovements, Title: "Vitamin D"},
		{Section: SummaryImprovements, Title: "Omega-3"},
	}

	view := Transform(b)

	if len(view.HealthSummary.Strengths) != 1 {
		t.Errorf("expected 1 strength, got %d", len(view.HealthSummary.Strengths))
	}
	if len(view.HealthSummary.Improvements) != 2 {
		t.Errorf("expected 2 improvements, got %d", len(view.HealthSummary.Improvements))
	}
}
