package reports

import "encoding/json"

// View is the nested JSON document the report viewer consumes. It is
// produced from a Bundle by Transform and never written back.
type View struct {
	ID                          string                                    `json:"id"`
	PatientID                   string                                    `json:"patientId"`
	Content                     ViewContent                               `json:"content"`
	Settings                    json.RawMessage                           `json:"settings"`
	PatientInfo                 ViewPatientInfo                           `json:"patientInfo"`
	DynamicDietFieldDefinitions []DietFieldDefinition                     `json:"dynamicDietFieldDefinitions"`
	NutritionData               ViewNutrition                             `json:"nutritionData"`
	LifestyleConditions         map[string]map[string]*LifestyleCondition `json:"lifestyleConditions"`
	LifestyleCategoryImages     map[string]string                         `json:"lifestyleCategoryImages"`
	MetabolicCore               map[string]*ViewMetabolicArea             `json:"metabolicCore"`
	DigestiveHealth             ViewKeyedSection                          `json:"digestiveHealth"`
	GenesAndAddiction           ViewKeyedSection                          `json:"genesAndAddiction"`
	SleepAndRest                ViewKeyedSection                          `json:"sleepAndRest"`
	AllergiesAndSensitivity     ViewKeyedSection                          `json:"allergiesAndSensitivity"`
	PreventiveHealth            ViewPreventiveHealth                      `json:"preventiveHealth"`
	FamilyGeneticImpactSection  ViewFamilyImpacts                         `json:"familyGeneticImpactSection"`
	GenomicAnalysisTable        ViewGenomicTable                          `json:"genomicAnalysisTable"`
	HealthSummary               ViewHealthSummary                         `json:"healthSummary"`
}

// ViewContent carries the report's header texts.
type ViewContent struct {
	Quote       string `json:"quote"`
	Description string `json:"description"`
}

// ViewPatientInfo is the patient block shown on the report cover.
type ViewPatientInfo struct {
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	BirthDate  string `json:"birthDate"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	SampleDate string `json:"sampleDate"`
}

// ViewNutrition keys nutrition entries by section, then field.
type ViewNutrition struct {
	Data map[string]map[string]*NutritionEntry `json:"data"`
}

// ViewMetabolicArea groups gene results under a metabolic area.
type ViewMetabolicArea struct {
	Advice string            `json:"advice"`
	Genes  []*MetabolicEntry `json:"genes"`
}

// ViewKeyedSection keys section items by field.
type ViewKeyedSection struct {
	Data map[string]*SectionItem `json:"data"`
}

// ViewPreventiveHealth buckets diagnostic tests by frequency.
type ViewPreventiveHealth struct {
	DiagnosticTests struct {
		HalfYearly []string `json:"halfYearly"`
		Yearly     []string `json:"yearly"`
	} `json:"diagnosticTests"`
	NutritionalSupplements []Supplement `json:"nutritionalSupplements"`
}

// ViewFamilyImpacts wraps the family genetic impact rows.
type ViewFamilyImpacts struct {
	Impacts []FamilyGeneticImpact `json:"impacts"`
}

// ViewGenomicTable nests gene results category -> subcategory -> genes.
type ViewGenomicTable struct {
	Categories []ViewGenomicCategory `json:"categories"`
}

// ViewGenomicCategory is one top-level category of the genomic table.
type ViewGenomicCategory struct {
	Category      string                   `json:"category"`
	Subcategories []ViewGenomicSubcategory `json:"subcategories"`
}

// ViewGenomicSubcategory holds the gene rows of one subcategory.
type ViewGenomicSubcategory struct {
	Area  string           `json:"area"`
	Genes []GeneTestResult `json:"genes"`
}

// ViewHealthSummary splits summary entries into strengths and improvements.
type ViewHealthSummary struct {
	Strengths    []HealthSummaryEntry `json:"strengths"`
	Improvements []HealthSummaryEntry `json:"improvements"`
}

// Transform flattens a loaded Bundle into the viewer document. All maps
// and slices are non-nil so the JSON shape is stable for empty reports.
func Transform(b *Bundle) *View {
	v := &View{
		ID:        b.Report.ID,
		PatientID: b.Report.PatientID,
		Content: ViewContent{
			Quote:       b.Report.Quote,
			Description: b.Report.Description,
		},
		Settings: b.Report.SettingsJSON,
		PatientInfo: ViewPatientInfo{
			Name:       b.Patient.Name,
			Gender:     b.Patient.Gender,
			BirthDate:  b.Patient.DateOfBirth,
			Email:      b.Patient.Email,
			Phone:      b.Patient.Phone,
			SampleDate: b.Patient.SampleCollectedAt,
		},
		DynamicDietFieldDefinitions: b.DietFields,
		LifestyleConditions:         map[string]map[string]*LifestyleCondition{},
		LifestyleCategoryImages:     b.LifestyleImages,
		MetabolicCore:               map[string]*ViewMetabolicArea{},
	}

	if len(v.Settings) == 0 {
		v.Settings = json.RawMessage("{}")
	}
	if v.DynamicDietFieldDefinitions == nil {
		v.DynamicDietFieldDefinitions = []DietFieldDefinition{}
	}
	if v.LifestyleCategoryImages == nil {
		v.LifestyleCategoryImages = map[string]string{}
	}

	v.NutritionData.Data = map[string]map[string]*NutritionEntry{}
	for i := range b.Nutrition {
		entry := &b.Nutrition[i]
		section := v.NutritionData.Data[entry.Section]
		if section == nil {
			section = map[string]*NutritionEntry{}
			v.NutritionData.Data[entry.Section] = section
		}
		section[entry.Field] = entry
	}

	for i := range b.Lifestyle {
		cond := &b.Lifestyle[i]
		category := v.LifestyleConditions[cond.CategoryID]
		if category == nil {
			category = map[string]*LifestyleCondition{}
			v.LifestyleConditions[cond.CategoryID] = category
		}
		category[cond.ConditionName] = cond
	}

	for i := range b.Metabolic {
		entry := &b.Metabolic[i]
		area := v.MetabolicCore[entry.Area]
		if area == nil {
			area = &ViewMetabolicArea{Genes: []*MetabolicEntry{}}
			v.MetabolicCore[entry.Area] = area
		}
		// Area advice comes from the first row that carries one
		if area.Advice == "" {
			area.Advice = entry.Advice
		}
		area.Genes = append(area.Genes, entry)
	}

	v.DigestiveHealth = keyedSection(b.SectionItems, SectionDigestive)
	v.GenesAndAddiction = keyedSection(b.SectionItems, SectionAddiction)
	v.SleepAndRest = keyedSection(b.SectionItems, SectionSleep)
	v.AllergiesAndSensitivity = keyedSection(b.SectionItems, SectionAllergy)

	v.PreventiveHealth.DiagnosticTests.HalfYearly = []string{}
	v.PreventiveHealth.DiagnosticTests.Yearly = []string{}
	for _, test := range b.PreventiveTests {
		switch test.Frequency {
		case FrequencyHalfYearly:
			v.PreventiveHealth.DiagnosticTests.HalfYearly = append(v.PreventiveHealth.DiagnosticTests.HalfYearly, test.TestName)
		case FrequencyYearly:
			v.PreventiveHealth.DiagnosticTests.Yearly = append(v.PreventiveHealth.DiagnosticTests.Yearly, test.TestName)
		}
	}
	v.PreventiveHealth.NutritionalSupplements = b.Supplements
	if v.PreventiveHealth.NutritionalSupplements == nil {
		v.PreventiveHealth.NutritionalSupplements = []Supplement{}
	}

	v.FamilyGeneticImpactSection.Impacts = b.FamilyImpacts
	if v.FamilyGeneticImpactSection.Impacts == nil {
		v.FamilyGeneticImpactSection.Impacts = []FamilyGeneticImpact{}
	}

	v.GenomicAnalysisTable = genomicTable(b.GeneResults)

	v.HealthSummary.Strengths = []HealthSummaryEntry{}
	v.HealthSummary.Improvements = []HealthSummaryEntry{}
	for _, entry := range b.HealthSummaryEntries {
		switch entry.Section {
		case SummaryStrengths:
			v.HealthSummary.Strengths = append(v.HealthSummary.Strengths, entry)
		case SummaryImprovements:
			v.HealthSummary.Improvements = append(v.HealthSummary.Improvements, entry)
		}
	}

	return v
}

func keyedSection(items []SectionItem, section string) ViewKeyedSection {
	out := ViewKeyedSection{Data: map[string]*SectionItem{}}
	for i := range items {
		if items[i].Section == section {
			out.Data[items[i].Field] = &items[i]
		}
	}
	return out
}

// genomicTable nests flat gene rows into category -> subcategory -> genes,
// preserving first-seen order of categories and subcategories.
func genomicTable(rows []GeneTestResult) ViewGenomicTable {
	table := ViewGenomicTable{Categories: []ViewGenomicCategory{}}
	catIndex := map[string]int{}
	subIndex := map[string]map[string]int{}

	for _, row := range rows {
		ci, ok := catIndex[row.Category]
		if !ok {
			ci = len(table.Categories)
			catIndex[row.Category] = ci
			subIndex[row.Category] = map[string]int{}
			table.Categories = append(table.Categories, ViewGenomicCategory{
				Category:      row.Category,
				Subcategories: []ViewGenomicSubcategory{},
			})
		}

		si, ok := subIndex[row.Category][row.Subcategory]
		if !ok {
			si = len(table.Categories[ci].Subcategories)
			subIndex[row.Category][row.Subcategory] = si
			table.Categories[ci].Subcategories = append(table.Categories[ci].Subcategories, ViewGenomicSubcategory{
				Area:  row.Subcategory,
				Genes: []GeneTestResult{},
			})
		}

		subs := table.Categories[ci].Subcategories
		subs[si].Genes = append(subs[si].Genes, row)
	}

	return table
}
