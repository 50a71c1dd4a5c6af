package reports

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Store provides access to patient and report rows plus all report
// section tables.
type Store struct {
	db *sql.DB
}

// NewStore creates a report store backed by the given database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ============================================================================
// Patients
// ============================================================================

// CreatePatient inserts a new patient row.
func (s *Store) CreatePatient(p *Patient) (*Patient, error) {
	now := time.Now().Unix()
	out := *p
	out.ID = uuid.NewString()
	out.CreatedAt = now
	out.UpdatedAt = now

	_, err := s.db.Exec(
		`INSERT INTO patients (id, name, date_of_birth, gender, email, phone, sample_collected_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		out.ID, out.Name, out.DateOfBirth, out.Gender, out.Email, out.Phone,
		out.SampleCollectedAt, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return &out, nil
}

// GetPatient looks up a patient by id. Returns (nil, nil) if not found.
func (s *Store) GetPatient(id string) (*Patient, error) {
	var p Patient
	err := s.db.QueryRow(
		`SELECT id, name, date_of_birth, gender, email, phone, sample_collected_at, created_at, updated_at
		 FROM patients WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.DateOfBirth, &p.Gender, &p.Email, &p.Phone,
		&p.SampleCollectedAt, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &p, nil
}

// ListPatients returns all patients, newest first.
func (s *Store) ListPatients() ([]*Patient, error) {
	rows, err := s.db.Query(
		`SELECT id, name, date_of_birth, gender, email, phone, sample_collected_at, created_at, updated_at
		 FROM patients ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		var p Patient
		if err := rows.Scan(&p.ID, &p.Name, &p.DateOfBirth, &p.Gender, &p.Email,
			&p.Phone, &p.SampleCollectedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, &p)
	}
	return patients, rows.Err()
}

// ============================================================================
// Reports
// ============================================================================

// CreateReport inserts a new report row for a patient.
func (s *Store) CreateReport(patientID, quote, description string, settings json.RawMessage) (*Report, error) {
	now := time.Now().Unix()
	if len(settings) == 0 {
		settings = json.RawMessage("{}")
	}
	r := &Report{
		ID:           uuid.NewString(),
		PatientID:    patientID,
		Quote:        quote,
		Description:  description,
		SettingsJSON: settings,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := s.db.Exec(
		`INSERT INTO reports (id, patient_id, quote, description, settings_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.PatientID, r.Quote, r.Description, string(r.SettingsJSON), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return r, nil
}

// GetReport looks up a report by id. Returns (nil, nil) if not found.
func (s *Store) GetReport(id string) (*Report, error) {
	var r Report
	var settings string
	err := s.db.QueryRow(
		`SELECT id, patient_id, quote, description, settings_json, created_at, updated_at
		 FROM reports WHERE id = ?`, id,
	).Scan(&r.ID, &r.PatientID, &r.Quote, &r.Description, &settings, &r.CreatedAt, &r.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}
	r.SettingsJSON = json.RawMessage(settings)
	return &r, nil
}

// ListReportsByPatient returns all reports for a patient, newest first.
func (s *Store) ListReportsByPatient(patientID string) ([]*Report, error) {
	rows, err := s.db.Query(
		`SELECT id, patient_id, quote, description, settings_json, created_at, updated_at
		 FROM reports WHERE patient_id = ? ORDER BY created_at DESC`, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		var r Report
		var settings string
		if err := rows.Scan(&r.ID, &r.PatientID, &r.Quote, &r.Description, &settings,
			&r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		r.SettingsJSON = json.RawMessage(settings)
		reports = append(reports, &r)
	}
	return reports, rows.Err()
}

// UpdateReport replaces a report's header fields and settings.
func (s *Store) UpdateReport(id, quote, description string, settings json.RawMessage) error {
	if len(settings) == 0 {
		settings = json.RawMessage("{}")
	}
	res, err := s.db.Exec(
		`UPDATE reports SET quote = ?, description = ?, settings_json = ?, updated_at = ? WHERE id = ?`,
		quote, description, string(settings), time.Now().Unix(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("report not found: %s", id)
	}
	return nil
}

// ReportBelongsToPatient checks report existence and ownership in one query.
// Used by share issuance to validate the (report, patient) pair.
func (s *Store) ReportBelongsToPatient(reportID, patientID string) (exists bool, owned bool, err error) {
	var owner string
	err = s.db.QueryRow(`SELECT patient_id FROM reports WHERE id = ?`, reportID).Scan(&owner)
	if err == sql.ErrNoRows {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("failed to check report ownership: %w", err)
	}
	return true, owner == patientID, nil
}

// ============================================================================
// Section tables
// ============================================================================

// LoadBundle loads a report, its patient, and every section table's rows.
// Returns (nil, nil) if the report does not exist.
func (s *Store) LoadBundle(reportID string) (*Bundle, error) {
	report, err := s.GetReport(reportID)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, nil
	}

	patient, err := s.GetPatient(report.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, fmt.Errorf("report %s references missing patient %s", reportID, report.PatientID)
	}

	b := &Bundle{Report: report, Patient: patient}

	if b.DietFields, err = s.loadDietFields(reportID); err != nil {
		return nil, err
	}
	if b.Nutrition, err = s.loadNutrition(reportID); err != nil {
		return nil, err
	}
	if b.Lifestyle, err = s.loadLifestyle(reportID); err != nil {
		return nil, err
	}
	if b.LifestyleImages, err = s.loadLifestyleImages(reportID); err != nil {
		return nil, err
	}
	if b.Metabolic, err = s.loadMetabolic(reportID); err != nil {
		return nil, err
	}
	if b.SectionItems, err = s.loadSectionItems(reportID); err != nil {
		return nil, err
	}
	if b.PreventiveTests, err = s.loadPreventiveTests(reportID); err != nil {
		return nil, err
	}
	if b.Supplements, err = s.loadSupplements(reportID); err != nil {
		return nil, err
	}
	if b.FamilyImpacts, err = s.loadFamilyImpacts(reportID); err != nil {
		return nil, err
	}
	if b.GeneResults, err = s.loadGeneResults(reportID); err != nil {
		return nil, err
	}
	if b.HealthSummaryEntries, err = s.loadHealthSummary(reportID); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Store) loadDietFields(reportID string) ([]DietFieldDefinition, error) {
	rows, err := s.db.Query(
		`SELECT id, field_id, label, category, min_score, max_score,
		        high_recommendation, normal_recommendation, low_recommendation
		 FROM diet_field_definitions WHERE report_id = ? ORDER BY label`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load diet fields: %w", err)
	}
	defer rows.Close()

	var out []DietFieldDefinition
	for rows.Next() {
		var d DietFieldDefinition
		if err := rows.Scan(&d.ID, &d.FieldID, &d.Label, &d.Category, &d.MinScore,
			&d.MaxScore, &d.HighRecommendation, &d.NormalRecommendation, &d.LowRecommendation); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) loadNutrition(reportID string) ([]NutritionEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, section, field, score, health_impact, intake_level, source
		 FROM nutrition_entries WHERE report_id = ? ORDER BY section, field`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load nutrition entries: %w", err)
	}
	defer rows.Close()

	var out []NutritionEntry
	for rows.Next() {
		var n NutritionEntry
		if err := rows.Scan(&n.ID, &n.Section, &n.Field, &n.Score, &n.HealthImpact,
			&n.IntakeLevel, &n.Source); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (s *Store) loadLifestyle(reportID string) ([]LifestyleCondition, error) {
	rows, err := s.db.Query(
		`SELECT id, category_id, condition_name, sensitivity,
		        avoid_json, follow_json, consume_json, monitor_json,
		        avoid_label, follow_label, consume_label, monitor_label
		 FROM lifestyle_conditions WHERE report_id = ? ORDER BY category_id, condition_name`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lifestyle conditions: %w", err)
	}
	defer rows.Close()

	var out []LifestyleCondition
	for rows.Next() {
		var c LifestyleCondition
		var avoid, follow, consume, monitor string
		if err := rows.Scan(&c.ID, &c.CategoryID, &c.ConditionName, &c.Sensitivity,
			&avoid, &follow, &consume, &monitor,
			&c.AvoidLabel, &c.FollowLabel, &c.ConsumeLabel, &c.MonitorLabel); err != nil {
			return nil, err
		}
		for _, pair := range []struct {
			raw  string
			dest *[]string
		}{{avoid, &c.Avoid}, {follow, &c.Follow}, {consume, &c.Consume}, {monitor, &c.Monitor}} {
			if err := json.Unmarshal([]byte(pair.raw), pair.dest); err != nil {
				return nil, fmt.Errorf("malformed guidance list for condition %s: %w", c.ID, err)
			}
			if *pair.dest == nil {
				*pair.dest = []string{}
			}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) loadLifestyleImages(reportID string) (map[string]string, error) {
	rows, err := s.db.Query(
		`SELECT category_id, image_url FROM lifestyle_category_images WHERE report_id = ?`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lifestyle images: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var categoryID, imageURL string
		if err := rows.Scan(&categoryID, &imageURL); err != nil {
			return nil, err
		}
		out[categoryID] = imageURL
	}
	return out, rows.Err()
}

func (s *Store) loadMetabolic(reportID string) ([]MetabolicEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, area, gene_name, genotype, impact, advice
		 FROM metabolic_entries WHERE report_id = ? ORDER BY area, gene_name`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load metabolic entries: %w", err)
	}
	defer rows.Close()

	var out []MetabolicEntry
	for rows.Next() {
		var m MetabolicEntry
		if err := rows.Scan(&m.ID, &m.Area, &m.GeneName, &m.Genotype, &m.Impact, &m.Advice); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *Store) loadSectionItems(reportID string) ([]SectionItem, error) {
	rows, err := s.db.Query(
		`SELECT id, section, field, title, icon, sensitivity, description
		 FROM section_items WHERE report_id = ? ORDER BY section, field`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load section items: %w", err)
	}
	defer rows.Close()

	var out []SectionItem
	for rows.Next() {
		var item SectionItem
		if err := rows.Scan(&item.ID, &item.Section, &item.Field, &item.Title,
			&item.Icon, &item.Sensitivity, &item.Description); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func (s *Store) loadPreventiveTests(reportID string) ([]PreventiveTest, error) {
	rows, err := s.db.Query(
		`SELECT id, frequency, test_name FROM preventive_tests WHERE report_id = ? ORDER BY test_name`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load preventive tests: %w", err)
	}
	defer rows.Close()

	var out []PreventiveTest
	for rows.Next() {
		var p PreventiveTest
		if err := rows.Scan(&p.ID, &p.Frequency, &p.TestName); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) loadSupplements(reportID string) ([]Supplement, error) {
	rows, err := s.db.Query(
		`SELECT id, supplement_name, needed FROM supplements WHERE report_id = ? ORDER BY supplement_name`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load supplements: %w", err)
	}
	defer rows.Close()

	var out []Supplement
	for rows.Next() {
		var sup Supplement
		var needed int
		if err := rows.Scan(&sup.ID, &sup.Supplement, &needed); err != nil {
			return nil, err
		}
		sup.Needed = needed != 0
		out = append(out, sup)
	}
	return out, rows.Err()
}

func (s *Store) loadFamilyImpacts(reportID string) ([]FamilyGeneticImpact, error) {
	rows, err := s.db.Query(
		`SELECT id, gene, normal_alleles, your_result, health_impact
		 FROM family_genetic_impacts WHERE report_id = ? ORDER BY gene`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load family impacts: %w", err)
	}
	defer rows.Close()

	var out []FamilyGeneticImpact
	for rows.Next() {
		var f FamilyGeneticImpact
		if err := rows.Scan(&f.ID, &f.Gene, &f.NormalAlleles, &f.YourResult, &f.HealthImpact); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (s *Store) loadGeneResults(reportID string) ([]GeneTestResult, error) {
	rows, err := s.db.Query(
		`SELECT id, category, subcategory, gene_name, result
		 FROM gene_test_results WHERE report_id = ? ORDER BY rowid`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load gene results: %w", err)
	}
	defer rows.Close()

	var out []GeneTestResult
	for rows.Next() {
		var g GeneTestResult
		if err := rows.Scan(&g.ID, &g.Category, &g.Subcategory, &g.GeneName, &g.Result); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) loadHealthSummary(reportID string) ([]HealthSummaryEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, section, title, description
		 FROM health_summary_entries WHERE report_id = ? ORDER BY rowid`, reportID)
	if err != nil {
		return nil, fmt.Errorf("failed to load health summary: %w", err)
	}
	defer rows.Close()

	var out []HealthSummaryEntry
	for rows.Next() {
		var h HealthSummaryEntry
		if err := rows.Scan(&h.ID, &h.Section, &h.Title, &h.Description); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// ============================================================================
// Section replace-writes
// ============================================================================

// SectionData carries replacement rows for a report's section tables.
// Nil slices leave the corresponding table untouched; empty slices clear it.
type SectionData struct {
	DietFields           []DietFieldDefinition `json:"dietFields,omitempty"`
	Nutrition            []NutritionEntry      `json:"nutrition,omitempty"`
	Lifestyle            []LifestyleCondition  `json:"lifestyle,omitempty"`
	LifestyleImages      map[string]string     `json:"lifestyleImages,omitempty"`
	Metabolic            []MetabolicEntry      `json:"metabolic,omitempty"`
	SectionItems         []SectionItem         `json:"sectionItems,omitempty"`
	PreventiveTests      []PreventiveTest      `json:"preventiveTests,omitempty"`
	Supplements          []Supplement          `json:"supplements,omitempty"`
	FamilyImpacts        []FamilyGeneticImpact `json:"familyImpacts,omitempty"`
	GeneResults          []GeneTestResult      `json:"geneResults,omitempty"`
	HealthSummaryEntries []HealthSummaryEntry  `json:"healthSummary,omitempty"`
}

// ReplaceSections replaces section rows for a report inside one transaction.
// The admin editor always submits whole sections, so replace-all is simpler
// and safer than row-level diffing.
func (s *Store) ReplaceSections(reportID string, data *SectionData) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if data.DietFields != nil {
		if err := replaceDietFields(tx, reportID, data.DietFields); err != nil {
			return err
		}
	}
	if data.Nutrition != nil {
		if err := replaceNutrition(tx, reportID, data.Nutrition); err != nil {
			return err
		}
	}
	if data.Lifestyle != nil {
		if err := replaceLifestyle(tx, reportID, data.Lifestyle); err != nil {
			return err
		}
	}
	if data.LifestyleImages != nil {
		if err := replaceLifestyleImages(tx, reportID, data.LifestyleImages); err != nil {
			return err
		}
	}
	if data.Metabolic != nil {
		if err := replaceMetabolic(tx, reportID, data.Metabolic); err != nil {
			return err
		}
	}
	if data.SectionItems != nil {
		if err := replaceSectionItems(tx, reportID, data.SectionItems); err != nil {
			return err
		}
	}
	if data.PreventiveTests != nil {
		if err := replacePreventiveTests(tx, reportID, data.PreventiveTests); err != nil {
			return err
		}
	}
	if data.Supplements != nil {
		if err := replaceSupplements(tx, reportID, data.Supplements); err != nil {
			return err
		}
	}
	if data.FamilyImpacts != nil {
		if err := replaceFamilyImpacts(tx, reportID, data.FamilyImpacts); err != nil {
			return err
		}
	}
	if data.GeneResults != nil {
		if err := replaceGeneResults(tx, reportID, data.GeneResults); err != nil {
			return err
		}
	}
	if data.HealthSummaryEntries != nil {
		if err := replaceHealthSummary(tx, reportID, data.HealthSummaryEntries); err != nil {
			return err
		}
	}

	// Stamp the report row so viewers see the edit
	if _, err := tx.Exec(`UPDATE reports SET updated_at = ? WHERE id = ?`, time.Now().Unix(), reportID); err != nil {
		return fmt.Errorf("failed to stamp report: %w", err)
	}

	return tx.Commit()
}

func replaceDietFields(tx *sql.Tx, reportID string, rows []DietFieldDefinition) error {
	if _, err := tx.Exec(`DELETE FROM diet_field_definitions WHERE report_id = ?`, reportID); err != nil {
		return fmt.Errorf("failed to clear diet fields: %w", err)
	}
	for _, d := range rows {
		if _, err := tx.Exec(
			`INSERT INTO diet_field_definitions (id, report_id, field_id, label, category,
			 min_score, max_score, high_recommendation, normal_recommendation, low_recommendation)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			newRowID(d.ID), reportID, d.FieldID, d.Label, d.Category, d.MinScore, d.MaxScore,
			d.HighRecommendation, d.NormalRecommendation, d.LowRecommendation,
		); err != nil {
			return fmt.Errorf("failed to insert diet field: %w", err)
		}
	}
	return nil
}

func replaceNutrition(tx *sql.Tx, reportID string, rows []NutritionEntry) error {
	if _, err := tx.Exec(`DELETE FROM nutrition_entries WHERE report_id = ?`, reportID); err != nil {
		return fmt.Errorf("failed to clear nutrition entries: %w", err)
	}
	for _, n := range rows {
		if _, err := tx.Exec(
			`INSERT INTO nutrition_entries (id, report_id, section, field, score, health_impact, intake_level, source)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			newRowID(n.ID), reportID, n.Section, n.Field, n.Score, n.HealthImpact, n.IntakeLevel, n.Source,
		); err != nil {
			return fmt.Errorf("failed to insert nutrition entry: %w", err)
		}
	}
	return nil
}

func replaceLifestyle(tx *sql.Tx, reportID string, rows []LifestyleCondition) error {
	if _, err := tx.Exec(`DELETE FROM lifestyle_conditions WHERE report_id = ?`, reportID); err != nil {
		return fmt.Errorf("failed to clear lifestyle conditions: %w", err)
	}
	for _, c := range rows {
		avoid, _ := json.Marshal(orEmpty(c.Avoid))
		follow, _ := json.Marshal(orEmpty(c.Follow))
		consume, _ := json.Marshal(orEmpty(c.Consume))
		monitor, _ := json.Marshal(orEmpty(c.Monitor))
		if _, err := tx.Exec(
			`INSERT INTO lifestyle_conditions (id, report_id, category_id, condition_name, sensitivity,
			 avoid_json, follow_json, consume_json, monitor_json,
			 avoid_label, follow_label, consume_label, monitor_label)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			newRowID(c.ID), reportID, c.CategoryID, c.ConditionName, c.Sensitivity,
			string(avoid), string(follow), string(consume), string(monitor),
			c.AvoidLabel, c.FollowLabel, c.ConsumeLabel, c.MonitorLabel,
		); err != nil {
			return fmt.Errorf("failed to insert lifestyle condition: %w", err)
		}
	}
	return nil
}

func replaceLifestyleImages(tx *sql.Tx, reportID string, images map[string]string) error {
	if _, err := tx.Exec(`DELETE FROM lifestyle_category_images WHERE report_id = ?`, reportID); err != nil {
		return fmt.Errorf("failed to clear lifestyle images: %w", err)
	}
	for categoryID, imageURL := range images {
		if _, err := tx.Exec(
			`INSERT INTO lifestyle_category_images (report_id, category_id, image_url) VALUES (?, ?, ?)`,
			reportID, categoryID, imageURL,
		); err != nil {
			return fmt.Errorf("failed to insert lifestyle image: %w", err)
		}
	}
	return nil
}

func replaceMetabolic(tx *sql.Tx, reportID string, rows []MetabolicEntry) error {
	if _, err := tx.Exec(`DELETE FROM metabolic_entries WHERE report_id = ?`, reportID); err != nil {
		return fmt.Errorf("failed to clear metabolic entries: %w", err)
	}
	for _, m := range rows {
		if _, err := tx.Exec(
			`INSERT INTO metabolic_entries (id, report_id, area, gene_name, genotype, impact, advice)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			newRowID(m.ID), reportID, m.Area, m.GeneName, m.Genotype, m.Impact, m.Advice,
		); err != nil {
			return fmt.Errorf("failed to insert metabolic entry: %w", err)
		}
	}
	return nil
}

func replaceSectionItems(tx *sql.Tx, reportID string, rows []SectionItem) error {
	if _, err := tx.Exec(`DELETE FROM section_items WHERE report_id = ?`, reportID); err != nil {
		return fmt.Errorf("failed to clear section items: %w", err)
	}
	for _, item := range rows {
		if _, err := tx.Exec(
			`INSERT INTO section_items (id, report_id, section, field, title, icon, sensitivity, description)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			newRowID(item.ID), reportID, item.Section, item.Field, item.Title,
			item.Icon, item.Sensitivity, item.Description,
		); err != nil {
			return fmt.Errorf("failed to insert section item: %w", err)
		}
	}
	return nil
}

func replacePreventiveTests(tx *sql.Tx, reportID string, rows []PreventiveTest) error {
	if _, err := tx.Exec(`DELETE FROM preventive_tests WHERE report_id = ?`, reportID); err != nil {
		return fmt.Errorf("failed to clear preventive tests: %w", err)
	}
	for _, p := range rows {
		if _, err := tx.Exec(
			`INSERT INTO preventive_tests (id, report_id, frequency, test_name) VALUES (?, ?, ?, ?)`,
			newRowID(p.ID), reportID, p.Frequency, p.TestName,
		); err != nil {
			return fmt.Errorf("failed to insert preventive test: %w", err)
		}
	}
	return nil
}

func replaceSupplements(tx *sql.Tx, reportID string, rows []Supplement) error {
	if _, err := tx.Exec(`DELETE FROM supplements WHERE report_id = ?`, reportID); err != nil {
		return fmt.Errorf("failed to clear supplements: %w", err)
	}
	for _, sup := range rows {
		needed := 0
		if sup.Needed {
			needed = 1
		}
		if _, err := tx.Exec(
			`INSERT INTO supplements (id, report_id, supplement_name, needed) VALUES (?, ?, ?, ?)`,
			newRowID(sup.ID), reportID, sup.Supplement, needed,
		); err != nil {
			return fmt.Errorf("failed to insert supplement: %w", err)
		}
	}
	return nil
}

func replaceFamilyImpacts(tx *sql.Tx, reportID string, rows []FamilyGeneticImpact) error {
	if _, err := tx.Exec(`DELETE FROM family_genetic_impacts WHERE report_id = ?`, reportID); err != nil {
		return fmt.Errorf("failed to clear family impacts: %w", err)
	}
	for _, f := range rows {
		if _, err := tx.Exec(
			`INSERT INTO family_genetic_impacts (id, report_id, gene, normal_alleles, your_result, health_impact)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			newRowID(f.ID), reportID, f.Gene, f.NormalAlleles, f.YourResult, f.HealthImpact,
		); err != nil {
			return fmt.Errorf("failed to insert family impact: %w", err)
		}
	}
	return nil
}

func replaceGeneResults(tx *sql.Tx, reportID string, rows []GeneTestResult) error {
	if _, err := tx.Exec(`DELETE FROM gene_test_results WHERE report_id = ?`, reportID); err != nil {
		return fmt.Errorf("failed to clear gene results: %w", err)
	}
	for _, g := range rows {
		if _, err := tx.Exec(
			`INSERT INTO gene_test_results (id, report_id, category, subcategory, gene_name, result)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			newRowID(g.ID), reportID, g.Category, g.Subcategory, g.GeneName, g.Result,
		); err != nil {
			return fmt.Errorf("failed to insert gene result: %w", err)
		}
	}
	return nil
}

func replaceHealthSummary(tx *sql.Tx, reportID string, rows []HealthSummaryEntry) error {
	if _, err := tx.Exec(`DELETE FROM health_summary_entries WHERE report_id = ?`, reportID); err != nil {
		return fmt.Errorf("failed to clear health summary: %w", err)
	}
	for _, h := range rows {
		if _, err := tx.Exec(
			`INSERT INTO health_summary_entries (id, report_id, section, title, description)
			 VALUES (?, ?, ?, ?, ?)`,
			newRowID(h.ID), reportID, h.Section, h.Title, h.Description,
		); err != nil {
			return fmt.Errorf("failed to insert health summary entry: %w", err)
		}
	}
	return nil
}

func newRowID(existing string) string {
	if existing != "" {
		return existing
	}
	return uuid.NewString()
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
