package services

import (
	"encoding/json"

	"genovault/internal/logger"
	"genovault/internal/reports"
)

// ReportService serves the admin report surface: patient and report
// management plus the transformed viewer document.
type ReportService struct {
	reports *reports.Store
	log     *logger.Logger
}

// NewReportService creates the report service.
func NewReportService(reportStore *reports.Store, log *logger.Logger) *ReportService {
	return &ReportService{reports: reportStore, log: log}
}

// GetView loads a report and flattens it into the viewer document.
func (s *ReportService) GetView(reportID string) (*reports.View, error) {
	if reportID == "" {
		return nil, ErrMissingParamWithName("reportId")
	}

	bundle, err := s.reports.LoadBundle(reportID)
	if err != nil {
		return nil, WrapInternalError(err)
	}
	if bundle == nil {
		return nil, ErrReportNotFound
	}
	return reports.Transform(bundle), nil
}

// ListPatients returns all patients.
func (s *ReportService) ListPatients() ([]*reports.Patient, error) {
	patients, err := s.reports.ListPatients()
	if err != nil {
		return nil, WrapInternalError(err)
	}
	if patients == nil {
		patients = []*reports.Patient{}
	}
	return patients, nil
}

// ListReports returns all reports for a patient.
func (s *ReportService) ListReports(patientID string) ([]*reports.Report, error) {
	if patientID == "" {
		return nil, ErrMissingParamWithName("patientId")
	}

	patient, err := s.reports.GetPatient(patientID)
	if err != nil {
		return nil, WrapInternalError(err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	list, err := s.reports.ListReportsByPatient(patientID)
	if err != nil {
		return nil, WrapInternalError(err)
	}
	if list == nil {
		list = []*reports.Report{}
	}
	return list, nil
}

// SaveInput is the admin editor's save payload. A missing PatientID creates
// a new patient; a missing ReportID creates a new report. Section slices
// follow replace-write semantics (nil leaves a section untouched).
type SaveInput struct {
	PatientID string          `json:"patientId"`
	Patient   reports.Patient `json:"patient"`

	ReportID    string          `json:"reportId"`
	Quote       string          `json:"quote"`
	Description string          `json:"description"`
	Settings    json.RawMessage `json:"settings"`

	Sections reports.SectionData `json:"sections"`
}

// SaveResult identifies the saved patient and report.
type SaveResult struct {
	PatientID string `json:"patientId"`
	ReportID  string `json:"reportId"`
}

// Save upserts a patient, a report, and its section data in one call.
func (s *ReportService) Save(input *SaveInput) (*SaveResult, error) {
	patientID := input.PatientID
	if patientID == "" {
		if input.Patient.Name == "" {
			return nil, ErrMissingParamWithName("patient.name")
		}
		patient, err := s.reports.CreatePatient(&input.Patient)
		if err != nil {
			return nil, WrapInternalError(err)
		}
		patientID = patient.ID
		s.log.Info("Reports: created patient %s", patientID)
	} else {
		patient, err := s.reports.GetPatient(patientID)
		if err != nil {
			return nil, WrapInternalError(err)
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
	}

	reportID := input.ReportID
	if reportID == "" {
		report, err := s.reports.CreateReport(patientID, input.Quote, input.Description, input.Settings)
		if err != nil {
			return nil, WrapInternalError(err)
		}
		reportID = report.ID
		s.log.Info("Reports: created report %s for patient %s", reportID, patientID)
	} else {
		exists, owned, err := s.reports.ReportBelongsToPatient(reportID, patientID)
		if err != nil {
			return nil, WrapInternalError(err)
		}
		if !exists {
			return nil, ErrReportNotFound
		}
		if !owned {
			return nil, ErrReportNotFound
		}
		if err := s.reports.UpdateReport(reportID, input.Quote, input.Description, input.Settings); err != nil {
			return nil, WrapInternalError(err)
		}
	}

	if err := s.reports.ReplaceSections(reportID, &input.Sections); err != nil {
		return nil, WrapInternalError(err)
	}

	return &SaveResult{PatientID: patientID, ReportID: reportID}, nil
}
