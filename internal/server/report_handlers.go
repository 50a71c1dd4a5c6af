package server

import (
	"encoding/json"
	"net/http"

	"genovault/internal/constants"
	"genovault/internal/services"
)

// GET /api/patients-data — list patients, a patient's reports, or a full
// report view depending on the query parameters.
func (s *Server) handlePatientsDataGet(w http.ResponseWriter, r *http.Request) {
	if s.requireAuth(w, r) == nil {
		return
	}

	query := r.URL.Query()

	if reportID := query.Get("reportId"); reportID != "" {
		view, err := s.app.Services.Report.GetView(reportID)
		if err != nil {
			s.handleServiceError(w, err)
			return
		}
		WriteSuccess(w, map[string]interface{}{
			"report": view,
		})
		return
	}

	if patientID := query.Get("patientId"); patientID != "" {
		list, err := s.app.Services.Report.ListReports(patientID)
		if err != nil {
			s.handleServiceError(w, err)
			return
		}
		WriteSuccess(w, map[string]interface{}{
			"reports": list,
		})
		return
	}

	patients, err := s.app.Services.Report.ListPatients()
	if err != nil {
		s.handleServiceError(w, err)
		return
	}
	WriteSuccess(w, map[string]interface{}{
		"patients": patients,
	})
}

// POST /api/patients-data — upsert a patient, report, and section data
func (s *Server) handlePatientsDataSave(w http.ResponseWriter, r *http.Request) {
	if s.requireAuth(w, r) == nil {
		return
	}

	var input services.SaveInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON", constants.ErrCodeInvalidRequest)
		return
	}

	result, err := s.app.Services.Report.Save(&input)
	if err != nil {
		s.handleServiceError(w, err)
		return
	}

	WriteSuccess(w, map[string]interface{}{
		"success":   true,
		"patientId": result.PatientID,
		"reportId":  result.ReportID,
	})
}
