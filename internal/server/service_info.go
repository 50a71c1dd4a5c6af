package server

import (
	"net/http"
	"os"
	"time"

	"genovault/internal/config"
	"genovault/internal/version"
)

// ServiceInfo holds service-level metrics for the GET /api/info response
type ServiceInfo struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	StoreSize     int64  `json:"store_size"`
	PatientCount  int64  `json:"patient_count"`
	ReportCount   int64  `json:"report_count"`
	ShareCount    int64  `json:"share_count"`
}

// GET /api/info — public service identity and counters
func (s *Server) handleServiceInfo(w http.ResponseWriter, r *http.Request) {
	info := &ServiceInfo{
		Name:          "genovault",
		Version:       version.Version,
		UptimeSeconds: int64(time.Since(s.app.StartedAt).Seconds()),
	}

	if stat, err := os.Stat(config.StorePath(s.app.Config.WorkingDirectory)); err == nil {
		info.StoreSize = stat.Size()
	}

	counts := map[string]*int64{
		"patients":     &info.PatientCount,
		"reports":      &info.ReportCount,
		"share_tokens": &info.ShareCount,
	}
	for table, dst := range counts {
		if err := s.app.DB.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(dst); err != nil {
			s.logger.Warn("Info: failed to count %s: %v", table, err)
		}
	}

	WriteSuccess(w, info)
}
