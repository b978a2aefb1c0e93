package server

import (
	"clinic-chat/observability"
	"net/http"
)

type MonitoringServer struct {
	monitoring *observability.MonitoringManager
}

func NewMonitoringServer(monitoring *observability.MonitoringManager) *MonitoringServer {
	return &MonitoringServer{monitoring: monitoring}
}

func (s *MonitoringServer) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"success": true, "status": "ok"})
}

func (s *MonitoringServer) Stats(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.monitoring.GetLatest())
}
