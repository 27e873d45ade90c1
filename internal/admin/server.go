package admin

import (
	"embed"
	"encoding/json"
	"html/template"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/remeadows/ProjectPlaguev1-sub001/internal/defense"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/engine"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/metrics"
	"github.com/remeadows/ProjectPlaguev1-sub001/internal/pipeline"
)

// Server exposes the running engine over HTTP: a status page, a JSON
// snapshot, and the player operations.
type Server struct {
	Engine  *engine.Engine
	Metrics *metrics.Registry
	tpl     *template.Template
}

//go:embed templates/index.html
var content embed.FS

func NewServer(e *engine.Engine, m *metrics.Registry) *Server {
	tpl := template.Must(template.New("index.html").ParseFS(content, "templates/index.html"))
	return &Server{Engine: e, Metrics: m, tpl: tpl}
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/status", s.handleStatus)
	mux.HandleFunc("/submit-report", s.handleSubmitReport)
	mux.HandleFunc("/repair-firewall", s.handleRepairFirewall)
	mux.HandleFunc("/upgrade-firewall", s.handleUpgradeFirewall)
	mux.HandleFunc("/upgrade-node", s.handleUpgradeNode)
	mux.HandleFunc("/deploy", s.handleDeploy)
	mux.HandleFunc("/upgrade-app", s.handleUpgradeApp)
	mux.HandleFunc("/inject-attack", s.handleInjectAttack)
	mux.HandleFunc("/toggle-insane", s.handleToggleInsane)
	if s.Metrics != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(s.Metrics.Prometheus(), promhttp.HandlerOpts{}))
	}
}

func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	s.routes(mux)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		engine.Snapshot
		Victory bool
	}{
		Snapshot: s.Engine.Snapshot(),
		Victory:  s.Engine.Victory(),
	}
	s.tpl.Execute(w, data)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.Engine.Snapshot())
}

func (s *Server) handleSubmitReport(w http.ResponseWriter, r *http.Request) {
	res, ok := s.Engine.SubmitReport()
	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{"error": "not enough footprint data"})
		return
	}
	json.NewEncoder(w).Encode(res)
}

func (s *Server) handleRepairFirewall(w http.ResponseWriter, r *http.Request) {
	if !s.Engine.RepairFirewall() {
		http.Error(w, "cannot afford repair", http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpgradeFirewall(w http.ResponseWriter, r *http.Request) {
	if !s.Engine.UpgradeFirewall() {
		http.Error(w, "upgrade refused", http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpgradeNode(w http.ResponseWriter, r *http.Request) {
	grid := r.URL.Query().Get("grid")
	kind := pipeline.NodeKind(r.URL.Query().Get("kind"))
	switch kind {
	case pipeline.KindSource, pipeline.KindLink, pipeline.KindSink:
	default:
		http.Error(w, "kind must be source, link, or sink", http.StatusBadRequest)
		return
	}
	if !s.Engine.UpgradeNode(grid, kind) {
		http.Error(w, "upgrade refused", http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "id required", http.StatusBadRequest)
		return
	}
	if err := s.Engine.DeployApplication(id); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpgradeApp(w http.ResponseWriter, r *http.Request) {
	cat := defense.Category(r.URL.Query().Get("category"))
	if cat == "" {
		http.Error(w, "category required", http.StatusBadRequest)
		return
	}
	if !s.Engine.UpgradeApplication(cat) {
		http.Error(w, "upgrade refused", http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInjectAttack(w http.ResponseWriter, r *http.Request) {
	typ := r.URL.Query().Get("type")
	if typ == "" {
		http.Error(w, "type required", http.StatusBadRequest)
		return
	}
	if err := s.Engine.InjectAttack(typ); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleInsane(w http.ResponseWriter, r *http.Request) {
	state := s.Engine.ToggleInsane()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"insane": state})
}
