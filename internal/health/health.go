package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

const pingTimeout = 2 * time.Second

// RegisterRoutes только /healthz: процесс жив.
func RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}).Methods(http.MethodGet)
}

// RegisterRoutesWithDB /healthz и /readyz. /readyz пингует каждую БД,
// nil-подключения пропускаются (например, старая БД не настроена).
func RegisterRoutesWithDB(r *mux.Router, dbs map[string]*gorm.DB) {
	RegisterRoutes(r)
	r.HandleFunc("/readyz", func(w http.ResponseWriter, req *http.Request) {
		names := make([]string, 0, len(dbs))
		for name, d := range dbs {
			if d != nil {
				names = append(names, name)
			}
		}
		sort.Strings(names)

		status := http.StatusOK
		checks := make(map[string]string, len(names))
		for _, name := range names {
			if err := ping(req.Context(), dbs[name]); err != nil {
				checks[name] = "error: " + err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}
		state := "ok"
		if status != http.StatusOK {
			state = "unavailable"
		}
		writeJSON(w, status, map[string]any{"status": state, "checks": checks})
	}).Methods(http.MethodGet)
}

func ping(ctx context.Context, d *gorm.DB) error {
	sqlDB, err := d.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
