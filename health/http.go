package health

import (
	"encoding/json"
	"net/http"
)

// LivenessHandler reports process liveness. It always returns 200; a
// hung process simply stops answering.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "alive"})
	}
}

// ReadinessHandler reports readiness based on the aggregator's checks.
// Returns 200 when healthy or degraded, 503 when unhealthy.
func ReadinessHandler(agg *Aggregator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		results := agg.CheckAll(r.Context())
		overall := OverallStatus(results)

		checks := make(map[string]any, len(results))
		for name, result := range results {
			entry := map[string]any{
				"status":      result.Status.String(),
				"message":     result.Message,
				"duration_ms": result.Duration.Milliseconds(),
			}
			if result.Err != nil {
				entry["error"] = result.Err.Error()
			}
			checks[name] = entry
		}

		status := http.StatusOK
		if overall == StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"status": overall.String(),
			"checks": checks,
		})
	}
}
