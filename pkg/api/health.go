package api

import (
	"encoding/json"
	"net/http"
)

type healthRes struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	InstanceID string `json:"instance_id"`
}

// Health serves a liveness document for the named service instance.
func Health(service, instanceID string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		res := healthRes{
			Status:     "pass",
			Service:    service,
			InstanceID: instanceID,
		}

		w.Header().Set("Content-Type", ContentType)
		if err := json.NewEncoder(w).Encode(res); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
