package router

import (
	"encoding/json"
	"net/http"
)

// dataEnvelope is the success response body.
type dataEnvelope struct {
	Data any `json:"data"`
}

// errorEnvelope is the failure response body.
type errorEnvelope struct {
	Errors []string `json:"errors"`
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dataEnvelope{Data: data})
}

func writeErrors(w http.ResponseWriter, status int, msgs ...string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Errors: msgs})
}
