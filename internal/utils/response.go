package utils

import (
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Json пишет v в тело ответа как JSON с указанным статусом.
func Json(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(v)
}

// Err пишет сообщение об ошибке как {"error": "..."}.
func Err(w http.ResponseWriter, status int, err error) error {
	return Json(w, status, errorResponse{Error: err.Error()})
}
