package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
)

func parseIDParam(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	return strconv.ParseInt(idStr, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// parseDaysParam reads the ?days query parameter for period endpoints.
// The app's wallet views use 7, 30, and 60 day windows; any positive
// value up to a year is accepted.
func parseDaysParam(r *http.Request, fallback int) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return fallback, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 || days > 366 {
		return 0, errInvalidDays
	}
	return days, nil
}

var errInvalidDays = errors.New("days must be between 1 and 366")
