package dto

import (
	"encoding/json"
	"net/http"
	"strconv"
)

const (
	CodeValidation   = "validation"
	CodeNotFound     = "not_found"
	CodeForbidden    = "forbidden"
	CodeConflict     = "conflict"
	CodeUnauthorized = "unauthorized"
	CodeInternal     = "internal"
)

func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, code, message string) error {
	return WriteJSON(w, status, Error{Error: message, Code: code})
}

func WriteForbidden(w http.ResponseWriter, reason string) error {
	return WriteJSON(w, http.StatusForbidden, Error{Error: "Forbidden", Code: CodeForbidden, Reason: reason})
}

// Page разбирает limit/offset. Пустые значения означают 0, дальше решает сервис.
func Page(r *http.Request) (limit, offset uint64, err error) {
	query := r.URL.Query()
	if raw := query.Get("limit"); raw != "" {
		if limit, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return 0, 0, err
		}
	}
	if raw := query.Get("offset"); raw != "" {
		if offset, err = strconv.ParseUint(raw, 10, 64); err != nil {
			return 0, 0, err
		}
	}
	return limit, offset, nil
}

// OptionalFloat пустой параметр дает nil.
func OptionalFloat(r *http.Request, name string) (*float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
