package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"studentgigs/internal/common"
)

func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// idFromPath extracts the UUID at the given segment index, where index 0 is
// the first segment after the leading slash. /api/job/{id}/status puts the
// id at index 2.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	segment := segmentFromPath(r, index)
	if segment == "" {
		return "", common.NewValidationError("missing id in path", nil)
	}
	id, err := common.ParseUUID(segment)
	if err != nil {
		return "", common.NewValidationError("invalid id in path", map[string]string{"id": "invalid uuid"})
	}
	return id, nil
}

func segmentFromPath(r *http.Request, index int) string {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index < 0 || index >= len(parts) {
		return ""
	}
	return parts[index]
}

func pagination(r *http.Request) (limit, offset int) {
	limit = parseQueryInt(r, "limit", 0)
	offset = parseQueryInt(r, "offset", 0)
	return limit, offset
}

func parseQueryInt(r *http.Request, key string, fallback int) int {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return fallback
	}
	return parsed
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}
