package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"studentgigs/internal/common"
)

// ErrorCollector counts surfaced errors by code. Wired to the metrics
// collector at startup.
type ErrorCollector interface {
	ObserveError(code string)
}

var errorCollector ErrorCollector

func SetErrorCollector(collector ErrorCollector) {
	errorCollector = collector
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

type errorBody struct {
	Error  string            `json:"error"`
	Code   common.Code       `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Error translates coded errors to HTTP statuses. Internal causes are logged
// server-side and never shown to the caller.
func Error(w http.ResponseWriter, err error) {
	var coded *common.Error
	if !errors.As(err, &coded) {
		coded = common.NewError(common.CodeInternal, "internal error", err)
	}
	if errorCollector != nil {
		errorCollector.ObserveError(string(coded.Code))
	}
	status := statusFor(coded.Code)
	body := errorBody{Error: coded.Message, Code: coded.Code, Fields: coded.Fields}
	if coded.Code == common.CodeInternal {
		zap.L().Error("request failed", zap.Error(err))
		body.Error = "internal error"
	}
	JSON(w, status, body)
}

func statusFor(code common.Code) int {
	switch code {
	case common.CodeValidation:
		return http.StatusBadRequest
	case common.CodeUnauthorized:
		return http.StatusUnauthorized
	case common.CodeForbidden:
		return http.StatusForbidden
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodeConflict:
		return http.StatusConflict
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
