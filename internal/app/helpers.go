package app

import (
	"context"

	"studentgigs/internal/common"
)

// analyticsPayload stamps the request id onto event payloads when present.
func analyticsPayload(ctx context.Context, fields map[string]string) map[string]string {
	if requestID := common.RequestIDFromContext(ctx); requestID != "" {
		if fields == nil {
			fields = make(map[string]string, 1)
		}
		fields["request_id"] = requestID
	}
	return fields
}
