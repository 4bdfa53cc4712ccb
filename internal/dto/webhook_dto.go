package dto

import "encoding/json"

// WebhookRequest is the body of the Notion automation trigger.
type WebhookRequest struct {
	Data *WebhookData `json:"data" validate:"required"`
}

type WebhookData struct {
	Id        string `json:"id" validate:"required"`
	RequestId string `json:"request_id,omitempty"`
}

// WebhookResponse is the success envelope. The request id echoes the
// trigger's, so callers can correlate.
type WebhookResponse struct {
	Result    string `json:"result"`
	RequestId string `json:"request_id"`
}

// WebhookErrorResponse is the failure envelope. Failures are in-band: the
// transport reply is still a 200. Event carries the original trigger body
// for diagnosis.
type WebhookErrorResponse struct {
	Error string          `json:"error"`
	Event json.RawMessage `json:"event"`
}
