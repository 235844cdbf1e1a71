package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// SecretHeader carries the shared secret between CallableSender and the
// /api/messaging/send endpoint.
const SecretHeader = "X-Messaging-Secret"

// CallableEnvelope is the request body of the callable protocol.
type CallableEnvelope struct {
	Data SendRequest `json:"data"`
}

// CallableError is the error body of the callable protocol.
type CallableError struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CallableResponse carries exactly one of Result or Error.
type CallableResponse struct {
	Result *Ack           `json:"result,omitempty"`
	Error  *CallableError `json:"error,omitempty"`
}

// CallableSender posts legs to a remote send function.
type CallableSender struct {
	URL    string
	Secret string
	Client *http.Client
}

func NewCallableSender(url, secret string) *CallableSender {
	return &CallableSender{URL: url, Secret: secret, Client: http.DefaultClient}
}

func (s *CallableSender) Send(ctx context.Context, req SendRequest) (*Ack, error) {
	body, err := json.Marshal(CallableEnvelope{Data: req})
	if err != nil {
		return nil, fmt.Errorf("CallableSender.Send: encode: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("CallableSender.Send: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if s.Secret != "" {
		httpReq.Header.Set(SecretHeader, s.Secret)
	}

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("CallableSender.Send: %w", err)
	}
	defer resp.Body.Close()

	var out CallableResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("CallableSender.Send: status %d: decode: %w", resp.StatusCode, err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("CallableSender.Send: %s: %s", out.Error.Status, out.Error.Message)
	}
	if resp.StatusCode/100 != 2 || out.Result == nil {
		return nil, fmt.Errorf("CallableSender.Send: unexpected status %d", resp.StatusCode)
	}
	return out.Result, nil
}
