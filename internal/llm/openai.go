package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"
)

type OpenAIClient struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewOpenAIClient(apiKey, apiURL string, timeout time.Duration) *OpenAIClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &OpenAIClient{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: timeout},
	}
}

func (o *OpenAIClient) Provider() string { return "openai" }

// Generate performs the provider call. If the first attempt is rejected
// for an unsupported tool/feature and the request carried tools, it is
// retried exactly once with tools stripped. Nothing else is retried.
func (o *OpenAIClient) Generate(ctx context.Context, req Request) ([]byte, error) {
	if o.apiKey == "" {
		return nil, errors.New("missing LLM_API_KEY")
	}

	raw, err := o.call(ctx, req)
	if err == nil {
		return raw, nil
	}

	var ue *UpstreamError
	if len(req.Tools) > 0 && errors.As(err, &ue) && retryWithoutTools(ue.Message) {
		bare := req
		bare.Tools = nil
		return o.call(ctx, bare)
	}
	return nil, err
}

func (o *OpenAIClient) call(ctx context.Context, req Request) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		o.apiURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := upstreamMessage(raw)
		return nil, &UpstreamError{
			Status:  resp.StatusCode,
			Message: msg,
			Quota:   isQuotaMessage(resp.StatusCode, msg),
		}
	}

	return raw, nil
}

// upstreamMessage pulls the provider's error message out of the usual
// {"error":{"message":...}} envelope, falling back to the raw body.
func upstreamMessage(raw []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	if len(raw) > 300 {
		raw = raw[:300]
	}
	return string(raw)
}
