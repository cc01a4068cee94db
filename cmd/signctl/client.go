package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// callableClient calls the public callable endpoints.
type callableClient struct {
	baseURL string
	http    *http.Client
}

func newCallableClient(baseURL string, timeout time.Duration) *callableClient {
	return &callableClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type linkRef struct {
	CompanyID   string `json:"companyId"`
	RequestID   string `json:"requestId"`
	AccessToken string `json:"accessToken"`
}

type field struct {
	ID         string  `json:"id"`
	Type       string  `json:"type"`
	PageNumber int     `json:"pageNumber"`
	XPosition  float64 `json:"xPosition"`
	YPosition  float64 `json:"yPosition"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Unit       string  `json:"unit,omitempty"`
	Required   bool    `json:"required"`
	Label      string  `json:"label,omitempty"`
}

type publicEnvelope struct {
	Title          string  `json:"title"`
	RecipientName  string  `json:"recipientName"`
	RecipientEmail string  `json:"recipientEmail"`
	PDFURL         string  `json:"pdfUrl"`
	Fields         []field `json:"fields"`
	Status         string  `json:"status"`
}

type auditData struct {
	UserAgent string `json:"userAgent"`
	Timestamp int64  `json:"timestamp"`
}

type submission struct {
	linkRef
	FieldValues map[string]any `json:"fieldValues"`
	AuditData   auditData      `json:"auditData"`
}

type submitResult struct {
	Success  bool      `json:"success"`
	SignedAt time.Time `json:"signedAt"`
}

// callError is a failed callable invocation.
type callError struct {
	Status  int
	Code    string `json:"code"`
	Message string `json:"message"`
	Details struct {
		Fields []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"fields"`
		MissingFieldIDs []string `json:"missingFieldIds"`
	} `json:"details"`
}

func (e *callError) Error() string {
	msg := fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
	for _, f := range e.Details.Fields {
		msg += fmt.Sprintf("\n  %s: %s", f.Field, f.Message)
	}
	return msg
}

func (c *callableClient) GetPublicEnvelope(ctx context.Context, ref linkRef) (*publicEnvelope, error) {
	var out publicEnvelope
	if err := c.call(ctx, "getPublicEnvelope", ref, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *callableClient) SubmitPublicEnvelope(ctx context.Context, sub submission) (*submitResult, error) {
	var out submitResult
	if err := c.call(ctx, "submitPublicEnvelope", sub, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *callableClient) call(ctx context.Context, name string, data, result any) error {
	body, err := json.Marshal(map[string]any{"data": data})
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/callable/"+name, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read %s response: %w", name, err)
	}

	if resp.StatusCode != http.StatusOK {
		var env struct {
			Error callError `json:"error"`
		}
		if err := json.Unmarshal(raw, &env); err != nil || env.Error.Code == "" {
			return fmt.Errorf("call %s: unexpected status %d", name, resp.StatusCode)
		}
		env.Error.Status = resp.StatusCode
		return &env.Error
	}

	var env struct {
		Result json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode %s response: %w", name, err)
	}
	if err := json.Unmarshal(env.Result, result); err != nil {
		return fmt.Errorf("decode %s result: %w", name, err)
	}
	return nil
}
