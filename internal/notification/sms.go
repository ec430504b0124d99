package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"sehat-sathi-server/config"
)

// SMSNotifier sends alerts through a JSON-over-HTTP SMS gateway.
type SMSNotifier struct {
	cfg    config.SMSConfig
	client *http.Client
}

type smsPayload struct {
	Sender    string `json:"sender"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	ClientRef string `json:"client_ref"`
}

type smsResponse struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
}

func NewSMSNotifier(cfg config.SMSConfig) *SMSNotifier {
	return &SMSNotifier{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *SMSNotifier) Notify(ctx context.Context, key, phone, title, body string) error {
	payload := smsPayload{
		Sender:    s.cfg.SenderID,
		Phone:     phone,
		Message:   fmt.Sprintf("%s: %s", title, body),
		ClientRef: key,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api_key", s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway failed with status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var smsResp smsResponse
	if err := json.Unmarshal(respBody, &smsResp); err != nil {
		return err
	}
	if smsResp.Code != "" && smsResp.Code != "000" {
		return fmt.Errorf("sms gateway error: %s", smsResp.Detail)
	}

	return nil
}
