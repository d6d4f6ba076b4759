package notifyrepo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Washington-NKE/Bookvault/util/httpx"
)

type httpRepo struct {
	apiURL string
	apiKey string
	client *http.Client
}

func NewHTTP(apiURL, apiKey string) Repo {
	return &httpRepo{apiURL: apiURL, apiKey: apiKey, client: httpx.Client()}
}

func (r *httpRepo) Send(ctx context.Context, msg Message) error {
	body := map[string]any{
		"to":      msg.To,
		"subject": msg.Subject,
		"text":    msg.Body,
	}
	b, _ := json.Marshal(body)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.apiURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail send failed: %s", resp.Status)
	}
	return nil
}
