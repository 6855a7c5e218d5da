package vtuprov

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"vtunigeria/util/httpx"
)

type httpRepo struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTP(baseURL, apiKey string) Repo {
	return &httpRepo{baseURL: baseURL, apiKey: apiKey, client: httpx.Client()}
}

func (r *httpRepo) Deliver(ctx context.Context, req DeliverReq) (*DeliverResp, error) {
	body := map[string]any{
		"category":  req.Category,
		"provider":  req.Provider,
		"item_code": req.ItemCode,
		"recipient": req.Recipient,
		"amount":    req.Amount,
		"reference": req.Reference,
	}
	b, _ := json.Marshal(body)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/v1/deliver", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider deliver failed: %s", resp.Status)
	}

	var out struct {
		ProviderRef string `json:"provider_ref"`
		Token       string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &DeliverResp{ProviderRef: out.ProviderRef, Token: out.Token}, nil
}

func (r *httpRepo) ValidateCustomer(ctx context.Context, provider, account string) (*CustomerInfo, error) {
	u := fmt.Sprintf("%s/v1/validate?provider=%s&account=%s",
		r.baseURL, url.QueryEscape(provider), url.QueryEscape(account))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+r.apiKey)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("provider validate failed: %s", resp.Status)
	}

	var out struct {
		Name string `json:"customer_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &CustomerInfo{Name: out.Name}, nil
}
