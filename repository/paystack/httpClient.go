package paystackrepo

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"vtunigeria/util/httpx"
)

const baseURL = "https://api.paystack.co"

type httpRepo struct {
	secretKey string
	client    *http.Client
}

func NewHTTP(secretKey string) Repo {
	return &httpRepo{secretKey: secretKey, client: httpx.Client()}
}

func (r *httpRepo) InitTransaction(req InitTransactionReq) (*InitTransactionResp, error) {
	body := map[string]any{
		"email":     req.Email,
		"amount":    int64(req.Amount * 100),
		"reference": req.Reference,
	}
	if req.CallbackURL != "" {
		body["callback_url"] = req.CallbackURL
	}
	b, _ := json.Marshal(body)

	httpReq, _ := http.NewRequest(http.MethodPost, baseURL+"/transaction/initialize", bytes.NewReader(b))
	httpReq.Header.Set("Authorization", "Bearer "+r.secretKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("paystack initialize failed: %s", resp.Status)
	}

	var out struct {
		Status bool   `json:"status"`
		Msg    string `json:"message"`
		Data   struct {
			AuthorizationURL string `json:"authorization_url"`
			AccessCode       string `json:"access_code"`
			Reference        string `json:"reference"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if !out.Status || out.Data.Reference == "" {
		return nil, fmt.Errorf("paystack initialize rejected: %s", out.Msg)
	}

	return &InitTransactionResp{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        out.Data.Reference,
	}, nil
}

// VerifyWebhookSignature checks the x-paystack-signature header: hex HMAC
// SHA-512 of the raw body keyed with the secret key.
func (r *httpRepo) VerifyWebhookSignature(sigHeader string, rawBody []byte) error {
	if sigHeader == "" {
		return errors.New("missing paystack signature")
	}
	mac := hmac.New(sha512.New, []byte(r.secretKey))
	mac.Write(rawBody)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(sigHeader)) {
		return errors.New("invalid paystack signature")
	}
	return nil
}
