package payments

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type Initialization struct {
	AuthorizationURL string `json:"authorizationUrl"`
	AccessCode       string `json:"accessCode"`
	Reference        string `json:"reference"`
}

// Gateway is the payment collaborator. Verify reports only whether the transaction succeeded.
type Gateway interface {
	Initialize(ctx context.Context, email string, amountMinor int64, reference string) (Initialization, error)
	Verify(ctx context.Context, reference string) (bool, error)
}

type PaystackGateway struct {
	client *resty.Client
}

type paystackResponse[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
}

func NewPaystackGateway(baseURL, secretKey string, timeout time.Duration) *PaystackGateway {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetAuthToken(secretKey).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")
	return &PaystackGateway{client: client}
}

func (g *PaystackGateway) Initialize(ctx context.Context, email string, amountMinor int64, reference string) (Initialization, error) {
	var result paystackResponse[initializeData]
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"email":     email,
			"amount":    amountMinor,
			"reference": reference,
		}).
		SetResult(&result).
		Post("/transaction/initialize")
	if err != nil {
		return Initialization{}, fmt.Errorf("initialize transaction: %w", err)
	}

	if resp.StatusCode() != http.StatusOK || !result.Status {
		return Initialization{}, fmt.Errorf("paystack initialize failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return Initialization{
		AuthorizationURL: result.Data.AuthorizationURL,
		AccessCode:       result.Data.AccessCode,
		Reference:        result.Data.Reference,
	}, nil
}

func (g *PaystackGateway) Verify(ctx context.Context, reference string) (bool, error) {
	var result paystackResponse[verifyData]
	resp, err := g.client.R().
		SetContext(ctx).
		SetPathParam("reference", reference).
		SetResult(&result).
		Get("/transaction/verify/{reference}")
	if err != nil {
		return false, fmt.Errorf("verify transaction: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return false, fmt.Errorf("paystack verify failed with status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return result.Status && result.Data.Status == "success", nil
}
