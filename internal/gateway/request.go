package gateway

import (
	"net/url"
	"strings"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/cart"
	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/money"
)

// Fixed protocol values for the gateway's classic payments API.
const (
	paymentIntent = "sale"
	payerMethod   = "paypal"

	approvalSuffix = "/approval"
	cancelSuffix   = "/cancel"
)

// PaymentRequest is the wire shape of a create-payment call.
type PaymentRequest struct {
	Intent       string        `json:"intent"`
	Payer        Payer         `json:"payer"`
	Transactions []Transaction `json:"transactions"`
	RedirectURLs RedirectURLs  `json:"redirect_urls"`
}

type Payer struct {
	PaymentMethod string `json:"payment_method"`
}

type Transaction struct {
	Amount      Amount   `json:"amount"`
	ItemList    ItemList `json:"item_list"`
	Description string   `json:"description"`
}

type Amount struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type ItemList struct {
	Items []cart.LineItem `json:"items"`
}

type RedirectURLs struct {
	ReturnURL string `json:"return_url"`
	CancelURL string `json:"cancel_url"`
}

// BuildPaymentRequest assembles a gateway-ready transaction from an
// aggregated cart. The base URL is validated up front: a malformed redirect
// URL would otherwise surface only after the buyer has already been bounced
// to the gateway's approval page.
func BuildPaymentRequest(lineItems []cart.LineItem, total, description, baseURL string) (*PaymentRequest, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return nil, ErrInvalidBaseURL
	}

	base := strings.TrimSuffix(baseURL, "/")

	return &PaymentRequest{
		Intent: paymentIntent,
		Payer:  Payer{PaymentMethod: payerMethod},
		Transactions: []Transaction{
			{
				Amount: Amount{
					Total:    total,
					Currency: money.Currency,
				},
				ItemList:    ItemList{Items: lineItems},
				Description: description,
			},
		},
		RedirectURLs: RedirectURLs{
			ReturnURL: base + approvalSuffix,
			CancelURL: base + cancelSuffix,
		},
	}, nil
}
