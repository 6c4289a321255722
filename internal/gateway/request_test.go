package gateway

import (
	"errors"
	"testing"

	"github.com/sdf-photoplatform/photoplatform-payments-service/internal/cart"
)

func TestBuildPaymentRequest(t *testing.T) {
	lineItems := []cart.LineItem{
		{Quantity: "1", Name: "Sunset", Price: "12.50", Currency: "EUR"},
	}

	req, err := BuildPaymentRequest(lineItems, "12.50", "image license purchase", "https://shop.example")
	if err != nil {
		t.Fatalf("BuildPaymentRequest returned error: %v", err)
	}

	if req.Intent != "sale" {
		t.Errorf("intent = %q, want %q", req.Intent, "sale")
	}
	if req.Payer.PaymentMethod != "paypal" {
		t.Errorf("payment method = %q, want %q", req.Payer.PaymentMethod, "paypal")
	}
	if req.RedirectURLs.ReturnURL != "https://shop.example/approval" {
		t.Errorf("return URL = %q, want %q", req.RedirectURLs.ReturnURL, "https://shop.example/approval")
	}
	if req.RedirectURLs.CancelURL != "https://shop.example/cancel" {
		t.Errorf("cancel URL = %q, want %q", req.RedirectURLs.CancelURL, "https://shop.example/cancel")
	}
	if len(req.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(req.Transactions))
	}
	tx := req.Transactions[0]
	if tx.Amount.Total != "12.50" || tx.Amount.Currency != "EUR" {
		t.Errorf("amount = %q %q, want 12.50 EUR", tx.Amount.Total, tx.Amount.Currency)
	}
	if tx.Description != "image license purchase" {
		t.Errorf("description = %q, want %q", tx.Description, "image license purchase")
	}
	if len(tx.ItemList.Items) != 1 {
		t.Errorf("got %d items, want 1", len(tx.ItemList.Items))
	}
}

func TestBuildPaymentRequest_TrailingSlash(t *testing.T) {
	req, err := BuildPaymentRequest(nil, "0.00", "", "https://shop.example/")
	if err != nil {
		t.Fatalf("BuildPaymentRequest returned error: %v", err)
	}
	if req.RedirectURLs.ReturnURL != "https://shop.example/approval" {
		t.Errorf("return URL = %q, want %q", req.RedirectURLs.ReturnURL, "https://shop.example/approval")
	}
}

func TestBuildPaymentRequest_InvalidBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
	}{
		{"empty", ""},
		{"no scheme", "shop.example"},
		{"relative path", "/checkout"},
		{"scheme without host", "https://"},
		{"garbage", "://bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildPaymentRequest(nil, "0.00", "", tt.baseURL)
			if !errors.Is(err, ErrInvalidBaseURL) {
				t.Errorf("BuildPaymentRequest(%q) error = %v, want ErrInvalidBaseURL", tt.baseURL, err)
			}
		})
	}
}
