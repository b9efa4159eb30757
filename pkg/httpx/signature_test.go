package httpx_test

import (
	"testing"

	"github.com/Gunvolt24/merch_fulfillment/pkg/httpx"
)

func TestVerifyHMACSHA256(t *testing.T) {
	t.Parallel()

	body := []byte(`{"type":"package_shipped"}`)
	sig := httpx.SignHMACSHA256("s3cret", body)

	tests := []struct {
		name      string
		secret    string
		body      []byte
		signature string
		want      bool
	}{
		{"valid", "s3cret", body, sig, true},
		{"valid_with_prefix", "s3cret", body, "sha256=" + sig, true},
		{"wrong_secret", "other", body, sig, false},
		{"tampered_body", "s3cret", []byte(`{"type":"order_failed"}`), sig, false},
		{"empty_signature", "s3cret", body, "", false},
		{"not_hex", "s3cret", body, "zzzz", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := httpx.VerifyHMACSHA256(tt.secret, tt.body, tt.signature); got != tt.want {
				t.Fatalf("VerifyHMACSHA256 = %v, want %v", got, tt.want)
			}
		})
	}
}
