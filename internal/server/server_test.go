package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fieldmaker/verify-backend/internal/gateway"
	"github.com/rs/zerolog"
)

func TestNetgsmCredentialsFromEnv(t *testing.T) {
	t.Setenv("NETGSM_USERNAME", "8503021234")
	t.Setenv("NETGSM_PASSWORD", "secret")
	t.Setenv("NETGSM_MSGHEADER", "FIELDMAKER")

	creds := netgsmCredentialsFromEnv()

	if creds.Username != "8503021234" {
		t.Errorf("Username = %q, want %q", creds.Username, "8503021234")
	}
	if creds.Password != "secret" {
		t.Errorf("Password = %q, want %q", creds.Password, "secret")
	}
	if creds.MsgHeader != "FIELDMAKER" {
		t.Errorf("MsgHeader = %q, want %q", creds.MsgHeader, "FIELDMAKER")
	}
	if !creds.Configured() {
		t.Error("expected credentials read from env to be configured")
	}
}

func TestSmtpConfigFromEnvDefaultsPort(t *testing.T) {
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_USERNAME", "mailer")
	t.Setenv("SMTP_PASSWORD", "secret")
	t.Setenv("SMTP_FROM_EMAIL", "noreply@example.com")
	t.Setenv("SMTP_FROM_NAME", "Fieldmaker")

	conf := smtpConfigFromEnv()

	if conf.Port != 587 {
		t.Errorf("Port = %d, want 587", conf.Port)
	}
	if conf.Host != "smtp.example.com" {
		t.Errorf("Host = %q, want %q", conf.Host, "smtp.example.com")
	}
}

func newTestServer() *Server {
	return &Server{
		gatewaysProvider: gateway.NewProvider(zerolog.Nop(), gateway.NetgsmCredentials{}, gateway.SMTPConfig{}),
	}
}

func TestSendWelcomeSmsHandler(t *testing.T) {
	s := newTestServer()
	router := notificationRouter(s)

	body, _ := json.Marshal(welcomeSmsParams{Phone: "05551234567", Name: "Ayşe"})
	req := httptest.NewRequest(http.MethodPost, "/welcome-sms", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var res smsSendRes
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !res.Success {
		t.Error("expected Success to be true")
	}
	if !res.Mocked {
		t.Error("expected Mocked to be true without live credentials")
	}
	if !strings.HasPrefix(res.JobId, "MOCK_") {
		t.Errorf("JobId = %q, want MOCK_ prefix", res.JobId)
	}
}

func TestSendWelcomeSmsHandlerRejectsInvalidPhone(t *testing.T) {
	s := newTestServer()
	router := notificationRouter(s)

	body, _ := json.Marshal(welcomeSmsParams{Phone: "not-a-phone", Name: "Ayşe"})
	req := httptest.NewRequest(http.MethodPost, "/welcome-sms", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSendBookingConfirmationSmsHandler(t *testing.T) {
	s := newTestServer()
	router := notificationRouter(s)

	body, _ := json.Marshal(bookingConfirmationSmsParams{
		Phone:     "+905551234567",
		EventName: "Saha Günü",
		Date:      "2026-09-01",
		Time:      "19:00",
	})
	req := httptest.NewRequest(http.MethodPost, "/booking-confirmation-sms", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var res smsSendRes
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if !res.Success {
		t.Error("expected Success to be true")
	}
}
