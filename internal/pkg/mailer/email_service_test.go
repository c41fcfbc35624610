package mailer

import (
	"strings"
	"testing"
)

func TestOTPBodyBranding(t *testing.T) {
	body := otpBody("123456")

	if !strings.Contains(body, "Welcome to ReportFiber!") {
		t.Errorf("OTP body missing product greeting: %s", body)
	}
	if !strings.Contains(body, "123456") {
		t.Errorf("OTP body missing the code: %s", body)
	}
	if strings.Contains(body, "NoteFiber") {
		t.Errorf("OTP body carries a foreign product name: %s", body)
	}
}

func TestResetBodyContainsLink(t *testing.T) {
	link := "https://app.example.com/reset-password?token=abc"
	body := resetBody(link)

	// Link appears twice: once as the button href, once as plain text
	if strings.Count(body, link) != 2 {
		t.Errorf("reset body should contain the link twice: %s", body)
	}
	if strings.Contains(body, "NoteFiber") {
		t.Errorf("reset body carries a foreign product name: %s", body)
	}
}
