package smsgateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ozgundoganbatuhan-lang/asansor/pkg/config"
	"github.com/ozgundoganbatuhan-lang/asansor/pkg/logger"
)

var nonDigits = regexp.MustCompile(`\D`)

// Client sends SMS messages through the Netgsm REST gateway. Without
// credentials it runs in demo mode: messages are logged, not sent.
type Client struct {
	endpoint  string
	usercode  string
	password  string
	msgHeader string
	http      *http.Client
}

// NewClient creates a gateway client from configuration
func NewClient(conf *config.SMSConfig) *Client {
	return &Client{
		endpoint:  conf.Endpoint,
		usercode:  conf.Usercode,
		password:  conf.Password,
		msgHeader: conf.MsgHeader,
		http:      &http.Client{Timeout: 10 * time.Second},
	}
}

// DemoMode reports whether the client has no credentials configured
func (c *Client) DemoMode() bool {
	return c.usercode == "" || c.password == ""
}

// NormalizePhone strips formatting and converts a leading national zero to
// the 90 country prefix expected by the gateway.
func NormalizePhone(phone string) string {
	digits := nonDigits.ReplaceAllString(phone, "")
	if strings.HasPrefix(digits, "0") {
		digits = "90" + digits[1:]
	}
	return digits
}

// Send posts a message to the gateway. The gateway answers with a bare status
// string: "00 <jobid>", "01" and "02" mean accepted, anything else is an
// error code surfaced to the caller.
func (c *Client) Send(ctx context.Context, phone, message string) error {
	if c.DemoMode() {
		logger.GetLogger().Info("SMS demo mode, message not sent",
			zap.String("to", phone),
			zap.String("message", message))
		return nil
	}

	form := url.Values{}
	form.Set("usercode", c.usercode)
	form.Set("password", c.password)
	form.Set("gsmno", NormalizePhone(phone))
	form.Set("text", message)
	form.Set("msgheader", c.msgHeader)
	form.Set("dil", "TR")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("sms gateway response unreadable: %w", err)
	}

	status := strings.TrimSpace(string(body))
	if Accepted(status) {
		return nil
	}
	return fmt.Errorf("sms gateway error: %s", status)
}

// Accepted reports whether a gateway response string means the message was
// accepted for delivery.
func Accepted(status string) bool {
	return status == "00" || status == "01" || status == "02" ||
		strings.HasPrefix(status, "00 ") || strings.HasPrefix(status, "01 ") || strings.HasPrefix(status, "02 ")
}
