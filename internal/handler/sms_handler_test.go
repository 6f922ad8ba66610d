package handler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ozgundoganbatuhan-lang/asansor/pkg/config"
)

func TestSendSMSSurfacesGatewayStatus(t *testing.T) {
	setupTest(t)
	_, _, sess := seedOrg(t, "sms-org")

	gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "30")
	}))
	defer gateway.Close()

	Init(&config.Config{
		ServiceName: "servisim-test",
		JWT: config.JWTConfig{
			SigningKey:      "test-signing-key",
			ExpirationHours: 1,
			CookieName:      "servisim_token",
		},
		Trial: config.TrialConfig{Days: 14},
		SMS: config.SMSConfig{
			Endpoint:  gateway.URL,
			Usercode:  "user",
			Password:  "pass",
			MsgHeader: "TEST",
		},
	})

	rec := doRequest(t, SendSMS, http.MethodPost, "/api/sms",
		`{"type":"custom","phone":"05321112233","message":"deneme"}`, sess, nil)
	require.Equal(t, http.StatusBadGateway, rec.Code)

	// The gateway's raw status code is part of the error body
	assert.Contains(t, decodeBody(t, rec)["error"].(string), "30")
}

func TestSendSMSDemoModeReportsDemo(t *testing.T) {
	setupTest(t)
	_, _, sess := seedOrg(t, "sms-org")

	rec := doRequest(t, SendSMS, http.MethodPost, "/api/sms",
		`{"type":"custom","phone":"05321112233","message":"deneme"}`, sess, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["demo"])
}
