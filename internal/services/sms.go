package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// SMSClient delivers one-time codes through an external SMS relay.
// With no gateway configured it runs in mock mode and only logs the code.
type SMSClient struct {
	httpClient *resty.Client
	gatewayURL string
}

// NewSMSClient creates a new SMS relay client
func NewSMSClient(gatewayURL string) *SMSClient {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &SMSClient{
		httpClient: client,
		gatewayURL: gatewayURL,
	}
}

// Configured reports whether a real SMS gateway is set up
func (c *SMSClient) Configured() bool {
	return c.gatewayURL != ""
}

// smsRequest is the relay's expected payload
type smsRequest struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// SendOTP delivers a login code to a mobile number. In mock mode the code is
// logged instead of sent.
func (c *SMSClient) SendOTP(ctx context.Context, mobileNumber, code string) error {
	if !c.Configured() {
		log.Info().
			Str("mobile_number", mobileNumber).
			Str("code", code).
			Msg("SMS gateway not configured, logging OTP instead")
		return nil
	}

	message := fmt.Sprintf("Your Hotel Login OTP is: %s. Please do not share this with anyone.", code)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(smsRequest{Phone: mobileNumber, Message: message}).
		Post(c.gatewayURL)
	if err != nil {
		return fmt.Errorf("failed to reach SMS gateway: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode())
	}

	log.Info().Str("mobile_number", mobileNumber).Msg("OTP sent via SMS gateway")
	return nil
}
