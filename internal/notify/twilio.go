package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/config"
)

const (
	defaultTwilioBaseURL = "https://api.twilio.com"

	// twilioMaxBodyLength is the Messages API body limit.
	twilioMaxBodyLength = config.TwilioMaxMessageLength

	// twilioCodeBodyTooLong is returned when the body exceeds the limit.
	twilioCodeBodyTooLong = 21617
)

// TwilioError is an error response from the Twilio REST API.
type TwilioError struct {
	Status   int    `json:"status"`
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
}

func (e *TwilioError) Error() string {
	return fmt.Sprintf("twilio error %d (HTTP %d): %s", e.Code, e.Status, e.Message)
}

// Unwrap exposes ErrMessageTooLong for the body-length error code.
func (e *TwilioError) Unwrap() error {
	if e.Code == twilioCodeBodyTooLong {
		return ErrMessageTooLong
	}
	return nil
}

// TwilioTransport sends messages with the Twilio Messages API. From and To
// use the "whatsapp:+<number>" form for WhatsApp delivery.
type TwilioTransport struct {
	accountSID string
	authToken  string
	from       string
	to         string
	baseURL    string
	client     *http.Client
}

// TwilioOption configures a TwilioTransport.
type TwilioOption func(*TwilioTransport)

// WithTwilioBaseURL overrides the API base URL.
func WithTwilioBaseURL(u string) TwilioOption {
	return func(t *TwilioTransport) {
		if u != "" {
			t.baseURL = strings.TrimSuffix(u, "/")
		}
	}
}

// WithTwilioHTTPClient sets a custom HTTP client.
func WithTwilioHTTPClient(c *http.Client) TwilioOption {
	return func(t *TwilioTransport) {
		t.client = c
	}
}

// NewTwilioTransport creates a new TwilioTransport.
func NewTwilioTransport(accountSID, authToken, from, to string, opts ...TwilioOption) *TwilioTransport {
	t := &TwilioTransport{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		to:         to,
		baseURL:    defaultTwilioBaseURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

type twilioMessage struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

// Send creates one message and returns its SID.
func (t *TwilioTransport) Send(ctx context.Context, body string) (string, error) {
	if n := utf8.RuneCountInString(body); n > twilioMaxBodyLength {
		return "", fmt.Errorf("%w: %d characters exceeds %d", ErrMessageTooLong, n, twilioMaxBodyLength)
	}

	form := url.Values{}
	form.Set("From", t.from)
	form.Set("To", t.to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		t.baseURL, url.PathEscape(t.accountSID))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating twilio request: %w", err)
	}
	req.SetBasicAuth(t.accountSID, t.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending twilio message: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading twilio response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &TwilioError{Status: resp.StatusCode}
		if jsonErr := json.Unmarshal(respBody, apiErr); jsonErr != nil || apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		apiErr.Status = resp.StatusCode
		return "", apiErr
	}

	var msg twilioMessage
	if err := json.Unmarshal(respBody, &msg); err != nil {
		return "", fmt.Errorf("parsing twilio response: %w", err)
	}
	return msg.SID, nil
}
