package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SMSClient sends text messages through an HTTP GET gateway that takes
// the credentials, recipient and content as query parameters
// (user, pass, rec, cont).  Any non-2xx answer is a failure.
type SMSClient struct {
	gateway string
	user    string
	pass    string
	http    *http.Client
}

// NewSMSClient returns a client for gatewayURL.  A zero timeout means 10s.
func NewSMSClient(gatewayURL, user, pass string, timeout time.Duration) *SMSClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SMSClient{gateway: gatewayURL, user: user, pass: pass, http: &http.Client{Timeout: timeout}}
}

func (s *SMSClient) Notify(ctx context.Context, m Message) error {
	if err := m.Validate(); err != nil {
		return err
	}
	u, err := url.Parse(s.gateway)
	if err != nil {
		return fmt.Errorf("sms gateway url: %w", err)
	}
	q := u.Query()
	q.Set("user", s.user)
	q.Set("pass", s.pass)
	q.Set("rec", m.To)
	q.Set("cont", m.Body)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: sms to %s: %v", ErrGateway, m.To, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: sms to %s: status %d", ErrGateway, m.To, resp.StatusCode)
	}
	return nil
}
