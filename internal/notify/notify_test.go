package notify

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"

	"github.com/iliyamo/property-backoffice/internal/model"
)

func TestSMSClientSendsQuery(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		got = r.URL.Query()
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	c := NewSMSClient(srv.URL+"/SendSMS.aspx", "acct", "pw", time.Second)
	err := c.Notify(context.Background(), Message{Channel: ChannelSMS, To: "0612345678", Body: "hello there"})
	require.NoError(t, err)
	assert.Equal(t, "acct", got.Get("user"))
	assert.Equal(t, "pw", got.Get("pass"))
	assert.Equal(t, "0612345678", got.Get("rec"))
	assert.Equal(t, "hello there", got.Get("cont"))
}

func TestSMSClientGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewSMSClient(srv.URL, "u", "p", time.Second)
	err := c.Notify(context.Background(), Message{Channel: ChannelSMS, To: "1", Body: "x"})
	assert.ErrorIs(t, err, ErrGateway)
	assert.Contains(t, err.Error(), "502")
}

func TestSMSClientRequiresRecipient(t *testing.T) {
	c := NewSMSClient("http://127.0.0.1:1", "u", "p", time.Second)
	err := c.Notify(context.Background(), Message{Channel: ChannelSMS, Body: "x"})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrGateway))
}

func TestMailerBuildAndSend(t *testing.T) {
	m := NewMailer(MailerConfig{Host: "smtp.example.com", Username: "ops@example.com", Password: "pw"})
	assert.Equal(t, 587, m.cfg.Port)

	var sent *mail.Msg
	m.send = func(_ context.Context, msg *mail.Msg) error {
		sent = msg
		return nil
	}
	err := m.Notify(context.Background(), Message{
		Channel: ChannelEmail, To: "bob@example.com", Subject: AssignmentSubject, Body: "Hello Bob",
	})
	require.NoError(t, err)
	require.NotNil(t, sent)
	assert.Equal(t, []string{AssignmentSubject}, sent.GetGenHeader(mail.HeaderSubject))

	var buf bytes.Buffer
	_, err = sent.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "bob@example.com")
	assert.Contains(t, buf.String(), "ops@example.com")
	assert.Contains(t, buf.String(), "Hello Bob")
}

func TestMailerWrapsSendFailure(t *testing.T) {
	m := NewMailer(MailerConfig{Host: "smtp.example.com", From: "ops@example.com"})
	m.send = func(context.Context, *mail.Msg) error { return errors.New("connection refused") }
	err := m.Notify(context.Background(), Message{Channel: ChannelEmail, To: "bob@example.com", Body: "x"})
	assert.ErrorIs(t, err, ErrGateway)
}

func TestMailerRejectsBadAddress(t *testing.T) {
	m := NewMailer(MailerConfig{Host: "smtp.example.com", From: "ops@example.com"})
	_, err := m.Build(Message{Channel: ChannelEmail, To: "not an address", Body: "x"})
	assert.Error(t, err)
}

func TestRouterDispatches(t *testing.T) {
	var smsCalls, mailCalls int
	r := &Router{
		SMS:   NotifierFunc(func(context.Context, Message) error { smsCalls++; return nil }),
		Email: NotifierFunc(func(context.Context, Message) error { mailCalls++; return nil }),
	}
	ctx := context.Background()
	require.NoError(t, r.Notify(ctx, Message{Channel: ChannelSMS, To: "1", Body: "x"}))
	require.NoError(t, r.Notify(ctx, Message{Channel: ChannelEmail, To: "a@b.c", Body: "x"}))
	assert.Error(t, r.Notify(ctx, Message{Channel: "pigeon", To: "1", Body: "x"}))
	assert.Equal(t, 1, smsCalls)
	assert.Equal(t, 1, mailCalls)

	assert.Error(t, (&Router{}).Notify(ctx, Message{Channel: ChannelSMS, To: "1", Body: "x"}))
}

func TestConsoleLogs(t *testing.T) {
	var buf bytes.Buffer
	l := log.New("test")
	l.SetOutput(&buf)
	c := NewConsole(l)
	require.NoError(t, c.Notify(context.Background(), Message{Channel: ChannelSMS, To: "0612345678", Body: "hi", Reference: "m1"}))
	assert.Contains(t, buf.String(), "0612345678")
	assert.Contains(t, buf.String(), "m1")
}

func TestTemplates(t *testing.T) {
	c := &model.Contractor{Name: "Bob", Phone: "0123456789", Email: "bob@example.com"}
	r := &model.MaintenanceRequest{ID: "m1", PropertyID: "p1", Description: "Leaking tap", Priority: model.PriorityHigh}
	msgs := ContractorAssigned(c, r)
	require.Len(t, msgs, 2)
	assert.Equal(t, ChannelSMS, msgs[0].Channel)
	assert.Equal(t, "0123456789", msgs[0].To)
	assert.Equal(t, ChannelEmail, msgs[1].Channel)
	assert.Equal(t, "bob@example.com", msgs[1].To)
	assert.Equal(t, AssignmentSubject, msgs[1].Subject)
	assert.Contains(t, msgs[1].Body, "Hello Bob")

	d := LeaseDeclined(&model.Tenant{ID: "t1", Name: "Jane", Phone: "+15551234567"})
	assert.Equal(t, "Dear Jane, your lease has been declined. Please contact property management for further details.", d.Body)
	assert.Equal(t, "+15551234567", d.To)
}
