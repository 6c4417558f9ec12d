package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devportfolio/portfolio-backend/models"
)

type fakeSender struct {
	mu       sync.Mutex
	requests []*resend.SendEmailRequest
	err      error
	sent     chan struct{}
}

func newFakeSender(err error) *fakeSender {
	return &fakeSender{err: err, sent: make(chan struct{}, 1)}
}

func (f *fakeSender) SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, params)
	f.mu.Unlock()
	defer func() { f.sent <- struct{}{} }()

	if f.err != nil {
		return nil, f.err
	}
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("notification sent without a deadline")
	}
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

var testContact = models.Contact{
	ID:      7,
	Name:    "Ana <script>",
	Email:   "ana@example.com",
	Message: "Olá!\nVamos conversar?",
}

func TestSendBuildsEmail(t *testing.T) {
	sender := newFakeSender(nil)
	notifier := NewContactNotifierWithSender(sender, "Portfolio <noreply@example.com>", "owner@example.com", zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, notifier.Send(ctx, testContact))

	require.Len(t, sender.requests, 1)
	req := sender.requests[0]
	assert.Equal(t, "Portfolio <noreply@example.com>", req.From)
	assert.Equal(t, []string{"owner@example.com"}, req.To)
	assert.Equal(t, "ana@example.com", req.ReplyTo)
	assert.Equal(t, "Novo contato de Ana <script>", req.Subject)
	assert.Contains(t, req.Html, "Ana &lt;script&gt;")
	assert.NotContains(t, req.Html, "<script>")
	assert.Contains(t, req.Html, "Olá!<br>Vamos conversar?")
	assert.Contains(t, req.Text, "Vamos conversar?")
}

func TestSendReturnsProviderError(t *testing.T) {
	sender := newFakeSender(errors.New("rate limited"))
	notifier := NewContactNotifierWithSender(sender, "from@example.com", "owner@example.com", zerolog.Nop())

	err := notifier.Send(context.Background(), testContact)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestContactCreatedOutlivesRequest(t *testing.T) {
	sender := newFakeSender(nil)
	notifier := NewContactNotifierWithSender(sender, "from@example.com", "owner@example.com", zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	notifier.ContactCreated(ctx, testContact)

	select {
	case <-sender.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not sent")
	}

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.requests, 1)
	assert.Equal(t, "ana@example.com", sender.requests[0].ReplyTo)
}

func TestContactCreatedSwallowsErrors(t *testing.T) {
	sender := newFakeSender(errors.New("unauthorized"))
	notifier := NewContactNotifierWithSender(sender, "from@example.com", "owner@example.com", zerolog.Nop())

	notifier.ContactCreated(context.Background(), testContact)

	select {
	case <-sender.sent:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not attempted")
	}
}
