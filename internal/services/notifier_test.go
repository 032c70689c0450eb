package services

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio_app_echo/internal/contact"
	"portfolio_app_echo/internal/models"
)

type fakeChannel struct {
	name  string
	err   error
	calls []models.ContactMessage
}

func (c *fakeChannel) Name() string { return c.name }

func (c *fakeChannel) Notify(ctx context.Context, msg models.ContactMessage) error {
	c.calls = append(c.calls, msg)
	return c.err
}

type countingObserver struct {
	outcomes map[string]int
}

func (o *countingObserver) IncrementNotification(channel string, err error) {
	if o.outcomes == nil {
		o.outcomes = map[string]int{}
	}
	key := channel + ":ok"
	if err != nil {
		key = channel + ":fail"
	}
	o.outcomes[key]++
}

func TestNotifierDeliver(t *testing.T) {
	email := &fakeChannel{name: ChannelEmail}
	whatsapp := &fakeChannel{name: ChannelWhatsApp, err: errors.New("session down")}
	push := &fakeChannel{name: ChannelPush}
	obs := &countingObserver{}
	n := NewNotifier(obs, email, whatsapp, push)

	assert.Equal(t, []string{"email", "whatsapp", "push"}, n.Channels())

	failures := n.Deliver(context.Background(), models.ContactMessage{ID: "m1"})
	require.Len(t, failures, 1)
	assert.EqualError(t, failures[ChannelWhatsApp], "session down")
	assert.Len(t, email.calls, 1)
	assert.Len(t, push.calls, 1, "a failing channel does not stop the others")
	assert.Equal(t, 1, obs.outcomes["whatsapp:fail"])

	failures = n.Deliver(context.Background(), models.ContactMessage{ID: "m1"}, ChannelWhatsApp)
	assert.Len(t, failures, 1)
	assert.Len(t, email.calls, 1, "only the named channels are retried")
	assert.Len(t, whatsapp.calls, 2)
}

func TestDirectSender(t *testing.T) {
	payload := contact.Payload{Name: " Ada ", Email: "ada@example.com", Subject: "Hi", Message: "Hello"}

	t.Run("partial failure still accepts", func(t *testing.T) {
		email := &fakeChannel{name: ChannelEmail}
		s := &DirectSender{Notifier: NewNotifier(nil, email, &fakeChannel{name: ChannelPush, err: errors.New("x")})}

		ctx := contact.WithClient(context.Background(), "abc")
		ack, err := s.Send(ctx, payload)
		require.NoError(t, err)
		assert.Equal(t, "direct", ack.Via)
		assert.NotEmpty(t, ack.ID)

		require.Len(t, email.calls, 1)
		assert.Equal(t, "Ada", email.calls[0].Name)
		assert.Equal(t, "abc", email.calls[0].ClientHash)
		assert.Equal(t, ack.ID, email.calls[0].ID)
	})

	t.Run("every channel failing is an error", func(t *testing.T) {
		s := &DirectSender{Notifier: NewNotifier(nil,
			&fakeChannel{name: ChannelEmail, err: errors.New("smtp")},
			&fakeChannel{name: ChannelPush, err: errors.New("fcm")},
		)}
		_, err := s.Send(context.Background(), payload)
		var derr *DeliveryError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "notification failed on every channel (email: smtp; push: fcm)", err.Error())
	})
}

type fakeMessaging struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeMessaging) Send(ctx context.Context, m *messaging.Message) (string, error) {
	f.sent = append(f.sent, m)
	return "projects/p/messages/1", f.err
}

func TestPushChannel(t *testing.T) {
	fcm := &fakeMessaging{}
	ch := &PushChannel{Service: &PushService{client: fcm, topic: "owner"}}

	err := ch.Notify(context.Background(), models.ContactMessage{ID: "m1", Name: "Ada", Email: "ada@example.com", Subject: "Hi"})
	require.NoError(t, err)
	require.Len(t, fcm.sent, 1)
	assert.Equal(t, "owner", fcm.sent[0].Topic)
	assert.Equal(t, "Portfolio Contact: Hi", fcm.sent[0].Notification.Title)
	assert.Equal(t, "m1", fcm.sent[0].Data["message_id"])

	fcm.err = errors.New("quota")
	assert.ErrorContains(t, ch.Notify(context.Background(), models.ContactMessage{}), "quota")
}
