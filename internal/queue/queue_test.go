package queue

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/property-backoffice/internal/notify"
)

type fakeAck struct {
	acked, nacked, requeue bool
}

func (f *fakeAck) Ack(uint64, bool) error { f.acked = true; return nil }
func (f *fakeAck) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked, f.requeue = true, requeue
	return nil
}
func (f *fakeAck) Reject(_ uint64, requeue bool) error {
	f.nacked, f.requeue = true, requeue
	return nil
}

type fakeRetrier struct {
	jobs []Job
	err  error
}

func (r *fakeRetrier) Retry(_ context.Context, job Job) error {
	if r.err != nil {
		return r.err
	}
	r.jobs = append(r.jobs, job)
	return nil
}

func quietLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

func delivery(t *testing.T, ack *fakeAck, job Job) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(job)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body, MessageId: job.ID}
}

func sms() notify.Message {
	return notify.Message{Channel: notify.ChannelSMS, To: "0123456789", Body: "hello"}
}

func TestHandleDelivers(t *testing.T) {
	var got notify.Message
	c := NewConsumer(ConsumerConfig{MaxAttempts: 3}, notify.NotifierFunc(func(_ context.Context, m notify.Message) error {
		got = m
		return nil
	}), quietLogger())

	ack := &fakeAck{}
	out := c.Handle(context.Background(), delivery(t, ack, NewJob(sms())), &fakeRetrier{})
	assert.Equal(t, Delivered, out)
	assert.True(t, ack.acked)
	assert.False(t, ack.nacked)
	assert.Equal(t, "0123456789", got.To)
}

func TestHandleSchedulesRetry(t *testing.T) {
	c := NewConsumer(ConsumerConfig{MaxAttempts: 3}, notify.NotifierFunc(func(context.Context, notify.Message) error {
		return notify.ErrGateway
	}), quietLogger())

	ack := &fakeAck{}
	r := &fakeRetrier{}
	job := NewJob(sms())
	out := c.Handle(context.Background(), delivery(t, ack, job), r)
	assert.Equal(t, Retried, out)
	assert.True(t, ack.acked)
	require.Len(t, r.jobs, 1)
	assert.Equal(t, job.ID, r.jobs[0].ID)
	assert.Equal(t, 1, r.jobs[0].Attempt)
	assert.Contains(t, r.jobs[0].LastError, "gateway")
}

func TestHandleDeadLettersAfterMaxAttempts(t *testing.T) {
	c := NewConsumer(ConsumerConfig{MaxAttempts: 3}, notify.NotifierFunc(func(context.Context, notify.Message) error {
		return errors.New("down")
	}), quietLogger())

	ack := &fakeAck{}
	r := &fakeRetrier{}
	job := NewJob(sms())
	job.Attempt = 2
	out := c.Handle(context.Background(), delivery(t, ack, job), r)
	assert.Equal(t, DeadLettered, out)
	assert.True(t, ack.nacked)
	assert.False(t, ack.requeue)
	assert.Empty(t, r.jobs)
}

func TestHandleMalformedBody(t *testing.T) {
	called := false
	c := NewConsumer(ConsumerConfig{MaxAttempts: 3}, notify.NotifierFunc(func(context.Context, notify.Message) error {
		called = true
		return nil
	}), quietLogger())

	ack := &fakeAck{}
	out := c.Handle(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte("{nope")}, &fakeRetrier{})
	assert.Equal(t, DeadLettered, out)
	assert.True(t, ack.nacked)
	assert.False(t, called)

	ack = &fakeAck{}
	out = c.Handle(context.Background(), delivery(t, ack, NewJob(notify.Message{Channel: "fax", To: "1", Body: "x"})), &fakeRetrier{})
	assert.Equal(t, DeadLettered, out)
	assert.False(t, called)
}

func TestHandleRequeuesWhenRetryPublishFails(t *testing.T) {
	c := NewConsumer(ConsumerConfig{MaxAttempts: 5}, notify.NotifierFunc(func(context.Context, notify.Message) error {
		return errors.New("down")
	}), quietLogger())

	ack := &fakeAck{}
	out := c.Handle(context.Background(), delivery(t, ack, NewJob(sms())), &fakeRetrier{err: errors.New("channel closed")})
	assert.Equal(t, Requeued, out)
	assert.True(t, ack.nacked)
	assert.True(t, ack.requeue)
	assert.False(t, ack.acked)
}

func TestNewConsumerDefaults(t *testing.T) {
	c := NewConsumer(ConsumerConfig{}, notify.NotifierFunc(func(context.Context, notify.Message) error { return nil }), quietLogger())
	assert.Equal(t, 1, c.cfg.MaxAttempts)
	assert.Equal(t, 10, c.cfg.Prefetch)
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, RoutingSMS, RoutingKey(notify.ChannelSMS))
	assert.Equal(t, RoutingEmail, RoutingKey(notify.ChannelEmail))
}

type recordingDeclarer struct {
	exchanges []string
	queues    map[string]amqp.Table
	binds     [][3]string
}

func (d *recordingDeclarer) ExchangeDeclare(name, kind string, _, _, _, _ bool, _ amqp.Table) error {
	d.exchanges = append(d.exchanges, name+":"+kind)
	return nil
}

func (d *recordingDeclarer) QueueDeclare(name string, _, _, _, _ bool, args amqp.Table) (amqp.Queue, error) {
	if d.queues == nil {
		d.queues = map[string]amqp.Table{}
	}
	d.queues[name] = args
	return amqp.Queue{Name: name}, nil
}

func (d *recordingDeclarer) QueueBind(name, key, exchange string, _ bool, _ amqp.Table) error {
	d.binds = append(d.binds, [3]string{name, key, exchange})
	return nil
}

func TestTopologyDeclare(t *testing.T) {
	topo := Topology{Exchange: "notifications", Queue: "notifications.deliver", RetryDelay: 30 * time.Second}
	d := &recordingDeclarer{}
	require.NoError(t, topo.Declare(d))

	assert.Equal(t, []string{"notifications:topic", "notifications.dlx:topic"}, d.exchanges)
	assert.Equal(t, "notifications.dlx", d.queues["notifications.deliver"]["x-dead-letter-exchange"])

	retry := d.queues["notifications.deliver.retry"]
	assert.Equal(t, int64(30000), retry["x-message-ttl"])
	assert.Equal(t, "notifications", retry["x-dead-letter-exchange"])
	assert.Equal(t, RoutingRetry, retry["x-dead-letter-routing-key"])

	assert.Contains(t, d.binds, [3]string{"notifications.deliver.dlq", "#", "notifications.dlx"})
	assert.Contains(t, d.binds, [3]string{"notifications.deliver", "notify.*", "notifications"})
}
