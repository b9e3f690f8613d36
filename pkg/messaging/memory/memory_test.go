package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/donorconnect/donor-api/pkg/messaging"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case msg, ok := <-ch:
		require.True(t, ok, "channel closed")
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestPublishFansOutToSubscribers(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first, err := b.Subscribe(ctx, "donor.contact")
	require.NoError(t, err)
	second, err := b.Subscribe(ctx, "donor.contact")
	require.NoError(t, err)
	other, err := b.Subscribe(ctx, "other")
	require.NoError(t, err)

	require.NoError(t, b.Publish(ctx, "donor.contact", map[string]string{"hello": "world"}))

	assert.JSONEq(t, `{"hello":"world"}`, string(receive(t, first)))
	assert.JSONEq(t, `{"hello":"world"}`, string(receive(t, second)))
	assert.Len(t, other, 0)
}

func TestSubscriptionEndsWithContext(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := b.Subscribe(ctx, "donor.contact")
	require.NoError(t, err)

	cancel()
	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	// no subscribers left, publishing is a no-op
	assert.NoError(t, b.Publish(context.Background(), "donor.contact", "x"))
}

func TestClosedBrokerRejectsUse(t *testing.T) {
	b := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := b.Subscribe(ctx, "donor.contact")
	require.NoError(t, err)
	require.NoError(t, b.Close())

	_, ok := <-ch
	assert.False(t, ok)
	assert.ErrorIs(t, b.Publish(ctx, "donor.contact", "x"), messaging.ErrClosed)
	_, err = b.Subscribe(ctx, "donor.contact")
	assert.ErrorIs(t, err, messaging.ErrClosed)
}

func TestConsumeDecodesEnvelopes(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	got := make(chan messaging.Envelope, 1)
	done := make(chan error, 1)

	go func() {
		done <- messaging.Consume(ctx, b, "donor.contact", func(_ context.Context, env messaging.Envelope) error {
			got <- env
			return nil
		})
	}()

	pub := messaging.NewChannelPublisher(b, "donor.contact")
	// wait until Consume has registered its own subscription
	require.Eventually(t, func() bool {
		b.mu.RLock()
		defer b.mu.RUnlock()
		return len(b.subs["donor.contact"]) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, b.Publish(ctx, "donor.contact", []byte(`not json`)))
	require.NoError(t, pub.Publish(ctx, "DONOR_CONTACT_REQUESTED", map[string]string{"donorId": "usr_1"}))

	select {
	case env := <-got:
		assert.Equal(t, "DONOR_CONTACT_REQUESTED", env.Type)
		assert.JSONEq(t, `{"donorId":"usr_1"}`, string(env.Payload))
	case <-time.After(time.Second):
		t.Fatal("handler not called")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func fill(t *testing.T, b *Broker, channel string) {
	t.Helper()
	for i := 0; i < bufferSize; i++ {
		require.NoError(t, b.Publish(context.Background(), channel, i))
	}
}

func TestFullSubscriberDoesNotBlockBroker(t *testing.T) {
	b := NewBroker()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := b.Subscribe(ctx, "donor.contact")
	require.NoError(t, err)
	fill(t, b, "donor.contact")

	pubCtx, pubCancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer pubCancel()
	assert.ErrorIs(t, b.Publish(pubCtx, "donor.contact", "overflow"), context.DeadlineExceeded)

	// a publisher stuck on the full buffer must not hold up other channels or Close
	blocked := make(chan error, 1)
	go func() {
		blocked <- b.Publish(context.Background(), "donor.contact", "stuck")
	}()

	other, err := b.Subscribe(ctx, "donor.other")
	require.NoError(t, err)
	require.NoError(t, b.Publish(context.Background(), "donor.other", "hello"))
	assert.JSONEq(t, `"hello"`, string(receive(t, other)))

	closed := make(chan struct{})
	go func() {
		_ = b.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close blocked behind a full subscriber")
	}

	select {
	case err := <-blocked:
		// ErrClosed if Close won the race to the broker lock
		if err != nil {
			assert.ErrorIs(t, err, messaging.ErrClosed)
		}
	case <-time.After(time.Second):
		t.Fatal("publisher not released by Close")
	}
}

func TestUnsubscribeReleasesBlockedPublisher(t *testing.T) {
	b := NewBroker()
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := b.Subscribe(ctx, "donor.contact")
	require.NoError(t, err)
	fill(t, b, "donor.contact")

	blocked := make(chan error, 1)
	go func() {
		blocked <- b.Publish(context.Background(), "donor.contact", "stuck")
	}()

	cancel()
	select {
	case err := <-blocked:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publisher not released by unsubscribe")
	}

	n := 0
	for range ch {
		n++
	}
	assert.GreaterOrEqual(t, n, bufferSize)
}
