//go:build integration

package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donorconnect/donor-api/pkg/messaging"
	"github.com/donorconnect/donor-api/pkg/metrics"
)

func TestRedisBrokerRoundTrip(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379")
	require.NoError(t, err)

	logger := zerolog.Nop()
	broker, err := NewRedisBroker(ctx, Config{
		URL:        fmt.Sprintf("redis://%s:%s/0", host, port.Port()),
		MaxRetries: 1,
		PoolSize:   2,
	}, &logger, metrics.NewMetrics("test", ""))
	require.NoError(t, err)
	defer broker.Close()

	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	msgs, err := broker.Subscribe(subCtx, "donor.contact")
	require.NoError(t, err)

	pub := messaging.NewChannelPublisher(broker, "donor.contact")
	require.NoError(t, pub.Publish(ctx, "DONOR_CONTACT_REQUESTED", map[string]string{"donorId": "usr_1"}))

	select {
	case raw := <-msgs:
		env, err := messaging.Decode(raw)
		require.NoError(t, err)
		assert.Equal(t, "DONOR_CONTACT_REQUESTED", env.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("no message received")
	}
}
