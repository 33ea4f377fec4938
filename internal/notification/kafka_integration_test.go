//go:build integration

package notification_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"sichrplace/internal/notification"
	id "sichrplace/pkg/domain"
	"sichrplace/pkg/testutil/containers"
)

func TestKafkaNotifier(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	broker := containers.NewRedpandaContainer(t)
	const topic = "screening.decisions.test"
	broker.CreateTopic(t, topic)

	notifier, err := notification.NewKafka(broker.Brokers, topic)
	require.NoError(t, err)
	defer notifier.Close()

	event := notification.DecisionEvent{
		ScreeningID: id.ScreeningID(uuid.New()),
		TenantID:    id.TenantID(uuid.New()),
		ApartmentID: id.ApartmentID(uuid.New()),
		Approved:    true,
		Outcome:     "APPROVED",
		CompletedAt: time.Now().UTC().Truncate(time.Millisecond),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, notifier.DecisionCompleted(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())

	records := fetches.Records()
	require.Len(t, records, 1)
	require.Equal(t, event.ScreeningID.String(), string(records[0].Key))

	var got notification.DecisionEvent
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	require.Equal(t, event.Approved, got.Approved)
	require.Equal(t, event.Outcome, got.Outcome)
}
