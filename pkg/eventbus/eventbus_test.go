package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/konvierte/konvierte/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDispatchesToSubscribers(t *testing.T) {
	bus := NewSimpleEventBus()

	var got []domain.Event
	bus.Subscribe("RatesRefreshedEvent", func(_ context.Context, e domain.Event) {
		got = append(got, e)
	})
	bus.Subscribe("RatesRefreshedEvent", func(_ context.Context, e domain.Event) {
		got = append(got, e)
	})

	event := domain.RatesRefreshedEvent{FetchedAt: time.Now().UTC()}
	require.NoError(t, bus.Publish(context.Background(), event))

	require.Len(t, got, 2)
	assert.Equal(t, event, got[0])
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	bus := NewSimpleEventBus()
	assert.NoError(t, bus.Publish(context.Background(), domain.CustomRateRemovedEvent{ID: "custom_1"}))
}

func TestSubscriberOnlySeesItsEventType(t *testing.T) {
	bus := NewSimpleEventBus()

	var removed int
	bus.Subscribe("CustomRateRemovedEvent", func(_ context.Context, _ domain.Event) {
		removed++
	})

	require.NoError(t, bus.Publish(context.Background(), domain.CustomRateAddedEvent{}))
	require.NoError(t, bus.Publish(context.Background(), domain.CustomRateRemovedEvent{ID: "custom_1"}))

	assert.Equal(t, 1, removed)
}
