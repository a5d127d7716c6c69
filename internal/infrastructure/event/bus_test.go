package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shop/storefront/internal/domain/shared"
)

type recordingHandler struct {
	types    []string
	seen     []string
	failWith error
	panics   bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.seen = append(h.seen, event.EventType())
	return h.failWith
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType string) *testEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "test", "agg-1")}
}

func TestInMemoryEventBus_DispatchIsSynchronous(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"cart.changed"}}
	bus.Subscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("cart.changed")))

	// No waiting needed: dispatch completed before Publish returned
	assert.Equal(t, []string{"cart.changed"}, handler.seen)
}

func TestInMemoryEventBus_TypeFiltering(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	cartHandler := &recordingHandler{types: []string{"cart.changed"}}
	orderHandler := &recordingHandler{types: []string{"order.changed"}}
	bus.Subscribe(cartHandler)
	bus.Subscribe(orderHandler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("cart.changed")))

	assert.Len(t, cartHandler.seen, 1)
	assert.Empty(t, orderHandler.seen)
}

func TestInMemoryEventBus_WildcardReceivesEverything(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	// A handler declaring no types becomes a wildcard subscriber
	all := &recordingHandler{}
	bus.Subscribe(all)

	require.NoError(t, bus.Publish(context.Background(),
		newTestEvent("cart.changed"), newTestEvent("order.changed")))

	assert.Contains(t, all.seen, "cart.changed")
	assert.Contains(t, all.seen, "order.changed")
}

func TestInMemoryEventBus_FailingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{types: []string{"cart.changed"}, failWith: errors.New("nope")}
	healthy := &recordingHandler{types: []string{"cart.changed"}}
	bus.Subscribe(failing)
	bus.Subscribe(healthy)

	err := bus.Publish(context.Background(), newTestEvent("cart.changed"))

	require.NoError(t, err, "a failing subscriber must not fail the publish")
	assert.Len(t, healthy.seen, 1)
}

func TestInMemoryEventBus_PanickingHandlerIsContained(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	panicking := &recordingHandler{types: []string{"cart.changed"}, panics: true}
	healthy := &recordingHandler{types: []string{"cart.changed"}}
	bus.Subscribe(panicking)
	bus.Subscribe(healthy)

	require.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), newTestEvent("cart.changed"))
	})
	assert.Len(t, healthy.seen, 1)
}

func TestInMemoryEventBus_Unsubscribe(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	handler := &recordingHandler{types: []string{"cart.changed"}}
	bus.Subscribe(handler)
	bus.Unsubscribe(handler)

	require.NoError(t, bus.Publish(context.Background(), newTestEvent("cart.changed")))
	assert.Empty(t, handler.seen)
}
