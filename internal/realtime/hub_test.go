package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewdesk/crewdesk/internal/domain"
)

func drain(c *client) []Event {
	var out []Event
	for {
		select {
		case ev := <-c.send:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestNotifyUser(t *testing.T) {
	hub := NewHub()

	alice1 := hub.register("u-alice", domain.RoleEmployee)
	alice2 := hub.register("u-alice", domain.RoleEmployee) // second tab
	bob := hub.register("u-bob", domain.RoleEmployee)

	hub.NotifyUser("u-alice", "ticket_updated", map[string]string{"id": "t1"})

	// Every connection held by the user receives the event.
	require.Len(t, drain(alice1), 1)
	require.Len(t, drain(alice2), 1)
	assert.Empty(t, drain(bob))
}

func TestNotifyRole(t *testing.T) {
	hub := NewHub()

	admin := hub.register("u-admin", domain.RoleAdmin)
	employee := hub.register("u-emp", domain.RoleEmployee)

	hub.NotifyRole(domain.RoleAdmin, "ticket_created", nil)

	events := drain(admin)
	require.Len(t, events, 1)
	assert.Equal(t, "ticket_created", events[0].Event)
	assert.Empty(t, drain(employee))
}

func TestBroadcast(t *testing.T) {
	hub := NewHub()

	c1 := hub.register("u1", domain.RoleEmployee)
	c2 := hub.register("u2", domain.RoleManager)

	hub.Broadcast("announcement", "maintenance at noon")

	require.Len(t, drain(c1), 1)
	require.Len(t, drain(c2), 1)
}

func TestUnregisterIdempotent(t *testing.T) {
	hub := NewHub()

	c := hub.register("u1", domain.RoleEmployee)
	assert.Equal(t, 1, hub.ConnectionCount())

	hub.unregister(c)
	hub.unregister(c) // second call must not panic on a closed channel
	assert.Equal(t, 0, hub.ConnectionCount())

	// Events after unregister go nowhere but must not block or panic.
	hub.NotifyUser("u1", "late_event", nil)
}

func TestSlowConsumerDropsEvents(t *testing.T) {
	hub := NewHub()
	c := hub.register("u1", domain.RoleEmployee)

	// Nobody drains the channel; events past the buffer are dropped
	// instead of blocking the sender.
	for i := 0; i < sendBuffer*2; i++ {
		hub.NotifyUser("u1", "burst", i)
	}

	assert.Len(t, drain(c), sendBuffer)
}
