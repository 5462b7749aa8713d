package notify

import (
	"context"
	"testing"
	"time"
)

// Registration and channel membership go through the hub loop and the
// mutex respectively; none of these tests write to a connection.

func startHub(t *testing.T) *Hub {
	t.Helper()

	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		hub.Wait()
	})
	return hub
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.ClientCount() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("ClientCount() = %d, want %d", hub.ClientCount(), want)
}

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := startHub(t)

	c1 := &Client{ID: "c1"}
	c2 := &Client{ID: "c2"}

	hub.Register(c1)
	hub.Register(c2)
	waitForClients(t, hub, 2)

	hub.Unregister(c1)
	waitForClients(t, hub, 1)
}

func TestHub_JoinIsExplicit(t *testing.T) {
	hub := startHub(t)

	client := &Client{ID: "c1"}
	hub.Register(client)
	waitForClients(t, hub, 1)

	// Connecting alone subscribes to nothing
	if got := hub.ChannelMemberCount("user-1"); got != 0 {
		t.Errorf("ChannelMemberCount before join = %d, want 0", got)
	}

	hub.Join("c1", "user-1")
	if got := hub.ChannelMemberCount("user-1"); got != 1 {
		t.Errorf("ChannelMemberCount after join = %d, want 1", got)
	}
}

func TestHub_RejoinMovesChannel(t *testing.T) {
	hub := startHub(t)

	client := &Client{ID: "c1"}
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Join("c1", "user-1")
	hub.Join("c1", "user-2")

	if got := hub.ChannelMemberCount("user-1"); got != 0 {
		t.Errorf("old channel members = %d, want 0", got)
	}
	if got := hub.ChannelMemberCount("user-2"); got != 1 {
		t.Errorf("new channel members = %d, want 1", got)
	}
}

func TestHub_UnregisterClearsMembership(t *testing.T) {
	hub := startHub(t)

	client := &Client{ID: "c1"}
	hub.Register(client)
	waitForClients(t, hub, 1)
	hub.Join("c1", "user-1")

	hub.Unregister(client)
	waitForClients(t, hub, 0)

	if got := hub.ChannelMemberCount("user-1"); got != 0 {
		t.Errorf("ChannelMemberCount after unregister = %d, want 0", got)
	}
}

func TestHub_JoinUnknownClientIsNoop(t *testing.T) {
	hub := startHub(t)

	hub.Join("ghost", "user-1")
	if got := hub.ChannelMemberCount("user-1"); got != 0 {
		t.Errorf("ChannelMemberCount = %d, want 0", got)
	}
}
