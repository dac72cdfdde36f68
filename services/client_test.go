package services

import (
	"encoding/json"
	"testing"
	"time"

	"gorm.io/datatypes"

	"github.com/AkaakuHub/moshi-bingo/models"
)

func snapshotWith(drawn ...int) *models.Game {
	g := &models.Game{
		ID:           "g1",
		Status:       models.StatusPlaying,
		DrawnNumbers: datatypes.NewJSONType(drawn),
	}
	if len(drawn) > 0 {
		n := drawn[len(drawn)-1]
		g.CurrentNumber = &n
	}
	return g
}

// collectDrawn reads frames off the client's send channel until it has seen
// want number_drawn events, returning them in delivery order.
func collectDrawn(t *testing.T, send chan []byte, want int) []int {
	t.Helper()
	var got []int
	deadline := time.After(2 * time.Second)
	for len(got) < want {
		select {
		case b := <-send:
			var msg Message
			if err := json.Unmarshal(b, &msg); err != nil {
				t.Fatalf("bad frame: %v", err)
			}
			if msg.Type == msgNumberDrawn {
				got = append(got, msg.Number)
			}
		case <-deadline:
			t.Fatalf("timed out, got %v of %d events", got, want)
		}
	}
	return got
}

func TestClientUpdateQueue(t *testing.T) {
	newHostClient := func() *Client {
		c := &Client{
			user:    &models.User{ID: "host-1", Role: models.RoleHost},
			gameID:  "g1",
			send:    make(chan []byte, 64),
			updates: make(chan *models.Game, 8),
		}
		go c.runUpdates()
		return c
	}

	t.Run("snapshots are observed in arrival order", func(t *testing.T) {
		client := newHostClient()

		client.enqueueUpdate(snapshotWith())
		client.enqueueUpdate(snapshotWith(7))
		client.enqueueUpdate(snapshotWith(7, 12))
		client.enqueueUpdate(snapshotWith(7, 12, 3))

		got := collectDrawn(t, client.send, 3)
		want := []int{7, 12, 3}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("events out of order: got %v, want %v", got, want)
			}
		}
	})

	t.Run("a redelivered snapshot emits nothing new", func(t *testing.T) {
		client := newHostClient()

		client.enqueueUpdate(snapshotWith())
		client.enqueueUpdate(snapshotWith(7))
		client.enqueueUpdate(snapshotWith(7))
		client.enqueueUpdate(snapshotWith(7, 12))

		got := collectDrawn(t, client.send, 2)
		if got[0] != 7 || got[1] != 12 {
			t.Fatalf("got %v, want [7 12]", got)
		}
	})
}
