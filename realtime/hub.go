package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"

	"event_ticketing/database"
	"event_ticketing/model"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

// eventHub carries one Redis subscription per event and fans messages out to
// every websocket attached to that event.
type eventHub struct {
	conns  map[*websocket.Conn]bool
	pubsub *redis.PubSub
}

var (
	hubs = make(map[uint]*eventHub)
	mu   sync.Mutex
)

type availabilityMessage struct {
	EventId          uint `json:"eventId"`
	AvailableTickets int  `json:"availableTickets"`
}

func channelFor(eventID uint) string {
	return fmt.Sprintf("event:%d", eventID)
}

// PublishAvailability pushes the new ticket count onto the event's channel.
// Best effort; subscribers catch up on their next connect anyway.
func PublishAvailability(eventID uint, available int) {
	if database.Redis == nil {
		return
	}
	payload, _ := json.Marshal(availabilityMessage{EventId: eventID, AvailableTickets: available})
	if err := database.Redis.Publish(context.Background(), channelFor(eventID), payload).Err(); err != nil {
		log.Printf("failed to publish availability for event %d: %v", eventID, err)
	}
}

// join attaches a connection, starting the event's subscription if it is the
// first one.
func join(eventID uint, c *websocket.Conn) {
	mu.Lock()
	defer mu.Unlock()

	hub := hubs[eventID]
	if hub == nil {
		hub = &eventHub{conns: make(map[*websocket.Conn]bool)}
		if database.Redis != nil {
			hub.pubsub = database.Redis.Subscribe(context.Background(), channelFor(eventID))
			go fanOut(eventID, hub)
		}
		hubs[eventID] = hub
	}
	hub.conns[c] = true
}

// leave detaches a connection and tears the subscription down with the last
// one.
func leave(eventID uint, c *websocket.Conn) {
	mu.Lock()
	defer mu.Unlock()

	hub := hubs[eventID]
	if hub == nil {
		return
	}
	delete(hub.conns, c)
	if len(hub.conns) == 0 {
		if hub.pubsub != nil {
			hub.pubsub.Close()
		}
		delete(hubs, eventID)
	}
}

func fanOut(eventID uint, hub *eventHub) {
	for msg := range hub.pubsub.Channel() {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range hub.conns {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(hub.conns, conn)
			}
		}
		mu.Unlock()
	}
}

// EventFeed streams availability updates for one event over a websocket.
func EventFeed(c *websocket.Conn) {
	idStr := c.Params("id")
	id64, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		c.Close()
		return
	}
	eventID := uint(id64)

	// Send the current count before joining the hub. Once the connection is
	// registered, the fan-out goroutine is its only writer; writing the
	// snapshot after joining would race a concurrent publish on the same
	// connection.
	var event model.Event
	if err := database.DB.First(&event, eventID).Error; err == nil {
		c.WriteJSON(availabilityMessage{EventId: eventID, AvailableTickets: event.AvailableTickets})
	}

	join(eventID, c)
	defer func() {
		leave(eventID, c)
		c.Close()
	}()

	// Block until the client goes away; inbound frames are ignored.
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}
