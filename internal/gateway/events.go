package gateway

import "github.com/demandvibes/taskdesk/internal/model"

// subscriberBuffer is sized so a burst of events during a slow UI
// frame is not dropped. Emission never blocks: an event that cannot
// be buffered for a subscriber is dropped for that subscriber.
const subscriberBuffer = 8

// Subscribe registers for auth-state-change events. The returned
// cancel function removes the subscription and closes the channel;
// calling it more than once is safe.
func (c *Client) Subscribe() (<-chan model.AuthEvent, func()) {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	ch := make(chan model.AuthEvent, subscriberBuffer)
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = ch

	cancel := func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		if sub, ok := c.subscribers[id]; ok {
			delete(c.subscribers, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close tears down every subscription. Events emitted afterwards go
// nowhere.
func (c *Client) Close() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, ch := range c.subscribers {
		delete(c.subscribers, id)
		close(ch)
	}
}

func (c *Client) emit(event model.AuthEvent) {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subscribers {
		select {
		case ch <- event:
		default:
			c.logger.Warn("gateway: dropping event for slow subscriber",
				"event", string(event.Kind))
		}
	}
}
