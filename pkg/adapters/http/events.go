package http

import (
	"fmt"
	"net/http"
	"sync"
)

// StreamManager handles active SSE connections, keyed by façade name.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
	}
}

// Subscribe registers a channel for topic. The returned func unsubscribes and
// closes the channel.
func (sm *StreamManager) Subscribe(topic string) (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[topic]; !ok {
		sm.subscribers[topic] = make(map[chan<- string]struct{})
	}
	sm.subscribers[topic][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[topic]; ok {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, topic)
			}
		}
	}
}

// Broadcast sends msg to the subscribers of topic. Slow clients lose messages.
func (sm *StreamManager) Broadcast(topic string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[topic] {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscribeEvents handles the GET /events request (SSE).
// The facade query parameter narrows the stream to "vym" or "map".
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	topics := []string{"vym", "map"}
	if f := r.URL.Query().Get("facade"); f != "" {
		topics = []string{f}
	}

	merged := make(chan string, 10)
	for _, topic := range topics {
		ch, cancel := s.Streams.Subscribe(topic)
		defer cancel()
		go func() {
			for msg := range ch {
				select {
				case merged <- msg:
				case <-r.Context().Done():
				}
			}
		}()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Info("SSE: client subscribed", "topics", topics)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected")
			return
		case msg := <-merged:
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
