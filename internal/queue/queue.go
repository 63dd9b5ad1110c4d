package queue

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/unclebandit/cms-backend/internal/model"
	"github.com/unclebandit/cms-backend/internal/repository"
)

// TopicCustomerEvents carries customer lifecycle notifications.
const TopicCustomerEvents = "customer_events"

// Lifecycle event types published by the customer service.
const (
	EventCustomerCreated = "customer.created"
	EventCustomerUpdated = "customer.updated"
	EventCustomerDeleted = "customer.deleted"
)

// CustomerEvent is the payload published for a customer lifecycle change.
type CustomerEvent struct {
	Type       string `json:"type"`
	CustomerID int    `json:"customer_id"`
}

// Queue interface
type Queue interface {
	Publish(topic string, payload any) error
	Subscribe(topic string, handler func(payload any) error) error
}

// InMemoryQueue is an in-process queue with retry, used when no broker is
// configured.
type InMemoryQueue struct {
	mu       sync.Mutex
	handlers map[string][]func(payload any) error
}

// Delivery retry policy for the in-process queue.
const (
	maxAttempts    = 4
	initialBackoff = 500 * time.Millisecond
)

// NewInMemoryQueue creates a new queue
func NewInMemoryQueue() *InMemoryQueue {
	return &InMemoryQueue{
		handlers: make(map[string][]func(payload any) error),
	}
}

// Publish fans the payload out to every subscriber of the topic, each on its
// own goroutine.
func (q *InMemoryQueue) Publish(topic string, payload any) error {
	q.mu.Lock()
	handlers := append([]func(payload any) error(nil), q.handlers[topic]...)
	q.mu.Unlock()

	if len(handlers) == 0 {
		return fmt.Errorf("no subscribers for topic %s", topic)
	}

	for _, handler := range handlers {
		go q.deliver(topic, handler, payload)
	}
	return nil
}

// deliver runs one handler to completion, retrying with doubling backoff.
// After maxAttempts the message is dropped; there is no dead-letter store.
func (q *InMemoryQueue) deliver(topic string, handler func(payload any) error, payload any) {
	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		err := handler(payload)
		if err == nil {
			return
		}
		if attempt >= maxAttempts {
			log.Printf("dropping %s message after %d attempts: %v", topic, attempt, err)
			return
		}
		log.Printf("%s handler failed (attempt %d of %d): %v", topic, attempt, maxAttempts, err)
		time.Sleep(backoff)
		backoff *= 2
	}
}

// Subscribe adds a handler for a topic
func (q *InMemoryQueue) Subscribe(topic string, handler func(payload any) error) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.handlers[topic] = append(q.handlers[topic], handler)
	return nil
}

// StartCustomerEventSubscriber persists customer lifecycle events as audit
// rows. Used with the in-memory queue when no dedicated worker is running.
func StartCustomerEventSubscriber(q Queue, events repository.EventRepositoryInterface) {
	go func() {
		err := q.Subscribe(TopicCustomerEvents, func(payload any) error {
			evt, ok := payload.(CustomerEvent)
			if !ok {
				log.Printf("invalid customer event payload type %T", payload)
				return nil // no retry, the payload will never become valid
			}

			record := &model.CustomerEvent{
				CustomerID: evt.CustomerID,
				EventType:  evt.Type,
			}
			if err := events.Create(record); err != nil {
				log.Println("failed to persist customer event:", err)
				return err // triggers retry in queue
			}
			return nil
		})
		if err != nil {
			log.Println("failed to start subscriber for customer_events:", err)
		}
	}()
}
