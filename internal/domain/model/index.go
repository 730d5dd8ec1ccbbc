package model

import "sync"

// OrderIndex maps order identifiers to the store-channel message backing
// each canonical record. It is an in-process optimization only: the store
// channel remains the authoritative surface, and lookups through the index
// never reach past the resolver's bounded history window.
type OrderIndex struct {
	mu   sync.Mutex
	byID map[int64]string
}

// NewOrderIndex constructs an empty index.
func NewOrderIndex() *OrderIndex {
	return &OrderIndex{byID: make(map[int64]string)}
}

// Record remembers the message backing an order.
func (i *OrderIndex) Record(orderID int64, messageID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.byID[orderID] = messageID
}

// MessageID returns the backing message for an order, if known.
func (i *OrderIndex) MessageID(orderID int64) (string, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	messageID, ok := i.byID[orderID]
	return messageID, ok
}
