package model

import "sync"

// Settings holds the process-wide mutable configuration: the designated
// channels, the admin identity set, and the order counter. There is no
// persistence; the zero state is reconstructed on every restart.
//
// All methods are safe for concurrent use. The counter step in NextOrderID
// is indivisible, so no two submissions can ever claim the same identifier.
type Settings struct {
	mu           sync.Mutex
	inputChannel string
	storeChannel string
	admins       map[string]struct{}
	orderCount   int64
}

// NewSettings constructs an empty settings store.
func NewSettings() *Settings {
	return &Settings{admins: make(map[string]struct{})}
}

// SetInputChannel designates the channel where raw order submissions are
// accepted.
func (s *Settings) SetInputChannel(channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputChannel = channelID
}

// InputChannel returns the designated input channel, empty when unset.
func (s *Settings) InputChannel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inputChannel
}

// SetStoreChannel designates the channel holding canonical order records.
func (s *Settings) SetStoreChannel(channelID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storeChannel = channelID
}

// StoreChannel returns the designated store channel, empty when unset.
func (s *Settings) StoreChannel() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storeChannel
}

// AddAdmin grants status-update rights to a user. Adding the same identity
// twice is a no-op.
func (s *Settings) AddAdmin(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[userID] = struct{}{}
}

// IsAdmin reports whether a user may change order statuses.
func (s *Settings) IsAdmin(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.admins[userID]
	return ok
}

// NextOrderID increments the order counter and returns the new value. The
// counter only ever increases while the process runs.
func (s *Settings) NextOrderID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderCount++
	return s.orderCount
}

// OrderCount returns the number of orders minted so far.
func (s *Settings) OrderCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderCount
}
