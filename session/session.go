// Package session owns the authenticated state for each role: the bearer
// token, the identity derived from it, and their durable copies. Every token
// mutation is pushed to subscribers so the API client, realtime channel and
// reconciler can follow the credential.
package session

import "sync"

// Subscriber receives the new token after every session mutation. An empty
// token means the session was cleared.
type Subscriber func(token string)

// notifier is the shared subscription mechanism for both stores.
type notifier struct {
	mu   sync.Mutex
	subs []Subscriber
}

// Subscribe registers fn to be called on every token change.
func (n *notifier) Subscribe(fn Subscriber) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

// notify fans the new token out to all subscribers. Called after the store's
// state has been fully swapped, never while holding the store lock.
func (n *notifier) notify(token string) {
	n.mu.Lock()
	subs := make([]Subscriber, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()
	for _, fn := range subs {
		fn(token)
	}
}
