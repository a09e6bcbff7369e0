// Package events provides the event types and in-memory dispatch used to
// observe a study session without coupling the session loop to its
// observers.
//
// A session publishes a SessionEvent through an EventEmitter at each step,
// and InMemoryEventEmitter passes it on to every registered EventHandler.
package events
