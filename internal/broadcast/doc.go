// Package broadcast implements the WebSocket fan-out hub using the actor pattern.
//
// Mutation handlers push typed events into the Hub, which serializes them to the
// wire envelope and fans out to every connected client. Uses single goroutine +
// command channel (no mutexes). Per-connection write goroutines handle slow
// clients gracefully.
package broadcast
