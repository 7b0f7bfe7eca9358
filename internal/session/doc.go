// Package session keeps one wizard per visitor in memory. Sessions are
// identified by random UUIDs, expire after an idle TTL and are swept on a cron
// schedule, which closes their wizards and cancels pending timers. Nothing is
// persisted: a restart forgets every visitor.
package session
