/*
Package session hosts live menu sessions by ID.

The Manager serializes access to each session with reference-counted local
mutexes and, when configured, a distributed lock, so replicas sharing a Redis
store never interleave two turns of the same session. Sessions are kept only
while they are live: Update drops them from the store once they terminate and
Reap expires idle ones.
*/
package session
