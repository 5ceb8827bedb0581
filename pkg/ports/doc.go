/*
Package ports defines the driven ports (interfaces) for the Parley engine.

These interfaces decouple session hosting from concrete backends, so the same
engine can keep live sessions in process memory or share them between replicas.

# Key Interfaces

  - SessionStore: keeps snapshots of live sessions, keyed by session ID.
  - DistributedLocker: provides distributed locking for concurrent access to one session.

Stores never hold finished sessions: hosts delete a session as soon as it terminates.
*/
package ports
