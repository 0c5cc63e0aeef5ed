/*
Package ports defines the driven ports (interfaces) for carebot.

These interfaces decouple the session manager from the storage backend, so the
same request cycle runs against Redis in production and memory in tests.

# Key Interfaces

  - ContextStore: persists the serialized FlowState per user id.
  - DistributedLocker: serializes concurrent turns for one user across replicas.
*/
package ports
