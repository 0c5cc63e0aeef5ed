/*
Package domain contains the core types shared by every carebot component.

It is kept pure and free of I/O so that the classifier, the persistence adapters
and the HTTP layer can all depend on it without depending on each other.

# Key Entities

  - FlowState: the conversation-level mode persisted per user (Normal, CheckIn, SuicideRisk).
  - Intent: the coarse category assigned to a single inbound message (FAQ, SuicideRisk, Normal).
  - LifecycleHooks: callbacks fired by the intent handler for auditing and metrics.
*/
package domain
