/*
Package session runs one conversation turn per request against the context store.

Each turn loads the user's stored flow, lets an intent.Handler answer the message,
and writes the resulting flow back. Turns for the same user are serialized with an
in-process lock and, when configured, a distributed lock so replicas never
interleave a read and a write.
*/
package session
