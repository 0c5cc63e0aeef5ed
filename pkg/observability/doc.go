/*
Package observability provides metrics and audit logging for carebot.

Metrics are kept in a dedicated Prometheus registry exposed at /metrics. Hooks
adapts both metrics and structured logs to domain.LifecycleHooks, so the intent
handler reports every classification and flow change without knowing about
either.
*/
package observability
