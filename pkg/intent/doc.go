/*
Package intent classifies user messages and chooses a canned reply.

A message is normalized, matched against two keyword lists in fixed priority
order (suicide risk before FAQ) and routed to one of four stateless responders.
Handler wraps that pipeline with the per-conversation FlowState:

	h := intent.NewHandler(intent.WithFlow(stored))
	reply := h.HandleMessage("What are your office hours?")
	save(h.Flow())

The handler never fails. Input it cannot positively classify, including the
empty string, receives the default Normal reply.
*/
package intent
