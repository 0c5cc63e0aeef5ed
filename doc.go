/*
Package carebot is the backend of a supportive chatbot. It classifies each
user message as a FAQ question, a suicide-risk disclosure or ordinary
conversation, answers from a fixed catalog of replies, and remembers one
conversation flow (Normal, CheckIn or SuicideRisk) per user.

# Architecture

The classifier and flow handlers live in pkg/intent and hold no state beyond a
single turn. pkg/session loads the stored flow for a user, runs one turn under
a per-user lock and saves the result through a ports.ContextStore. Stores are
adapters: in memory, on disk or in Redis. pkg/adapters/http exposes the
session manager as a JWT protected JSON API.

# Usage

	bot := carebot.New()
	ctx := context.Background()

	reply, err := bot.SendMessage(ctx, "user-1", "I feel anxious today")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(reply.Message) // I'm sorry to hear that. Can you tell me more about it?
*/
package carebot
