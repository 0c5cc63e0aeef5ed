package intent

import (
	"strings"

	"github.com/aretw0/carebot/internal/text"
	"github.com/aretw0/carebot/pkg/catalog"
	"github.com/aretw0/carebot/pkg/domain"
)

// responder produces a reply for one intent. Responders hold no state.
type responder func(c *catalog.Catalog, message string) string

var responders = map[domain.Intent]responder{
	domain.IntentFAQ:         respondFAQ,
	domain.IntentSuicideRisk: respondSuicideRisk,
	domain.IntentNormal:      respondNormal,
}

func respondCheckIn(c *catalog.Catalog) string {
	return c.CheckIn
}

// respondFAQ only distinguishes two sub-topics. Refund, billing and generic
// subscription questions fall through to the FAQ default. Sub-topics match the
// raw message case-sensitively, so "Office Hours" gets the default reply.
func respondFAQ(c *catalog.Catalog, message string) string {
	switch {
	case strings.Contains(message, phraseCancelSubscription):
		return c.FAQ.CancelSubscription
	case strings.Contains(message, phraseOfficeHours):
		return c.FAQ.OfficeHours
	default:
		return c.FAQ.Default
	}
}

func respondSuicideRisk(c *catalog.Catalog, _ string) string {
	return c.SuicideRisk
}

// moodReplies is ordered: the first word present wins.
var moodReplies = []struct {
	word  string
	reply func(*catalog.Catalog) string
}{
	{"anxious", func(c *catalog.Catalog) string { return c.Normal.Anxious }},
	{"stressed", func(c *catalog.Catalog) string { return c.Normal.Stress }},
	{"good", func(c *catalog.Catalog) string { return c.Normal.Good }},
	{"bad", func(c *catalog.Catalog) string { return c.Normal.Bad }},
	{"overwhelmed", func(c *catalog.Catalog) string { return c.Normal.Overwhelmed }},
}

func respondNormal(c *catalog.Catalog, message string) string {
	words := text.Words(message)
	for _, m := range moodReplies {
		if text.HasWord(words, m.word) {
			return m.reply(c)
		}
	}
	return c.Normal.Default
}
