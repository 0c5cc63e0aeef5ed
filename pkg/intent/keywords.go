package intent

// Phrases are matched as substrings of the normalized message.
var (
	suicideRiskKeywords = []string{
		"suicide",
		"hurt myself",
		"end my life",
		"kill myself",
		"die",
		"hang my self",
	}

	faqKeywords = []string{
		"cancel my subscription",
		"my subscription",
		"cancel subscription",
		"office hours",
		"refund",
		"billing issue",
	}
)

// FAQ sub-topics with a dedicated reply, matched against the raw message.
// Everything else gets the FAQ default.
const (
	phraseCancelSubscription = "cancel my subscription"
	phraseOfficeHours        = "office hours"
)
