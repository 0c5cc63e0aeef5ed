package intent

import (
	"github.com/aretw0/carebot/internal/text"
	"github.com/aretw0/carebot/pkg/domain"
)

// Detect classifies a message. Suicide-risk phrases take priority over FAQ
// phrases; anything else, including empty input, is IntentNormal.
func Detect(message string) domain.Intent {
	normalized := text.Normalize(message)

	if text.ContainsAny(normalized, suicideRiskKeywords) {
		return domain.IntentSuicideRisk
	}
	if text.ContainsAny(normalized, faqKeywords) {
		return domain.IntentFAQ
	}
	return domain.IntentNormal
}
