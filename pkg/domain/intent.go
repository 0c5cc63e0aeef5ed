package domain

import "fmt"

// Intent is the classification of a single message. It is never persisted.
type Intent int

const (
	IntentFAQ Intent = iota
	IntentSuicideRisk
	IntentNormal
)

func (i Intent) String() string {
	switch i {
	case IntentFAQ:
		return "FAQ"
	case IntentSuicideRisk:
		return "SuicideRisk"
	case IntentNormal:
		return "Normal"
	default:
		return "Unknown"
	}
}

// MarshalText renders the intent by name so it reads well in JSON and logs.
func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// ParseIntent is the inverse of String.
func ParseIntent(s string) (Intent, error) {
	for _, i := range []Intent{IntentFAQ, IntentSuicideRisk, IntentNormal} {
		if i.String() == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown intent %q", s)
}

func (i *Intent) UnmarshalText(b []byte) error {
	v, err := ParseIntent(string(b))
	if err != nil {
		return err
	}
	*i = v
	return nil
}
