package phonenumber

import (
	"strings"

	"github.com/fieldmaker/verify-backend/internal/apperr"
	"github.com/nyaruka/phonenumbers"
)

// Turkish mobile numbers only. The SMS provider wants the domestic
// 5XXXXXXXXX form on the wire, everything else in the app uses the
// canonical 905XXXXXXXXX form.

type PhoneNumber struct {
	internal *phonenumbers.PhoneNumber
}

// Accepted input shapes for the same subscriber number:
//
//	+90 5XX XXX XXXX
//	90 5XX XXX XXXX
//	0 5XX XXX XXXX
//	5XX XXX XXXX
func Parse(raw string) (*PhoneNumber, error) {
	e164, ok := toE164Candidate(raw)
	if !ok {
		return nil, apperr.ErrInvalidPhoneNumber
	}

	num, err := phonenumbers.Parse(e164, phonenumbers.UNKNOWN_REGION)
	if err != nil {
		return nil, apperr.ErrInvalidPhoneNumber
	}

	p := &PhoneNumber{internal: num}
	if !p.isValidTurkishMobile() {
		return nil, apperr.ErrInvalidPhoneNumber
	}
	return p, nil
}

func MustParse(raw string) *PhoneNumber {
	num, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return num
}

func toE164Candidate(raw string) (string, bool) {
	cleaned := clean(raw)

	switch {
	case strings.HasPrefix(cleaned, "90") && len(cleaned) == 12:
		return "+" + cleaned, true
	case strings.HasPrefix(cleaned, "0") && len(cleaned) == 11:
		return "+9" + cleaned, true
	case strings.HasPrefix(cleaned, "5") && len(cleaned) == 10:
		return "+90" + cleaned, true
	}
	return "", false
}

func clean(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	cleaned = strings.TrimPrefix(cleaned, "+")

	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return cleaned
}

func (p *PhoneNumber) isValidTurkishMobile() bool {
	if p == nil {
		return false
	}
	if p.internal.GetCountryCode() != 90 {
		return false
	}
	if !phonenumbers.IsPossibleNumber(p.internal) {
		return false
	}

	nsn := phonenumbers.GetNationalSignificantNumber(p.internal)
	if len(nsn) != 10 || nsn[0] != '5' {
		return false
	}
	// second digit is the mobile operator prefix
	if nsn[1] < '0' || nsn[1] > '6' {
		return false
	}
	return true
}

// Canonical returns the 905XXXXXXXXX form. This is the one representation
// every input shape resolves to, and the one we store and log.
func (p *PhoneNumber) Canonical() string {
	return "90" + p.Domestic()
}

// Domestic returns the 5XXXXXXXXX form the provider send endpoints expect.
func (p *PhoneNumber) Domestic() string {
	return phonenumbers.GetNationalSignificantNumber(p.internal)
}

func (p *PhoneNumber) ToE164() string {
	return phonenumbers.Format(p.internal, phonenumbers.E164)
}

func (p *PhoneNumber) FormatToInternational() string {
	return phonenumbers.Format(p.internal, phonenumbers.INTERNATIONAL)
}

func (p *PhoneNumber) String() string {
	return p.Canonical()
}
