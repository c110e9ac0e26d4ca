package domain

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	NomMinLen = 2
	NomMaxLen = 50
)

// telephoneRE matches the Ivorian international format: +225 followed
// by 8 to 10 digits.
var telephoneRE = regexp.MustCompile(`^\+225[0-9]{8,10}$`)

// localTelephoneRE matches a bare local number (8 to 10 digits) which
// gets normalized by prefixing the country code.
var localTelephoneRE = regexp.MustCompile(`^[0-9]{8,10}$`)

// Client is a debtor tracked for collections follow-up. MontantDu is
// held in centimes; it only decreases through payments (clamped at
// zero) and only changes otherwise through an explicit edit. Statut is
// never stored, it is derived from DateEcheance on every read.
type Client struct {
	ID           string
	Nom          string
	Telephone    string
	Email        string
	MontantDu    int64     // centimes FCFA, >= 0
	DateEcheance time.Time // date only, UTC
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeTelephone validates a phone number and returns its
// canonical +225 form. Bare 8-10 digit local numbers are accepted and
// prefixed; spaces, dots and dashes are stripped first.
func NormalizeTelephone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, sep := range []string{" ", ".", "-"} {
		s = strings.ReplaceAll(s, sep, "")
	}
	if telephoneRE.MatchString(s) {
		return s, true
	}
	if localTelephoneRE.MatchString(s) {
		return "+225" + s, true
	}
	return "", false
}

// ValidNom reports whether a client name is within the accepted length.
func ValidNom(nom string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(nom))
	return n >= NomMinLen && n <= NomMaxLen
}

// ValidEmail reports whether s is a syntactically valid address.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}
