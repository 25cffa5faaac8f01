// Package is provides string format rules for schema fields. Each rule
// validates with govalidator and sets the matching OpenAPI format.
package is

import (
	"strings"
	"unicode"

	"github.com/asaskevich/govalidator"

	"github.com/Gobd/apispec/schema"
)

var (
	// Email validates an email address.
	Email = schema.NewStringRule(govalidator.IsEmail, "must be a valid email address", "email")
	// URL validates an absolute or host-relative URL.
	URL = schema.NewStringRule(govalidator.IsURL, "must be a valid URL", "uri")
	// UUID validates a UUID of any version.
	UUID = schema.NewStringRule(govalidator.IsUUID, "must be a valid UUID", "uuid")
	// IPv4 validates a dotted IPv4 address.
	IPv4 = schema.NewStringRule(govalidator.IsIPv4, "must be a valid IPv4 address", "ipv4")
	// IPv6 validates an IPv6 address.
	IPv6 = schema.NewStringRule(govalidator.IsIPv6, "must be a valid IPv6 address", "ipv6")
	// Host validates a DNS name.
	Host = schema.NewStringRule(govalidator.IsDNSName, "must be a valid host name", "hostname")
	// Alpha accepts letters only.
	Alpha = schema.NewStringRule(govalidator.IsAlpha, "must contain English letters only", "")
	// Alphanumeric accepts letters and digits only.
	Alphanumeric = schema.NewStringRule(govalidator.IsAlphanumeric, "must contain English letters and digits only", "")
	// Digit accepts digits only.
	Digit = schema.NewStringRule(govalidator.IsNumeric, "must contain digits only", "")
	// HasLetter requires at least one letter, so a value cannot be all digits
	// or punctuation.
	HasLetter = schema.NewStringRule(func(s string) bool {
		return strings.IndexFunc(s, unicode.IsLetter) >= 0
	}, "must contain at least one alphabetic character", "")
	// NotCreditCard rejects values that pass the card number checksum.
	NotCreditCard = schema.NewStringRule(func(s string) bool {
		return !govalidator.IsCreditCard(s)
	}, "must not be a credit card number", "")
)
