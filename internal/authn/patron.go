// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package authn

import (
	"crypto/rand"
	"fmt"
	"regexp"
)

// cardNumberPattern matches spec.md §6: four alphanumerics, a hyphen,
// four alphanumerics, a hyphen, two alphanumerics.
var cardNumberPattern = regexp.MustCompile(`^[A-Za-z0-9]{4}-[A-Za-z0-9]{4}-[A-Za-z0-9]{2}$`)

// ValidCardNumber reports whether s matches the canonical card format.
func ValidCardNumber(s string) bool {
	return cardNumberPattern.MatchString(s)
}

// patron is a minimal seed record materialized on human issuance and
// looked up on agent issuance.
type patron struct {
	id         string
	username   string
	cardNumber string
}

const cardAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func generateCardNumber() string {
	buf := make([]byte, 10)
	_, _ = rand.Read(buf)
	out := make([]byte, 10)
	for i, b := range buf {
		out[i] = cardAlphabet[int(b)%len(cardAlphabet)]
	}
	return fmt.Sprintf("%s-%s-%s", out[0:4], out[4:8], out[8:10])
}
