// Package certificate renders an individual's proof-gate verification
// record as a human-readable or machine-readable certificate. It has
// no bearing on selection or reproduction — it exists purely to give a
// verified individual something a caller can print, log, or hand to an
// auditor.
package certificate

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/metaleague/evolution/agent"
)

const (
	unavailable = "No proof certificate available"
	ruleWidth   = 48
)

// Render returns a plain-text certificate block for ind. Individuals
// with no attached verification record, or whose record is not
// Verified, render as unavailable.
func Render(ind *agent.Individual) string {
	if ind == nil || ind.Verification == nil || !ind.Verification.Verified {
		return unavailable
	}
	v := ind.Verification

	var b strings.Builder
	rule := strings.Repeat("-", ruleWidth)
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "PROOF CERTIFICATE")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "id:         %s\n", ind.ID)
	fmt.Fprintf(&b, "kind:       %s\n", ind.Kind)
	fmt.Fprintf(&b, "generation: %d\n", ind.Generation)
	fmt.Fprintf(&b, "verified:   %v\n", v.Verified)
	fmt.Fprintf(&b, "at:         %s\n", v.Timestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "summary:    %s\n", v.SpecSummary)
	fmt.Fprintln(&b, "checks:")
	for _, check := range strings.Split(v.ProofBlob, "; ") {
		if check == "" {
			continue
		}
		fmt.Fprintf(&b, "  - %s\n", check)
	}
	fmt.Fprintln(&b, "lineage:")
	for _, tag := range ind.Lineage {
		fmt.Fprintf(&b, "  - %s\n", tag)
	}
	fmt.Fprintln(&b, rule)
	return b.String()
}

// document is the RenderJSON wire shape. Field order matches Render's
// block order.
type document struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Generation int       `json:"generation"`
	Verified   bool      `json:"verified"`
	At         time.Time `json:"at"`
	Summary    string    `json:"summary"`
	Checks     []string  `json:"checks"`
	Lineage    []string  `json:"lineage"`
}

// RenderJSON returns the same certificate contents as Render, marshalled
// as JSON. Unverified individuals marshal to {"available":false}.
func RenderJSON(ind *agent.Individual) ([]byte, error) {
	if ind == nil || ind.Verification == nil || !ind.Verification.Verified {
		return json.Marshal(struct {
			Available bool `json:"available"`
		}{Available: false})
	}
	v := ind.Verification

	var checks []string
	for _, check := range strings.Split(v.ProofBlob, "; ") {
		if check != "" {
			checks = append(checks, check)
		}
	}

	doc := document{
		ID:         ind.ID,
		Kind:       string(ind.Kind),
		Generation: ind.Generation,
		Verified:   v.Verified,
		At:         v.Timestamp.UTC(),
		Summary:    v.SpecSummary,
		Checks:     checks,
		Lineage:    append([]string{}, ind.Lineage...),
	}
	return json.Marshal(doc)
}
