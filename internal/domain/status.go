package domain

import "strings"

// UrgencyTier classifies how soon an item will be exhausted. The zero value
// is TierUnknown (no reliable consumption signal). Tiers are ordered so a
// higher value means more urgent.
type UrgencyTier int

const (
	TierUnknown UrgencyTier = iota
	TierNormal
	TierHigh
	TierCritical
)

var tierLabels = map[UrgencyTier]string{
	TierUnknown:  "Unknown",
	TierNormal:   "Normal",
	TierHigh:     "High",
	TierCritical: "Critical",
}

var tierCodes = map[string]UrgencyTier{
	"unknown":  TierUnknown,
	"normal":   TierNormal,
	"high":     TierHigh,
	"critical": TierCritical,
}

func (t UrgencyTier) String() string {
	if label, ok := tierLabels[t]; ok {
		return label
	}

	return "Unknown"
}

// MarshalJSON renders the tier as its label so API payloads carry
// "Critical"/"High"/"Normal"/"Unknown" instead of numeric codes.
func (t UrgencyTier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// ParseTier returns the tier for a given label (case-insensitive).
func ParseTier(label string) (UrgencyTier, bool) {
	tier, ok := tierCodes[strings.ToLower(label)]

	return tier, ok
}

// Priority returns the request priority matching this tier. TierUnknown has
// no matching priority.
func (t UrgencyTier) Priority() (Priority, bool) {
	switch t {
	case TierCritical:
		return PriorityCritical, true
	case TierHigh:
		return PriorityHigh, true
	case TierNormal:
		return PriorityNormal, true
	}

	return "", false
}

// Priority of a restock request, assigned at creation and immutable after.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityNormal   Priority = "Normal"
)

// ParsePriority returns the priority for a given label (case-insensitive).
func ParsePriority(label string) (Priority, bool) {
	switch strings.ToLower(label) {
	case "critical":
		return PriorityCritical, true
	case "high":
		return PriorityHigh, true
	case "normal":
		return PriorityNormal, true
	}

	return "", false
}

// RequestStatus is the lifecycle state of a restock request.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusApproved  RequestStatus = "approved"
	StatusDeclined  RequestStatus = "declined"
	StatusFulfilled RequestStatus = "fulfilled"
)

// ParseRequestStatus returns the status for a given label (case-insensitive).
func ParseRequestStatus(label string) (RequestStatus, bool) {
	switch strings.ToLower(label) {
	case "pending":
		return StatusPending, true
	case "approved":
		return StatusApproved, true
	case "declined":
		return StatusDeclined, true
	case "fulfilled":
		return StatusFulfilled, true
	}

	return "", false
}

// Open reports whether a request in this status still blocks new requests
// for the same item (pending, or approved but not yet fulfilled).
func (s RequestStatus) Open() bool {
	return s == StatusPending || s == StatusApproved
}

// Terminal reports whether no further transition is permitted.
func (s RequestStatus) Terminal() bool {
	return s == StatusDeclined || s == StatusFulfilled
}
