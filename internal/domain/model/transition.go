// Package model contains domain models passed between layers.
package model

import "strings"

// TransitionType tags the kind of role-to-role move a user is making.
type TransitionType int

// Transition categories. The zero value is Unknown.
const (
	Unknown TransitionType = iota
	NonItToIt
	ItToIt
	NonItToNonIt
	ItToNonIt
	SameDomain
)

var transitionTags = map[TransitionType]string{
	Unknown:      "unknown",
	NonItToIt:    "nonit-to-it",
	ItToIt:       "it-to-it",
	NonItToNonIt: "nonit-to-nonit",
	ItToNonIt:    "it-to-nonit",
	SameDomain:   "same-domain",
}

// TransitionTypes lists every category in declaration order.
func TransitionTypes() []TransitionType {
	return []TransitionType{Unknown, NonItToIt, ItToIt, NonItToNonIt, ItToNonIt, SameDomain}
}

// String returns the wire tag, e.g. "nonit-to-it".
func (t TransitionType) String() string {
	if s, ok := transitionTags[t]; ok {
		return s
	}
	return transitionTags[Unknown]
}

// ParseTransitionType maps a wire tag back to its category.
// Unrecognised tags parse as Unknown.
func ParseTransitionType(s string) TransitionType {
	s = strings.ToLower(strings.TrimSpace(s))
	for t, tag := range transitionTags {
		if tag == s {
			return t
		}
	}
	return Unknown
}

// MarshalText implements encoding.TextMarshaler.
func (t TransitionType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *TransitionType) UnmarshalText(b []byte) error {
	*t = ParseTransitionType(string(b))
	return nil
}

// ProjectionInput is the per-interaction input to the projection engine.
type ProjectionInput struct {
	CurrentRole         string  `json:"current_role"`
	TargetRole          string  `json:"target_role"`
	CurrentCompensation float64 `json:"current_compensation"`
}
