// Package transition classifies a role-to-role move into a TransitionType.
package transition

import (
	"strings"

	"github.com/okian/pathwise/internal/domain/model"
)

// Categories answers role-category membership questions.
// *compensation.Table satisfies it.
type Categories interface {
	IsIT(role string) bool
	IsNonIT(role string) bool
	IsFresher(role string) bool
}

// Classifier maps (current, target) role pairs to transition categories.
type Classifier struct {
	categories Categories
}

// NewClassifier creates a classifier backed by the given category sets.
func NewClassifier(categories Categories) *Classifier {
	return &Classifier{categories: categories}
}

// Classify returns the transition type for moving from current to target.
// It never fails: empty or unrecognised roles degrade to model.Unknown.
//
// Precedence, first match wins:
//  1. non-IT source, IT target        -> NonItToIt
//  2. IT source, IT target, different -> ItToIt
//  3. non-IT both sides, different    -> NonItToNonIt
//  4. same role                       -> SameDomain
//  5. IT source, non-IT target        -> ItToNonIt
func (c *Classifier) Classify(current, target string) model.TransitionType {
	current = strings.TrimSpace(current)
	target = strings.TrimSpace(target)
	if current == "" || target == "" || c == nil || c.categories == nil {
		return model.Unknown
	}

	srcNonIT := c.categories.IsFresher(current) || c.categories.IsNonIT(current)
	srcIT := c.categories.IsIT(current)
	dstIT := c.categories.IsIT(target)
	dstNonIT := c.categories.IsNonIT(target)
	same := strings.EqualFold(current, target)

	switch {
	case srcNonIT && dstIT:
		return model.NonItToIt
	case srcIT && dstIT && !same:
		return model.ItToIt
	case srcNonIT && dstNonIT && !same:
		return model.NonItToNonIt
	case same:
		return model.SameDomain
	case srcIT && dstNonIT:
		return model.ItToNonIt
	default:
		// Roles outside both sets land here even when they differ.
		return model.Unknown
	}
}
