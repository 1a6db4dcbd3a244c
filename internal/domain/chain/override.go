package chain

import "github.com/hrworks/appraisal-engine/internal/domain/entity"

// SelectOverride picks the applicable override from a pre-fetched candidate
// list: among all active rules matching the scope, the one with the lowest
// numeric priority wins. Returns nil when no rule matches.
func SelectOverride(rules []entity.Override, scope entity.OverrideScope) *entity.Override {
	var selected *entity.Override
	for i := range rules {
		rule := &rules[i]
		if !rule.Matches(scope) {
			continue
		}
		if selected == nil || rule.Priority < selected.Priority {
			selected = rule
		}
	}
	return selected
}
