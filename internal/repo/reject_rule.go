package repo

import (
	"context"
	"sort"

	"github.com/samber/lo"

	"exusiai.dev/gazeseq/internal/model"
)

type RejectRule struct {
	profile *Profile
}

func NewRejectRule(profile *Profile) *RejectRule {
	return &RejectRule{profile: profile}
}

func (r *RejectRule) GetAllActiveRejectRules(ctx context.Context) ([]*model.RejectRule, error) {
	rules := lo.Filter(r.profile.profile.RejectRules, func(rule *model.RejectRule, _ int) bool {
		return rule.IsActive()
	})
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].RuleID < rules[j].RuleID
	})
	return rules, nil
}
