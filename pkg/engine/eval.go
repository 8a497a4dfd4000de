package engine

import (
	"fmt"
	"regexp"

	"github.com/yaklabco/lintbridge/pkg/config"
)

// compiledRule is a rule definition with its pattern compiled once at load.
type compiledRule struct {
	def RuleDef
	re  *regexp.Regexp
}

// match is one raw rule hit produced by the evaluator, before it is
// re-expressed in a generation-specific result shape.
type match struct {
	ruleID  string
	message string
	start   int
	end     int
	fix     *Replacement
}

// compileRules compiles every rule definition in the manifest.
func compileRules(defs []RuleDef) ([]compiledRule, error) {
	rules := make([]compiledRule, 0, len(defs))
	for _, def := range defs {
		re, err := regexp.Compile(def.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %s: compile pattern: %w", def.ID, err)
		}
		rules = append(rules, compiledRule{def: def, re: re})
	}
	return rules, nil
}

// evaluate runs every configured rule over the content and returns raw
// matches in rule order, then text order within a rule.
//
// A per-rule "pattern" option overrides the shipped pattern. Evaluator
// faults (bad option type, invalid override) panic; drivers recover them
// into ExecError, which is how an engine-internal crash reaches callers.
func evaluate(rules []compiledRule, content string, cfg *config.Configuration) []match {
	var matches []match

	for _, rule := range rules {
		if !cfg.RuleEnabled(rule.def.ID) {
			continue
		}

		re := rule.re
		if setting, ok := cfg.Rules[rule.def.ID]; ok {
			if raw, ok := setting.Options["pattern"]; ok {
				pattern, ok := raw.(string)
				if !ok {
					panic(fmt.Sprintf("rule %s: pattern option is %T, want string", rule.def.ID, raw))
				}
				override, err := regexp.Compile(pattern)
				if err != nil {
					panic(fmt.Sprintf("rule %s: invalid pattern option: %v", rule.def.ID, err))
				}
				re = override
			}
		}

		for _, loc := range re.FindAllStringSubmatchIndex(content, -1) {
			m := match{
				ruleID:  rule.def.ID,
				message: rule.def.Message,
				start:   loc[0],
				end:     loc[1],
			}
			if rule.def.Replace != nil {
				expanded := re.ExpandString(nil, *rule.def.Replace, content, loc)
				m.fix = &Replacement{
					Start: loc[0],
					End:   loc[1],
					Text:  string(expanded),
				}
			}
			matches = append(matches, m)
		}
	}

	return matches
}
