package search

import (
	"regexp"
	"strings"

	"github.com/fwojciec/ampdocs"
)

// antiPatternRule pairs a detection regex with the finding it reports.
// The rules cover Gen 1 habits and template-cloning workflows that no
// longer apply to Amplify Gen 2.
type antiPatternRule struct {
	re      *regexp.Regexp
	finding ampdocs.AntiPattern
}

var antiPatternRules = []antiPatternRule{
	{
		re: regexp.MustCompile(`ownerfield|owner\s+field`),
		finding: ampdocs.AntiPattern{
			Issue:      "ownerField() is Gen 1 authorization syntax",
			Correction: "Use allow.owner() in your model's authorization rules",
			Severity:   ampdocs.SeverityHigh,
		},
	},
	{
		re: regexp.MustCompile(`amplify\s+(push|pull|init|add)\b`),
		finding: ampdocs.AntiPattern{
			Issue:      "the amplify CLI workflow is Gen 1",
			Correction: "Gen 2 uses npx ampx sandbox for development and npx ampx pipeline-deploy for CI",
			Severity:   ampdocs.SeverityHigh,
		},
	},
	{
		re: regexp.MustCompile(`schema\.graphql`),
		finding: ampdocs.AntiPattern{
			Issue:      "Gen 2 does not use schema.graphql",
			Correction: "Define models in TypeScript with a.schema() in amplify/data/resource.ts",
			Severity:   ampdocs.SeverityHigh,
		},
	},
	{
		re: regexp.MustCompile(`aws-exports`),
		finding: ampdocs.AntiPattern{
			Issue:      "aws-exports.js is Gen 1 configuration",
			Correction: "Gen 2 generates amplify_outputs.json; pass it to Amplify.configure",
			Severity:   ampdocs.SeverityMedium,
		},
	},
	{
		re: regexp.MustCompile(`(clone|fork)[^.]*(template|starter|repo)`),
		finding: ampdocs.AntiPattern{
			Issue:      "cloning starter templates leads to stale dependency versions",
			Correction: "Create new apps with npx create-amplify@latest --template nextjs",
			Severity:   ampdocs.SeverityMedium,
		},
	},
}

// antiPatternExpansions adds correction-side terms to the expansion set
// when the matching anti-pattern fires, so the search surfaces the
// documentation for the right workflow, keyed by finding issue.
var antiPatternExpansions = map[string][]string{
	"ownerField() is Gen 1 authorization syntax":                   {"allow.owner"},
	"the amplify CLI workflow is Gen 1":                            {"npx ampx"},
	"Gen 2 does not use schema.graphql":                            {"a.schema"},
	"aws-exports.js is Gen 1 configuration":                        {"amplify_outputs.json"},
	"cloning starter templates leads to stale dependency versions": {"npx create-amplify"},
}

// DetectAntiPatterns scans a raw query for known misconceptions and
// returns a finding per matched rule. Detection is an independent pass
// over the query; it does not depend on the classified intent.
func DetectAntiPatterns(raw string) []ampdocs.AntiPattern {
	query := strings.ToLower(raw)

	var findings []ampdocs.AntiPattern
	for _, rule := range antiPatternRules {
		if rule.re.MatchString(query) {
			findings = append(findings, rule.finding)
		}
	}
	return findings
}
