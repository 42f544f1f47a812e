package search

import (
	"strings"

	"github.com/fwojciec/ampdocs"
)

// intentRule matches a query against one intent's keyword list.
// Rules are evaluated in order and the first match wins, so setup
// keywords shadow auth keywords, auth shadows data, and so on.
type intentRule struct {
	intent   ampdocs.Intent
	keywords []string
}

var intentRules = []intentRule{
	{
		intent: ampdocs.IntentSetup,
		keywords: []string{
			"create", "new project", "new app", "getting started",
			"install", "init", "setup", "set up", "scaffold", "quickstart",
		},
	},
	{
		intent: ampdocs.IntentAuth,
		keywords: []string{
			"auth", "login", "signin", "sign in", "signup", "sign up",
			"cognito", "user pool", "mfa", "password",
		},
	},
	{
		intent: ampdocs.IntentData,
		keywords: []string{
			"data", "model", "schema", "graphql", "query", "mutation",
			"database", "dynamodb", "api",
		},
	},
	{
		intent: ampdocs.IntentError,
		keywords: []string{
			"error", "fail", "issue", "problem", "debug", "troubleshoot",
			"not working", "broken", "fix",
		},
	},
	{
		intent: ampdocs.IntentTimestamps,
		keywords: []string{
			"timestamp", "createdat", "updatedat", "datetime", "date field",
		},
	},
	{
		intent: ampdocs.IntentImports,
		keywords: []string{
			"import", "amplify_outputs", "aws-exports", "configure amplify",
		},
	},
}

// ClassifyIntent assigns exactly one intent label to a raw query.
// Matching is case-insensitive substring containment; queries matching
// no rule are IntentGeneral.
func ClassifyIntent(raw string) ampdocs.Intent {
	query := strings.ToLower(raw)
	for _, rule := range intentRules {
		for _, kw := range rule.keywords {
			if strings.Contains(query, kw) {
				return rule.intent
			}
		}
	}
	return ampdocs.IntentGeneral
}

// intentSignals are phrases whose presence in a document's title or
// content marks the document as on-topic for an intent. The scorer
// turns these into the additive intent bonus and the multiplicative
// boosts. All phrases are lower-case.
var intentSignals = map[ampdocs.Intent][]string{
	ampdocs.IntentSetup: {
		"npx create-amplify", "npx create-next-app", "definebackend",
		"amplify/backend.ts", "npx ampx sandbox",
	},
	ampdocs.IntentAuth: {
		"defineauth", "signin", "signup", "cognito", "authenticator",
	},
	ampdocs.IntentData: {
		"definedata", "a.schema", "a.model", "generateclient",
	},
	ampdocs.IntentError: {
		"troubleshoot", "common issues", "error",
	},
	ampdocs.IntentTimestamps: {
		"createdat", "updatedat", "a.datetime",
	},
	ampdocs.IntentImports: {
		"amplify_outputs.json", "amplify.configure", "aws-amplify",
	},
}

// intentHomeCategory maps an intent to the category where its
// documentation naturally lives. Documents in their intent's home
// category receive the category affinity boost.
var intentHomeCategory = map[ampdocs.Intent]string{
	ampdocs.IntentSetup:      ampdocs.CategoryGettingStarted,
	ampdocs.IntentAuth:       ampdocs.CategoryAuthentication,
	ampdocs.IntentData:       ampdocs.CategoryAPIData,
	ampdocs.IntentError:      ampdocs.CategoryTroubleshooting,
	ampdocs.IntentTimestamps: ampdocs.CategoryAPIData,
	ampdocs.IntentImports:    ampdocs.CategoryGettingStarted,
}
