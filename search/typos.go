package search

// typoCorrections maps misspellings seen in real queries to their
// canonical form. Lookup is exact per word; unknown words pass through.
var typoCorrections = map[string]string{
	"authentcation":    "authentication",
	"authentification": "authentication",
	"authenication":    "authentication",
	"athentication":    "authentication",
	"singin":           "signin",
	"singup":           "signup",
	"cogito":           "cognito",
	"congito":          "cognito",
	"datbase":          "database",
	"databse":          "database",
	"stroage":          "storage",
	"storge":           "storage",
	"deploment":        "deployment",
	"deplyoment":       "deployment",
	"grapql":           "graphql",
	"graphl":           "graphql",
	"lamda":            "lambda",
	"amplfy":           "amplify",
	"ampify":           "amplify",
	"shcema":           "schema",
	"schma":            "schema",
}

// CorrectTypo returns the canonical spelling of a single lower-cased
// word, or the word unchanged when it is not a known misspelling.
func CorrectTypo(word string) string {
	if corrected, ok := typoCorrections[word]; ok {
		return corrected
	}
	return word
}
