package search

// synonymTopic groups related Amplify terms under a short topic key.
// When any corrected query word equals the key or appears in the term
// list, the whole list joins the expansion set. The slice is ordered so
// expansion output is deterministic.
type synonymTopic struct {
	key   string
	terms []string
}

var synonymTopics = []synonymTopic{
	{
		key:   "auth",
		terms: []string{"auth", "authentication", "cognito", "signin", "signup", "login", "authenticator"},
	},
	{
		key:   "api",
		terms: []string{"api", "graphql", "endpoint", "query", "mutation", "generateclient"},
	},
	{
		key:   "data",
		terms: []string{"data", "model", "schema", "definedata"},
	},
	{
		key:   "storage",
		terms: []string{"storage", "s3", "upload", "download", "file"},
	},
	{
		key:   "db",
		terms: []string{"db", "database", "dynamodb", "table"},
	},
	{
		key:   "deploy",
		terms: []string{"deploy", "deployment", "hosting", "pipeline", "sandbox"},
	},
	{
		key:   "function",
		terms: []string{"function", "lambda", "handler", "serverless"},
	},
}

// triggeredBy reports whether any corrected word activates this topic,
// either by naming the key or by appearing in the term list.
func (t synonymTopic) triggeredBy(corrected []string) bool {
	for _, w := range corrected {
		if w == t.key {
			return true
		}
		for _, term := range t.terms {
			if w == term {
				return true
			}
		}
	}
	return false
}
