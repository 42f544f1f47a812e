package mcp

import (
	"fmt"
	"strings"

	"github.com/fwojciec/ampdocs"
)

// DefaultTemplate is the project template used when none is requested.
const DefaultTemplate = "nextjs"

// createTemplates lists the scaffolding templates create-amplify ships.
var createTemplates = []string{"nextjs", "react", "vue", "vanilla"}

// CreateCommand returns the scaffolding command for a project template.
// An empty template defaults to nextjs; an unknown one is EINVALID.
func CreateCommand(template string) (string, error) {
	if template == "" {
		template = DefaultTemplate
	}
	for _, t := range createTemplates {
		if t == template {
			return fmt.Sprintf("npx create-amplify@latest --template %s", template), nil
		}
	}
	return "", ampdocs.Errorf(ampdocs.EINVALID, "unknown template %q, valid templates: %s",
		template, strings.Join(createTemplates, ", "))
}

// createGuidance explains why the template flag matters.
func createGuidance(command string) string {
	return fmt.Sprintf(`# Creating an Amplify Gen 2 Application

Use the project template; do not assemble the stack by hand:

`+"```bash\n%s\n```"+`

Why the template matters:

1. Without the --template flag the scaffold is incomplete.
2. Installing framework packages manually after scaffolding causes
   version conflicts.
3. The template pins compatible versions of @aws-amplify/backend and
   the frontend framework.

After scaffolding, run `+"`npx ampx sandbox`"+` to deploy a
per-developer cloud sandbox backend.`, command)
}
