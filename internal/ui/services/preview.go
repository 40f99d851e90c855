package services

import (
	"fmt"
	"strings"

	"github.com/Cyclone1070/testgen/internal/pipeline"
	"github.com/Cyclone1070/testgen/internal/pullrequest"
)

// CodeMarkdown renders generated code as a fenced block under a title line.
func CodeMarkdown(code *pipeline.CodeResult) string {
	if code == nil {
		return ""
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** · %s · %s\n\n", code.Filename, code.Framework, code.Language)
	sb.WriteString("```" + fenceLanguage(code.Language) + "\n")
	sb.WriteString(strings.TrimRight(code.TestCode, "\n"))
	sb.WriteString("\n```\n")
	return sb.String()
}

// DiffMarkdown renders the pull request change for code as a diff block.
func DiffMarkdown(code *pipeline.CodeResult) string {
	if code == nil {
		return ""
	}
	diff := pullrequest.Preview(code.Filename, "", code.TestCode)
	return "```diff\n" + strings.TrimRight(diff, "\n") + "\n```\n"
}

func fenceLanguage(language string) string {
	switch strings.ToLower(language) {
	case "c#", "csharp":
		return "csharp"
	case "c++", "cpp":
		return "cpp"
	case "unknown":
		return ""
	default:
		return strings.ToLower(language)
	}
}
