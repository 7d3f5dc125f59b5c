package workflow

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/aretw0/tper/pkg/domain"
)

var (
	numberedStep = regexp.MustCompile(`^\s*\d+[.)]\s+(.+)$`)
	bulletStep   = regexp.MustCompile(`^\s*[-*]\s+(.+)$`)
)

// parsePlan extracts at most max steps from a plan.
// Numbered lines win over bullets; a plan with neither yields no steps.
func parsePlan(plan string, max int) []string {
	lines := strings.Split(plan, "\n")

	steps := matchLines(lines, numberedStep)
	if len(steps) == 0 {
		steps = matchLines(lines, bulletStep)
	}
	if max > 0 && len(steps) > max {
		steps = steps[:max]
	}
	return steps
}

func matchLines(lines []string, re *regexp.Regexp) []string {
	var out []string
	for _, line := range lines {
		if m := re.FindStringSubmatch(line); m != nil {
			if step := strings.TrimSpace(m[1]); step != "" {
				out = append(out, step)
			}
		}
	}
	return out
}

// parseVerdict reads the reviewer's JSON verdict.
// Replies without valid JSON fall back to looking for an explicit approval.
func parseVerdict(review string) domain.Verdict {
	start := strings.Index(review, "{")
	end := strings.LastIndex(review, "}")
	if start >= 0 && end > start {
		var v domain.Verdict
		if err := json.Unmarshal([]byte(review[start:end+1]), &v); err == nil {
			return v
		}
	}

	upper := strings.ToUpper(review)
	approved := strings.Contains(upper, "APPROVED") &&
		!strings.Contains(upper, "NOT APPROVED") &&
		!strings.Contains(upper, "UNAPPROVED")
	return domain.Verdict{
		Approved: approved,
		Feedback: strings.TrimSpace(review),
	}
}
