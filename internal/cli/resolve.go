package cli

import (
	"fmt"
	"regexp"
	"strings"
)

const maxResolveDepth = 16

var (
	resolveTokens = regexp.MustCompile(`[+-]?[^+-]+`)
	literalTerm   = regexp.MustCompile(`^(\d*[dD]\d+|\d+)$`)
	namePattern   = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// ResolveExpression expands defined names inside a dice expression. A
// negative reference flips the sign of every term in its expansion, so
// "-dmg" with dmg = "2D6+1" becomes "-2D6-1". Literal terms like "2D6"
// are never treated as names.
func ResolveExpression(defs map[string]string, expression string) (string, error) {
	return resolve(defs, expression, 0)
}

func resolve(defs map[string]string, expression string, depth int) (string, error) {
	if depth > maxResolveDepth {
		return "", fmt.Errorf("definition cycle detected in %q", expression)
	}

	compact := strings.ReplaceAll(expression, " ", "")
	tokens := resolveTokens.FindAllString(compact, -1)

	var sb strings.Builder
	for i, token := range tokens {
		negative := strings.HasPrefix(token, "-")
		body := strings.TrimPrefix(strings.TrimPrefix(token, "-"), "+")

		if literalTerm.MatchString(body) || !namePattern.MatchString(body) {
			if i > 0 && !strings.HasPrefix(token, "+") && !negative {
				sb.WriteString("+")
			}
			sb.WriteString(token)
			continue
		}

		def, ok := defs[body]
		if !ok {
			return "", fmt.Errorf("undefined name %q", body)
		}

		expanded, err := resolve(defs, def, depth+1)
		if err != nil {
			return "", err
		}
		if negative {
			expanded = negate(expanded)
		}
		if sb.Len() > 0 && !strings.HasPrefix(expanded, "-") {
			sb.WriteString("+")
		}
		sb.WriteString(expanded)
	}

	return sb.String(), nil
}

// negate flips the sign of every term in an already-expanded expression.
func negate(expression string) string {
	tokens := resolveTokens.FindAllString(expression, -1)
	var sb strings.Builder
	for _, token := range tokens {
		if strings.HasPrefix(token, "-") {
			body := strings.TrimPrefix(token, "-")
			if sb.Len() > 0 {
				sb.WriteString("+")
			}
			sb.WriteString(body)
			continue
		}
		sb.WriteString("-")
		sb.WriteString(strings.TrimPrefix(token, "+"))
	}
	return sb.String()
}
