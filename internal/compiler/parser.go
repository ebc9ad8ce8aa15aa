package compiler

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/aretw0/pips/pkg/dist"
)

// ParseError describes a rejected dice expression.
type ParseError struct {
	Expression string
	Term       string
	Reason     string
}

func (e *ParseError) Error() string {
	if e.Term != "" {
		return fmt.Sprintf("invalid dice expression %q: term %q: %s", e.Expression, e.Term, e.Reason)
	}
	return fmt.Sprintf("invalid dice expression %q: %s", e.Expression, e.Reason)
}

var (
	// tokenPattern splits the expression into signed terms. The concatenation
	// check in Parse rejects leftovers like doubled operators.
	tokenPattern = regexp.MustCompile(`[+-]?[^+-]+`)
	dicePattern  = regexp.MustCompile(`^(\d*)[dD](\d+)$`)
	constPattern = regexp.MustCompile(`^\d+$`)
)

// Parser converts roll notation ("2D6+1", "d20-4") into a distribution.
// Stateless and safe for concurrent use.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse evaluates the expression left to right: each term is either a dice
// pool `[count]D<faces>` or an integer constant, joined by + or -. A dice
// pool is `count` independent uniform dice convolved together, not a single
// flat range. The fold starts from the certain distribution {0: 1}.
func (p *Parser) Parse(expression string) (*dist.Distribution, error) {
	compact := strings.ReplaceAll(expression, " ", "")
	if compact == "" {
		return nil, &ParseError{Expression: expression, Reason: "empty expression"}
	}

	tokens := tokenPattern.FindAllString(compact, -1)
	if strings.Join(tokens, "") != compact {
		return nil, &ParseError{Expression: expression, Reason: "malformed operator sequence"}
	}

	result := dist.FromValue(0)
	for _, token := range tokens {
		negative := strings.HasPrefix(token, "-")
		body := strings.TrimPrefix(strings.TrimPrefix(token, "-"), "+")
		if body == "" {
			return nil, &ParseError{Expression: expression, Term: token, Reason: "missing term body"}
		}

		term, err := p.parseTerm(expression, body)
		if err != nil {
			return nil, err
		}

		if negative {
			result = result.Sub(term)
		} else {
			result = result.Add(term)
		}
	}

	return result, nil
}

// parseTerm evaluates a single unsigned term to its distribution.
func (p *Parser) parseTerm(expression, body string) (*dist.Distribution, error) {
	if m := dicePattern.FindStringSubmatch(body); m != nil {
		count := 1
		if m[1] != "" {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				return nil, &ParseError{Expression: expression, Term: body, Reason: "dice count out of range"}
			}
			count = n
		}
		faces, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, &ParseError{Expression: expression, Term: body, Reason: "face count out of range"}
		}

		if count <= 0 {
			return nil, &ParseError{Expression: expression, Term: body, Reason: "dice count must be positive"}
		}
		if faces <= 0 {
			return nil, &ParseError{Expression: expression, Term: body, Reason: "face count must be positive"}
		}

		pool, err := dist.Pool(count, faces)
		if err != nil {
			return nil, err
		}
		return pool, nil
	}

	if constPattern.MatchString(body) {
		value, err := strconv.Atoi(body)
		if err != nil {
			return nil, &ParseError{Expression: expression, Term: body, Reason: "constant out of range"}
		}
		return dist.FromValue(float64(value)), nil
	}

	return nil, &ParseError{Expression: expression, Term: body, Reason: "expected [count]D<faces> or integer"}
}
