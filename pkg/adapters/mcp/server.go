// Package mcp exposes the expression engine to AI agents over the
// Model Context Protocol.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/aretw0/pips/pkg/dist"
	"github.com/aretw0/pips/pkg/ports"
)

// Evaluator turns a dice expression into its distribution.
type Evaluator interface {
	Parse(expression string) (*dist.Distribution, error)
}

// EvalResponse aligns with the HTTP adapter's eval payload.
type EvalResponse struct {
	Expression    string      `json:"expression" jsonschema_description:"The evaluated expression"`
	Distribution  [][]float64 `json:"distribution" jsonschema_description:"Sorted [outcome, weight] pairs"`
	ExpectedValue float64     `json:"expectedValue" jsonschema_description:"Weighted mean outcome"`
	StdDev        float64     `json:"stdDev" jsonschema_description:"Population standard deviation"`
	TotalWeight   float64     `json:"totalWeight" jsonschema_description:"Sum of all weights"`
}

// RollResponse carries sampled outcomes.
type RollResponse struct {
	Expression string    `json:"expression" jsonschema_description:"The rolled expression"`
	Results    []float64 `json:"results" jsonschema_description:"Sampled outcomes in order"`
}

// CompareResponse reports the probability that one expression beats another.
type CompareResponse struct {
	Left        string  `json:"left" jsonschema_description:"Left-hand expression"`
	Right       string  `json:"right" jsonschema_description:"Right-hand expression"`
	Operator    string  `json:"operator" jsonschema_description:"Comparison operator applied"`
	Probability float64 `json:"probability" jsonschema_description:"Probability the comparison holds, in [0, 1]"`
}

// Server wraps the evaluator and exposes it as an MCP server.
type Server struct {
	evaluator Evaluator
	renderer  ports.ChartRenderer
	library   ports.Library
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance. The library may be nil,
// in which case the library resource is not registered.
func NewServer(evaluator Evaluator, renderer ports.ChartRenderer, library ports.Library, version string) *Server {
	s := &Server{
		evaluator: evaluator,
		renderer:  renderer,
		library:   library,
		mcpServer: server.NewMCPServer("pips-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

var predicates = map[string]dist.Predicate{
	"<":  dist.Less,
	"<=": dist.LessOrEqual,
	">":  dist.Greater,
	">=": dist.GreaterOrEqual,
	"==": dist.EqualTo,
	"!=": dist.NotEqualTo,
}

func (s *Server) registerTools() {
	// TOOL: eval_expression
	evalTool := mcp.NewTool("eval_expression",
		mcp.WithDescription("Evaluate a dice expression like '2D6+1' into its exact probability distribution."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Dice expression in [count]D<faces> notation")),
		mcp.WithOutputSchema[EvalResponse](),
	)
	s.mcpServer.AddTool(evalTool, mcp.NewStructuredToolHandler(s.handleEval))

	// TOOL: roll_dice
	rollTool := mcp.NewTool("roll_dice",
		mcp.WithDescription("Sample random outcomes from a dice expression."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Dice expression to roll")),
		mcp.WithNumber("count", mcp.Description("Number of rolls (default 1, max 1000)")),
		mcp.WithNumber("seed", mcp.Description("Optional seed for reproducible rolls")),
		mcp.WithOutputSchema[RollResponse](),
	)
	s.mcpServer.AddTool(rollTool, mcp.NewStructuredToolHandler(s.handleRoll))

	// TOOL: compare_expressions
	compareTool := mcp.NewTool("compare_expressions",
		mcp.WithDescription("Compute the probability that one dice expression compares to another."),
		mcp.WithString("left", mcp.Required(), mcp.Description("Left-hand dice expression")),
		mcp.WithString("right", mcp.Required(), mcp.Description("Right-hand dice expression")),
		mcp.WithString("operator", mcp.Description("One of <, <=, >, >=, ==, != (default >)")),
		mcp.WithOutputSchema[CompareResponse](),
	)
	s.mcpServer.AddTool(compareTool, mcp.NewStructuredToolHandler(s.handleCompare))

	// TOOL: chart_distribution
	s.mcpServer.AddTool(mcp.NewTool("chart_distribution",
		mcp.WithDescription("Render a dice expression's distribution as a Mermaid chart definition."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Dice expression to chart")),
		mcp.WithString("title", mcp.Description("Chart title (defaults to the expression)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		expression := request.GetString("expression", "")
		title := request.GetString("title", expression)

		d, err := s.evaluator.Parse(expression)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
		}
		chart, err := s.renderer.RenderChart(d, title)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
		}
		return mcp.NewToolResultText(chart), nil
	})
}

// Handler methods for structured tools

type evalArgs struct {
	Expression string `mapstructure:"expression"`
}

type rollArgs struct {
	Expression string `mapstructure:"expression"`
	Count      int    `mapstructure:"count"`
	Seed       *int64 `mapstructure:"seed"`
}

type compareArgs struct {
	Left     string `mapstructure:"left"`
	Right    string `mapstructure:"right"`
	Operator string `mapstructure:"operator"`
}

func decodeArgs(args map[string]interface{}, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}

func (s *Server) handleEval(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (EvalResponse, error) {
	var in evalArgs
	if err := decodeArgs(args, &in); err != nil {
		return EvalResponse{}, fmt.Errorf("invalid arguments: %w", err)
	}

	d, err := s.evaluator.Parse(in.Expression)
	if err != nil {
		return EvalResponse{}, fmt.Errorf("parse failed: %w", err)
	}

	ev, err := d.ExpectedValue()
	if err != nil {
		return EvalResponse{}, err
	}
	sd, err := d.StdDev()
	if err != nil {
		return EvalResponse{}, err
	}

	pairs := make([][]float64, 0, d.Len())
	for _, outcome := range d.Outcomes() {
		pairs = append(pairs, []float64{outcome, d.Weight(outcome)})
	}

	return EvalResponse{
		Expression:    in.Expression,
		Distribution:  pairs,
		ExpectedValue: ev,
		StdDev:        sd,
		TotalWeight:   d.TotalWeight(),
	}, nil
}

func (s *Server) handleRoll(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RollResponse, error) {
	in := rollArgs{Count: 1}
	if err := decodeArgs(args, &in); err != nil {
		return RollResponse{}, fmt.Errorf("invalid arguments: %w", err)
	}
	if in.Count < 1 || in.Count > 1000 {
		return RollResponse{}, fmt.Errorf("count must be between 1 and 1000, got %d", in.Count)
	}

	var src dist.Source
	if in.Seed != nil {
		src = dist.NewSeededSource(*in.Seed)
	} else {
		src = dist.NewRandomSource()
	}

	d, err := s.evaluator.Parse(in.Expression)
	if err != nil {
		return RollResponse{}, fmt.Errorf("parse failed: %w", err)
	}

	results := make([]float64, 0, in.Count)
	for i := 0; i < in.Count; i++ {
		v, err := d.Roll(src)
		if err != nil {
			return RollResponse{}, err
		}
		results = append(results, v)
	}

	return RollResponse{Expression: in.Expression, Results: results}, nil
}

func (s *Server) handleCompare(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CompareResponse, error) {
	var in compareArgs
	if err := decodeArgs(args, &in); err != nil {
		return CompareResponse{}, fmt.Errorf("invalid arguments: %w", err)
	}
	if in.Operator == "" {
		in.Operator = ">"
	}

	pred, ok := predicates[in.Operator]
	if !ok {
		return CompareResponse{}, fmt.Errorf("unknown operator %q", in.Operator)
	}

	leftDist, err := s.evaluator.Parse(in.Left)
	if err != nil {
		return CompareResponse{}, fmt.Errorf("left expression: %w", err)
	}
	rightDist, err := s.evaluator.Parse(in.Right)
	if err != nil {
		return CompareResponse{}, fmt.Errorf("right expression: %w", err)
	}

	outcome := leftDist.Compare(pred, rightDist)
	normalized, err := outcome.Normalized(1.0)
	if err != nil {
		return CompareResponse{}, err
	}

	return CompareResponse{
		Left:        in.Left,
		Right:       in.Right,
		Operator:    in.Operator,
		Probability: normalized.Weight(1),
	}, nil
}

func (s *Server) registerResources() {
	if s.library == nil {
		return
	}

	// EXPOSE: pips://library
	s.mcpServer.AddResource(mcp.NewResource("pips://library", "Saved Dice Expressions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries, err := s.library.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list library: %w", err)
		}
		jsonBytes, _ := json.Marshal(entries)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "pips://library",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
