package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/validator"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

const (
	// DefaultMaxSteps bounds tool calls that do not set a budget.
	DefaultMaxSteps = 1000

	// DefaultMaxStepsLimit is the largest budget a tool call may ask for.
	DefaultMaxStepsLimit = 10000
)

// ErrStepBudgetTooLarge is returned for tool calls whose max_steps exceeds the server limit.
var ErrStepBudgetTooLarge = errors.New("max_steps exceeds the server limit")

// SimulateArgs are the arguments of the simulate tool.
type SimulateArgs struct {
	Spec           string  `mapstructure:"spec"`
	Input          *string `mapstructure:"input"`
	MaxSteps       int     `mapstructure:"max_steps"`
	Conf           string  `mapstructure:"conf"`
	AllowStay      bool    `mapstructure:"allow_stay"`
	ImplicitReject *bool   `mapstructure:"implicit_reject"`
}

// SimulateResponse aligns with the HTTP adapter and provides a unified structure across adapters.
type SimulateResponse struct {
	Outcome        domain.Outcome `json:"outcome" jsonschema_description:"accepted, rejected, truncated or undecided"`
	Steps          int            `json:"steps" jsonschema_description:"Number of transitions applied"`
	Truncated      bool           `json:"truncated" jsonschema_description:"True when the step budget cut the run"`
	Configurations []string       `json:"configurations" jsonschema_description:"Instantaneous descriptions in emission order"`
}

// ValidateResponse lists the lint findings of a machine that parsed and validated.
type ValidateResponse struct {
	Valid    bool                `json:"valid"`
	Findings []validator.Finding `json:"findings"`
}

// Server exposes the simulator as an MCP Server.
type Server struct {
	mcpServer     *server.MCPServer
	logger        *slog.Logger
	maxStepsLimit int
}

// Option configures a Server.
type Option func(*Server)

// WithMaxStepsLimit sets the largest budget a simulate call may ask for.
func WithMaxStepsLimit(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxStepsLimit = n
		}
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(logger *slog.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		mcpServer:     server.NewMCPServer("turing-mcp", strings.TrimSpace(turing.Version)),
		logger:        logger,
		maxStepsLimit: DefaultMaxStepsLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	// TOOL: simulate
	simulateTool := mcp.NewTool("simulate",
		mcp.WithDescription("Run a deterministic Turing machine described in the text notation and return its trace."),
		mcp.WithString("spec", mcp.Required(), mcp.Description("Machine description (Q, Sigma, Gamma, blank, q0, qaccept, qreject, delta, input)")),
		mcp.WithString("input", mcp.Description("Input string; defaults to the description's input line")),
		mcp.WithNumber("max_steps", mcp.Description("Step budget (default 1000, at most 10000 unless the server sets another limit)")),
		mcp.WithString("conf", mcp.Description(`Configuration notation: "u q v" (default) or "uqv"`)),
		mcp.WithBoolean("allow_stay", mcp.Description("Permit the S move")),
		mcp.WithBoolean("implicit_reject", mcp.Description("Reject on undefined transitions (default true)")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulate))

	// TOOL: validate
	validateTool := mcp.NewTool("validate",
		mcp.WithDescription("Parse and validate a machine description, then report reachability warnings."),
		mcp.WithString("spec", mcp.Required(), mcp.Description("Machine description")),
		mcp.WithOutputSchema[ValidateResponse](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: graph
	s.mcpServer.AddTool(mcp.NewTool("graph",
		mcp.WithDescription("Render the transition function as Graphviz DOT or Mermaid."),
		mcp.WithString("spec", mcp.Required(), mcp.Description("Machine description")),
		mcp.WithString("format", mcp.Description("dot (default) or mermaid")),
	), s.handleGraph)
}

func (s *Server) handleSimulate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SimulateResponse, error) {
	var in SimulateArgs
	if err := mapstructure.WeakDecode(args, &in); err != nil {
		return SimulateResponse{}, fmt.Errorf("invalid arguments: %w", err)
	}

	variant, err := domain.ParseVariant(in.Conf)
	if err != nil {
		return SimulateResponse{}, err
	}
	maxSteps := in.MaxSteps
	if maxSteps == 0 {
		maxSteps = DefaultMaxSteps
	}
	if maxSteps > s.maxStepsLimit {
		return SimulateResponse{}, fmt.Errorf("%w: %d > %d", ErrStepBudgetTooLarge, maxSteps, s.maxStepsLimit)
	}
	opts := []turing.Option{
		turing.WithMaxSteps(maxSteps),
		turing.WithAllowStay(in.AllowStay),
		turing.WithVariant(variant),
		turing.WithLogger(s.logger),
	}
	if in.ImplicitReject != nil {
		opts = append(opts, turing.WithImplicitReject(*in.ImplicitReject))
	}

	eng, err := turing.Parse(strings.NewReader(in.Spec), opts...)
	if err != nil {
		return SimulateResponse{}, err
	}
	input := eng.Input()
	if in.Input != nil {
		input = *in.Input
	}

	res, err := eng.Simulate(ctx, input)
	if err != nil {
		s.logger.Warn("MCP Simulate: run failed", "error", err)
		return SimulateResponse{}, err
	}
	return SimulateResponse{
		Outcome:        res.Outcome,
		Steps:          res.Steps(),
		Truncated:      res.Trace.Truncation != nil,
		Configurations: res.Lines(),
	}, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ValidateResponse, error) {
	spec, _ := args["spec"].(string)
	eng, err := turing.Parse(strings.NewReader(spec), turing.WithAllowStay(true))
	if err != nil {
		return ValidateResponse{}, err
	}
	findings := validator.Lint(eng.Machine())
	if findings == nil {
		findings = []validator.Finding{}
	}
	return ValidateResponse{Valid: true, Findings: findings}, nil
}

func (s *Server) handleGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	spec := request.GetString("spec", "")
	format := request.GetString("format", "dot")

	eng, err := turing.Parse(strings.NewReader(spec), turing.WithAllowStay(true))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("parse failed: %v", err)), nil
	}

	switch strings.ToLower(format) {
	case "", "dot":
		return mcp.NewToolResultText(eng.DOT()), nil
	case "mermaid":
		return mcp.NewToolResultText(eng.Mermaid(nil)), nil
	}
	return mcp.NewToolResultError("unknown graph format: " + format), nil
}
