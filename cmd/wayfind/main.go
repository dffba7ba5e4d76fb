package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"wayfind/internal/bridge"
	"wayfind/internal/clock"
	"wayfind/internal/config"
	"wayfind/internal/guard"
	"wayfind/internal/knowledge"
	"wayfind/internal/orchestrator"
	"wayfind/internal/session"
	"wayfind/internal/skill"
	"wayfind/internal/types"
)

var (
	// Global flags
	verbose    bool
	configPath string
	location   string
	roleFlag   string
	showTrace  bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "wayfind",
	Short: "wayfind - deterministic bilingual command router",
	Long: `wayfind routes natural-language commands (English and Spanish) to a
registered skill catalog: navigation, guided flows, and grounded answers.

It never invents destinations or capabilities. Everything it says is backed
by a registered route, a catalog skill, or a knowledge document; anything
else degrades to a coaching response.

Run without arguments to start the interactive shell.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive shell draws its own UI; skip the structured logger.
		if cmd.Name() == "wayfind" || cmd.Name() == "repl" {
			return nil
		}
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell()
	},
}

// routeCmd processes a single utterance and prints the outcome
var routeCmd = &cobra.Command{
	Use:   "route [utterance]",
	Short: "Route one utterance through the full pipeline",
	Long: `Processes a single natural-language utterance and prints the assistant
response, the action plan (if any), and the suggestion chips.

Example:
  wayfind route "go to tasks" --location /dashboard --role worker
  wayfind route "crear proyecto" --role manager --trace`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRoute,
}

// catalogCmd lists the registered skills and destinations
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the registered skills and destinations",
	RunE:  runCatalog,
}

// replCmd starts the interactive shell explicitly
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive shell",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML policy config")
	rootCmd.PersistentFlags().StringVar(&location, "location", "/dashboard", "current app location")
	rootCmd.PersistentFlags().StringVar(&roleFlag, "role", "worker", "caller role (admin|manager|worker)")

	routeCmd.Flags().BoolVar(&showTrace, "trace", false, "print the per-turn debug trace as YAML")

	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(replCmd)
}

// app bundles everything one session needs.
type app struct {
	cfg      *config.Config
	orch     *orchestrator.Orchestrator
	sess     *session.Engine
	bridge   *bridge.Bridge
	registry *skill.Registry
	routes   *guard.RouteRegistry
	location string
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	registry, err := skill.NewRegistry(skill.DefaultCatalog())
	if err != nil {
		return nil, fmt.Errorf("failed to build skill catalog: %w", err)
	}
	routes := guard.DefaultRoutes()
	clk := clock.System()

	a := &app{
		cfg:      cfg,
		registry: registry,
		routes:   routes,
		sess:     session.NewEngine(session.DefaultFlows(), cfg.Policy.FlowTTL.Std(), clk),
		bridge:   bridge.New(routes, clk, cfg.Policy.DebounceWindow.Std()),
		location: location,
	}
	a.orch = orchestrator.New(cfg, registry, routes, knowledge.DefaultCorpus())
	if logger != nil {
		a.orch.WithLogger(logger)
	}
	a.bridge.RegisterLocation(func() string { return a.location })
	a.bridge.RegisterNavigate(func(target string) { a.location = target })
	return a, nil
}

func (a *app) user() types.UserContext {
	role := types.Role(strings.ToLower(roleFlag))
	switch role {
	case types.RoleAdmin, types.RoleManager, types.RoleWorker:
	default:
		role = types.RoleWorker
	}
	return types.UserContext{UserID: "cli", Role: role, TenantID: "local"}
}

func runRoute(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.bridge.Close()

	utterance := strings.Join(args, " ")
	res := a.orch.Orchestrate(context.Background(), utterance, a.location, a.user(), a.sess)

	fmt.Println(res.Response)
	if res.ActionPlan != nil {
		fmt.Printf("\nplan: %s", res.ActionPlan.Type)
		if res.ActionPlan.TargetLocation != "" {
			fmt.Printf(" -> %s", res.ActionPlan.TargetLocation)
		}
		if res.ActionPlan.RequiresConfirmation {
			fmt.Print(" (requires confirmation)")
		}
		fmt.Println()
	}
	for _, chip := range res.SuggestionChips {
		fmt.Printf("  [%s]\n", chip.Label)
	}
	if res.Blocked {
		fmt.Printf("\nblocked: %s\n", res.Reason)
	}

	if showTrace {
		out, err := yaml.Marshal(res.Debug)
		if err != nil {
			return fmt.Errorf("failed to render trace: %w", err)
		}
		fmt.Printf("\n--- trace ---\n%s", out)
	}
	return nil
}

func runCatalog(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.bridge.Close()

	fmt.Println("Skills:")
	for _, s := range a.registry.All() {
		roles := "any role"
		if len(s.RequiredRoles) > 0 {
			names := make([]string, len(s.RequiredRoles))
			for i, r := range s.RequiredRoles {
				names[i] = string(r)
			}
			roles = strings.Join(names, ", ")
		}
		fmt.Printf("  %-16s tier %d  (%s)\n", s.ID, s.Tier, roles)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
