package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/CartagenesDev/cartagenes-finacias/internal/api"
	"github.com/CartagenesDev/cartagenes-finacias/internal/api/handlers"
	"github.com/CartagenesDev/cartagenes-finacias/internal/auth"
	"github.com/CartagenesDev/cartagenes-finacias/internal/feed"
	"github.com/CartagenesDev/cartagenes-finacias/internal/scheduler"
	"github.com/CartagenesDev/cartagenes-finacias/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Inicia o servidor da API",
	Long: `Inicia o servidor HTTP da aplicação.

Este comando:
- carrega a home (cotações, rankings, notícias e dica do dia)
- agenda a atualização periódica da home
- expõe o simulador, a sessão e o ticker em tempo real

Endpoints:
  GET  /health
  GET  /api/home
  GET  /api/market/snapshot[?refresh=true]
  GET  /api/market/rankings
  GET  /api/content/news
  GET  /api/content/tip
  POST /api/simulator/project   (sessão verificada)
  POST /api/simulator/quick
  POST /api/auth/{register,verify-email,login,login/google,logout,reset-password}
  GET  /api/auth/me
  POST /api/navigation
  GET  /ws/ticker

Example:
  go run ./cmd/cartagenes api
  go run ./cmd/cartagenes api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort     string
	apiNoWarmup bool
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "porta do servidor (default: PORT)")
	apiCmd.Flags().BoolVar(&apiNoWarmup, "no-warmup", false, "não carregar a home antes de aceitar conexões")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== Cartagenes Finanças API Server ===")

	// 1. Config, logger and stores
	rt, err := bootstrap()
	if err != nil {
		return err
	}
	defer rt.Close()

	if apiPort != "" {
		rt.cfg.Port = apiPort
	}

	log := rt.log
	log.WithFields(map[string]interface{}{
		"port":            rt.cfg.Port,
		"env":             rt.cfg.Env,
		"session_backend": rt.cfg.Session.Backend,
		"gemini":          rt.cfg.Gemini.Enabled(),
		"redis":           rt.redis.Enabled(),
	}).Info("Initializing API server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Gateways
	marketGateway := rt.marketGateway()
	contentGateway, err := rt.contentGateway(ctx)
	if err != nil {
		return err
	}

	// 3. Session store
	backend, err := rt.sessionBackend(ctx)
	if err != nil {
		return err
	}
	store := auth.NewStore(backend, log).WithExternalLoginDelay(rt.cfg.Session.ExternalLoginDelay)

	// 4. Home board
	board := feed.NewBoard(marketGateway, contentGateway, log)
	if !apiNoWarmup {
		board.Refresh(ctx)
		log.WithField("source", board.Ticker().Source).Info("Home board loaded")
	}

	// 5. Scheduler
	var sched *scheduler.Scheduler
	if rt.cfg.Scheduler.Enabled {
		sched = scheduler.New(log)
		if err := sched.AddJob(jobs.NewMarketRefreshJob(board, rt.cfg.Scheduler.MarketSchedule, log)); err != nil {
			return fmt.Errorf("add market job: %w", err)
		}
		if err := sched.AddJob(jobs.NewContentRefreshJob(board, rt.cfg.Scheduler.ContentSchedule, log)); err != nil {
			return fmt.Errorf("add content job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// 6. Router and server
	router := api.NewRouter(api.Handlers{
		Feed:       handlers.NewFeedHandler(board, log),
		Simulator:  handlers.NewSimulatorHandler(log),
		Auth:       handlers.NewAuthHandler(store, log),
		Navigation: handlers.NewNavigationHandler(store, log),
		Ticker:     handlers.NewTickerHandler(board, log),
	}, log)
	server := api.New(rt.cfg, log, router)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", rt.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
