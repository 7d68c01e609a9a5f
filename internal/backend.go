package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/markusressel/pid2go/internal/api"
	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/simulation"
	"github.com/markusressel/pid2go/internal/statistics"
	"github.com/markusressel/pid2go/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

func RunDaemon() {
	err := InitializeObjects()
	if err != nil {
		ui.Fatal("Unable to initialize loops: %v", err)
	}

	statistics.Register(statistics.NewLoopCollector(simulation.SessionMap))

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		enabled := configuration.CurrentConfig.Statistics.Enabled
		if enabled {
			// === Prometheus Exporter
			port := configuration.CurrentConfig.Statistics.Port
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

			g.Add(func() error {
				ui.Info("Starting statistics server on port %d", port)
				if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("cannot start prometheus metrics endpoint: %w", err)
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: %v", err)
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		enabled := configuration.CurrentConfig.Api.Enabled
		if enabled {
			// === REST api
			addr := fmt.Sprintf("%s:%d", configuration.CurrentConfig.Api.Host, configuration.CurrentConfig.Api.Port)
			rest := api.CreateRestService(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)

			g.Add(func() error {
				ui.Info("Starting REST api on %s", addr)
				if err := rest.Start(addr); !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("cannot start REST api: %w", err)
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping REST api...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer timeoutCancel()
				if err := rest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST api: %v", err)
				} else {
					ui.Info("REST api stopped.")
				}
			})
		}
	}
	{
		// === control loops
		for _, config := range configuration.CurrentConfig.Loops {
			session, exists := simulation.SessionMap.Get(config.ID)
			if !exists {
				continue
			}
			tickRate := config.GetTickRate(configuration.CurrentConfig.TickRate)

			g.Add(func() error {
				err := session.Run(ctx, tickRate)
				ui.Info("Control loop %s stopped.", session.GetId())
				return err
			}, func(err error) {
				if err != nil {
					ui.Warning("Something went wrong: %v", err)
				}
			})
		}

		if simulation.SessionMap.Count() == 0 {
			ui.Fatal("No valid loop configurations, exiting.")
		}
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// InitializeObjects creates a session for every configured loop and registers it in simulation.SessionMap.
func InitializeObjects() error {
	for _, config := range configuration.CurrentConfig.Loops {
		loop, err := control_loop.NewControlLoop(config)
		if err != nil {
			return fmt.Errorf("unable to process loop configuration %s: %w", config.ID, err)
		}

		// the daemon runs until stopped, the tick count only matters for simulations
		params := simulation.ParametersFromConfig(config, configuration.CurrentConfig.Simulation.Ticks)
		session := simulation.NewSession(config.ID, loop, params)
		simulation.SessionMap.Set(config.ID, session)
	}
	return nil
}
