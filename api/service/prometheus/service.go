// Package prometheus defines a service which exposes the metrics of the
// coinbase engine.
package prometheus

import (
	"context"
	"fmt"
	"net/http"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/harmony-one/coinbase/internal/utils"
)

// Config is the config for the prometheus service
type Config struct {
	Enabled    bool
	IP         string
	Port       int
	EnablePush bool   // enable pushgateway support
	Gateway    string // address of the pushgateway
	Job        string // job name used when pushing
	Instance   string // identifier of the instance in prometheus metrics
}

func (p Config) String() string {
	return fmt.Sprintf("%v, %v:%v, %v/%v, %v/%v",
		p.Enabled, p.IP, p.Port, p.EnablePush, p.Gateway, p.Job, p.Instance)
}

// Service provides Prometheus metrics via the /metrics route. This route will
// show all the metrics registered with PromRegistry.
type Service struct {
	config Config
	server *http.Server
	pusher *push.Pusher
	stop   chan struct{}

	lock       sync.Mutex
	failStatus error
}

// Handler represents a path and handler func to serve on the same port as /metrics.
type Handler struct {
	Path    string
	Handler func(http.ResponseWriter, *http.Request)
}

var (
	registryOnce sync.Once
	registry     *prometheus.Registry
)

// PromRegistry return the registry of prometheus service
func PromRegistry() *prometheus.Registry {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
	})
	return registry
}

// NewService sets up a new instance for a given address host:port.
// An empty host will match with any IP so an address like ":9900" is perfectly acceptable.
func NewService(config Config, additionalHandlers ...Handler) *Service {
	utils.Logger().Debug().Str("Config", config.String()).Msg("Prometheus")

	reg := PromRegistry()
	handler := promhttp.InstrumentMetricHandler(
		reg,
		promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	mux.HandleFunc("/goroutinez", goroutinezHandler)
	for _, h := range additionalHandlers {
		mux.HandleFunc(h.Path, h.Handler)
	}

	endpoint := fmt.Sprintf("%s:%d", config.IP, config.Port)
	return &Service{
		config: config,
		server: &http.Server{Addr: endpoint, Handler: mux},
		stop:   make(chan struct{}),
	}
}

// Handler returns the http handler serving the metrics routes.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func goroutinezHandler(w http.ResponseWriter, _ *http.Request) {
	if err := pprof.Lookup("goroutine").WriteTo(w, 2); err != nil {
		utils.Logger().Error().Err(err).Msg("Failed to write pprof goroutines")
	}
}

// Start the prometheus service.
func (s *Service) Start() {
	if !s.config.Enabled {
		utils.Logger().Info().Msg("Prometheus http server disabled...")
		return
	}
	go func() {
		utils.Logger().Info().Str("address", s.server.Addr).Msg("Starting prometheus service")
		err := s.server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			utils.Logger().Error().Msgf("Could not listen to host:port :%s: %v", s.server.Addr, err)
			s.lock.Lock()
			s.failStatus = err
			s.lock.Unlock()
		}
	}()

	if s.config.EnablePush {
		utils.Logger().Info().Str("Job", s.config.Job).Msg("Prometheus enabled pushgateway support ...")
		s.pusher = push.New(s.config.Gateway, s.config.Job).
			Gatherer(PromRegistry()).
			Grouping("instance", s.config.Instance)

		// push metrics to the pushgateway every minute
		go func() {
			ticker := time.NewTicker(time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := s.pusher.Add(); err != nil {
						utils.Logger().Warn().Err(err).Msg("Pushgateway Error")
					}
				case <-s.stop:
					return
				}
			}
		}()
	}
}

// Stop the service gracefully.
func (s *Service) Stop() error {
	if !s.config.Enabled {
		return nil
	}
	close(s.stop)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Status checks for any service failure conditions.
func (s *Service) Status() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.failStatus
}
