package svc

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	loggerpkg "github.com/opencatalog/searchsync/internal/pkg/logger"
	otelpkg "github.com/opencatalog/searchsync/internal/pkg/otel"
)

// Svc contains the service information.
type Svc struct {
	// Version is the service version.
	Version string

	// Name is the name of the service.
	Name string
}

// Svc represents the service.
var svc Svc

// GetVersion returns the service version.
func (s Svc) GetVersion() string {
	return s.Version
}

// GetName returns the service name.
func (s Svc) GetName() string {
	return s.Name
}

// SetVersion sets the service version.
func SetVersion(version string) {
	if svc.Version != "" {
		return
	}
	svc.Version = version
}

// SetName sets the service name.
func SetName(name string) {
	if svc.Name != "" {
		return
	}
	svc.Name = name
}

// Info returns the service information.
func Info() Svc {
	return svc
}

// Init initializes the process-wide components: the signal-aware root
// context, the OTel providers, and the context-scoped logger. The returned
// cancel function flushes the providers on shutdown.
func Init() (context.Context, context.CancelFunc) {
	SetName(serviceName)
	SetVersion(serviceVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	res, err := otelpkg.InitResource(ctx, svc.Name, svc.Version)
	if err != nil {
		stop()
		panic(err)
	}

	tp, err := otelpkg.InitTracerProvider(ctx, res)
	if err != nil {
		stop()
		panic(err)
	}

	mp, err := otelpkg.InitMeterProvider(ctx, res)
	if err != nil {
		stop()
		panic(err)
	}

	lp, err := otelpkg.InitLogProvider(ctx, res)
	if err != nil {
		stop()
		panic(err)
	}

	ctx, logger := loggerpkg.Init(ctx, svc.Name, lp)

	cancel := func() {
		//nolint:errcheck // Flush errors on shutdown are not actionable.
		logger.Sync()

		shutdownCtx := context.WithoutCancel(ctx)
		//nolint:errcheck // Best effort provider shutdown.
		tp.Shutdown(shutdownCtx)
		//nolint:errcheck // Best effort provider shutdown.
		mp.Shutdown(shutdownCtx)
		//nolint:errcheck // Best effort provider shutdown.
		lp.Shutdown(shutdownCtx)

		stop()
	}

	return ctx, cancel
}
