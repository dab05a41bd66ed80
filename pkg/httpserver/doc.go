// Package httpserver runs an http.Handler with configurable timeouts and
// graceful, context driven shutdown.
//
// Run (or Serve with an existing listener) blocks until the context is
// cancelled, then drains in-flight requests within Config.ShutdownTimeout.
// Request contexts inherit the values of the run context but not its
// cancellation, so handlers can finish while the server drains.
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server stopped", logger.Error(err))
//	}
//
// Listen failures are wrapped with ErrStart and drain failures with
// ErrShutdown.
//
// HealthHandler serves liveness and readiness probes.
package httpserver
