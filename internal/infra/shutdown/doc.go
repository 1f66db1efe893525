// Package shutdown runs cleanup hooks when the CLI exits, whether it
// finishes normally or is interrupted by SIGINT or SIGTERM.
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown("session store", func(ctx context.Context) error { return store.Close() })
//	ctx, stop := h.NotifyContext(context.Background())
//	defer stop()
//	defer h.Shutdown()
package shutdown
