package main

import (
	"fmt"

	"github.com/fwojciec/formulary"
	fhttp "github.com/fwojciec/formulary/http"
	"github.com/fwojciec/formulary/prometheus"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	metrics := prometheus.NewMetrics()

	var explainer formulary.Explainer
	if deps.Explainer != nil {
		explainer = prometheus.NewMetricsExplainer(deps.Explainer, metrics)
	} else {
		fmt.Fprintln(deps.Stderr, "GEMINI_API_KEY not set; explanations are disabled")
	}

	srv := fhttp.NewServer(deps.Catalog, deps.Bookmarks,
		fhttp.WithAddr(c.Addr),
		fhttp.WithExplainer(explainer),
		fhttp.WithLogger(deps.Logger),
		fhttp.WithMetrics(metrics, metrics.Handler()),
	)

	if c.Listener != nil {
		fmt.Fprintf(deps.Stdout, "Serving on http://%s\n", c.Listener.Addr())
		return srv.Serve(deps.Ctx, c.Listener)
	}

	fmt.Fprintf(deps.Stdout, "Serving on http://%s\n", c.Addr)
	if err := srv.ListenAndServe(deps.Ctx); err != nil {
		return fmt.Errorf("failed to serve on %s: %w", c.Addr, err)
	}
	return nil
}
