package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/coursefinder/pkg/query"
	"github.com/matzehuels/coursefinder/pkg/server"
)

// serveCommand creates the web dashboard command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		workers int
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web dashboard",
		Long: `Serve the course search dashboard and its JSON API.

  GET /                 search form and results table
  GET /api/search       search as JSON (dept, gened, professor, semester, ...)
  GET /api/semesters    semester list as JSON
  GET /healthz          liveness probe`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			s, err := c.newSession(ctx, runnerOpts{noCache: noCache, workers: workers})
			if err != nil {
				return err
			}
			defer s.Close()

			if addr == "" {
				addr = s.cfg.Server.Addr
			}
			defaults := query.Filters{
				SemesterFilter: s.cfg.Search.SemesterFilter,
				DeptFallback:   s.cfg.Search.DeptFallback,
			}

			srv := server.New(s.runner, defaults, logger)
			printInfo(cmd.ErrOrStderr(), "Serving on %s", StyleHighlight.Render("http://"+addr))
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel course lookups (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response caching")

	return cmd
}
