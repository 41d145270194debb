package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// semestersCommand creates the command listing known semesters.
func (c *CLI) semestersCommand() *cobra.Command {
	var (
		asJSON  bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "semesters",
		Short: "List semester codes, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.newSession(ctx, runnerOpts{noCache: noCache})
			if err != nil {
				return err
			}
			defer s.Close()

			list := s.runner.Semesters(ctx)
			if list.Warning != "" {
				printWarning(cmd.ErrOrStderr(), "%s", list.Warning)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(list)
			}
			for i, code := range list.Codes {
				line := fmt.Sprintf("%s  %s", code, code.Label())
				if i == 0 {
					line += "  " + StyleDim.Render("(default)")
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the list as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response caching")

	return cmd
}
