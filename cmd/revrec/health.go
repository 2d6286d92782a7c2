package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := a.client.Health(cmd.Context())
			if err != nil {
				return fmt.Errorf("backend %s: %w", a.client.BaseURL(), err)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s %s\n", headingStyle.Render(a.client.BaseURL()), h.Status)

			if h.Message != "" {
				fmt.Fprintln(w, faintStyle.Render(h.Message))
			}

			for _, e := range h.Endpoints {
				fmt.Fprintln(w, "  "+e)
			}

			return nil
		},
	}
}
