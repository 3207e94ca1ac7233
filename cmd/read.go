package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JakeFAU/readpage/internal/reader"
)

func newReadCmd() *cobra.Command {
	var (
		objective string
		force     bool
	)
	cmd := &cobra.Command{
		Use:   "read <url>",
		Short: "Retrieve one URL and print its Markdown to stdout.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			svc, browser := buildService(cfg, logger)
			if browser != nil {
				defer browser.Shutdown()
			}

			result, err := svc.ReadPage(cmd.Context(), reader.Request{
				URL:          args[0],
				Objective:    objective,
				ForceRefetch: force,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Content)
			return nil
		},
	}
	cmd.Flags().StringVar(&objective, "objective", "", "keep only lines matching these keywords")
	cmd.Flags().BoolVar(&force, "force", false, "bypass the cache and refetch")
	return cmd
}
