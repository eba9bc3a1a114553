package cmd

import (
	"github.com/spf13/cobra"

	"github.com/classlens/classlens/internal/export"
	"github.com/classlens/classlens/internal/report"
)

var (
	reportViews   []string
	reportFilters filterFlags
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the insight panels for a selection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, err := export.ParseViews(reportViews)
		if err != nil {
			return err
		}
		sess, err := newSession()
		if err != nil {
			return err
		}
		st, err := reportFilters.state(sess.Catalog)
		if err != nil {
			return err
		}
		return report.Write(cmd.OutOrStdout(), sess, st, pages)
	},
}

func init() {
	reportCmd.Flags().StringSliceVar(&reportViews, "views", nil, "Views to report on; default all")
	reportFilters.register(reportCmd)
}
