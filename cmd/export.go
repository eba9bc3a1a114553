package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/classlens/classlens/internal/export"
	"github.com/classlens/classlens/internal/logging"
)

var (
	exportOut     string
	exportViews   []string
	exportFilters filterFlags
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dashboard views to an xlsx workbook",
	Long:  "Export derives each view under the given filters and writes one worksheet per view.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pages, err := export.ParseViews(exportViews)
		if err != nil {
			return err
		}
		sess, err := newSession()
		if err != nil {
			return err
		}
		st, err := exportFilters.state(sess.Catalog)
		if err != nil {
			return err
		}

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		if err := export.Write(f, sess, st, pages); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", exportOut, err)
		}

		logging.Log.WithFields(logrus.Fields{
			"path":   exportOut,
			"action": "export",
			"sheets": len(pages),
		}).Info("workbook written")
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d sheets to %s\n", len(pages), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "classlens.xlsx", "Output workbook path")
	exportCmd.Flags().StringSliceVar(&exportViews, "views", nil, "Views to export (dashboard, queries, performance, content, notes); default all")
	exportFilters.register(exportCmd)
}
