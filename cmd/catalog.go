package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/classlens/classlens/internal/catalog"
	"github.com/classlens/classlens/internal/logging"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the classroom catalog",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a catalog file against the schema and record rules",
	Long:  "Validate checks the given catalog file, or the built-in catalog when no file is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.Catalog.Path
		if len(args) == 1 {
			path = args[0]
		}
		c, err := catalog.Load(path)
		if err != nil {
			return err
		}
		if path == "" {
			path = "built-in catalog"
		}
		logging.Log.WithField("path", path).Debug("catalog valid")
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d students, %d topics, %d classes, %d subjects)\n",
			path, len(c.Students), len(c.Topics), len(c.Classes), len(c.Subjects))
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogValidateCmd)
}
