package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sitediary/internal/repository/postgres"
	"sitediary/internal/service"
)

func newPartnersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partners",
		Short: "Manage the partner directory",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "import FILE.xlsx",
		Short: "Bulk insert partners from a spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			result, err := service.NewPartnerService(postgres.NewPartnerRepo(db)).Import(cmd.Context(), f)
			if err != nil {
				return err
			}
			for _, s := range result.Skipped {
				log.Warn("partners: row skipped", zap.Int("line", s.Line), zap.String("reason", s.Reason))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d, skipped %d\n", result.Inserted, len(result.Skipped))
			return nil
		},
	})
	return cmd
}
