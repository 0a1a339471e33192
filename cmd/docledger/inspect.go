package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/docledger/docledger-go/pkg/docledger/models"
	"github.com/docledger/docledger-go/pkg/docledger/store"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <ledger.xlsx>",
		Short: "Show per-sheet statistics of a tracking ledger",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(args[0])
			if err != nil {
				return err
			}
			defer st.Close()

			wb, err := st.Load()
			if err != nil {
				return err
			}

			bold := color.New(color.Bold)
			for _, sheet := range wb.Sheets {
				counts := map[models.Status]int{}
				var candidates []models.LedgerRow
				total := 0

				for row := models.FirstLedgerRow; row <= sheet.MaxRow(); row++ {
					snap := sheet.SnapshotRow(row)
					if snap.Status == "" && snap.DocID == "" {
						continue
					}
					total++
					counts[snap.Status]++
					if snap.Status == models.StatusCandidate {
						candidates = append(candidates, snap)
					}
				}

				bold.Printf("%s\n", sheet.Name)
				fmt.Printf("  %d ledger rows: %d active, %d expired, %d candidate\n",
					total,
					counts[models.StatusActive],
					counts[models.StatusExpired],
					counts[models.StatusCandidate])
				for _, c := range candidates {
					fmt.Printf("  candidate awaiting activation: %s (row %d)\n", c.DocID, c.Row)
				}
			}
			return nil
		},
	}
}
