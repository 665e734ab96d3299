package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pranshu115/tatva/app"
)

func newDashboardCommand(env *Env, flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the procurement overview",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				stats, err := a.Services.Dashboard.Stats(ctx)
				if err != nil {
					return err
				}
				if flags.output == outputJSON {
					return printJSON(env.Out, stats)
				}
				return renderTable(env.Out, []string{"Metric", "Value"}, [][]string{
					{"Vendors", fmt.Sprint(stats.TotalVendors)},
					{"Active RFQs", fmt.Sprint(stats.ActiveRFQs)},
					{"Pending requisitions", fmt.Sprint(stats.PendingRequisitions)},
					{"Open purchase orders", fmt.Sprint(stats.OpenPurchaseOrders)},
					{"Quotations this period", fmt.Sprint(stats.QuotationsThisPeriod)},
					{"Total spend", fmt.Sprintf("%.2f", stats.TotalSpend)},
				})
			})
		},
	}
}
