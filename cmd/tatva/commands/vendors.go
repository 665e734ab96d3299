package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Pranshu115/tatva/app"
	"github.com/Pranshu115/tatva/resource"
	"github.com/Pranshu115/tatva/services"
)

// listFlags are shared by every list subcommand.
type listFlags struct {
	page   int
	all    bool
	status string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.page, "page", 1, "page to show")
	cmd.Flags().BoolVar(&f.all, "all", false, "show every page from --page on")
	cmd.Flags().StringVar(&f.status, "status", "", "filter by status")
}

func (f *listFlags) filters() map[string]string {
	if f.status == "" {
		return nil
	}
	return map[string]string{"status": f.status}
}

// listPages fetches the requested page and, with --all, walks forward
// with NextPage until the last page, printing each one.
func listPages[T any](ctx context.Context, env *Env, a *app.App, output string, f *listFlags, pages resource.PageFunc[T], header []string, row func(T) []string) error {
	if f.page < 1 {
		return fmt.Errorf("--page must be at least 1")
	}
	list := app.Paginate(ctx, a, pages)
	if _, err := list.FetchPage(ctx, f.page); err != nil {
		return err
	}
	for {
		st := list.State()
		if err := printPage(env.Out, output, st, header, row); err != nil {
			return err
		}
		if !f.all || st.Page >= st.TotalPages {
			return nil
		}
		if err := list.NextPage(ctx); err != nil {
			return err
		}
	}
}

func newVendorsCommand(env *Env, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vendors",
		Short: "Manage vendors",
	}

	var lf listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List vendors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				return listPages(ctx, env, a, flags.output, &lf, a.Services.Vendors.Pages(lf.filters()),
					[]string{"ID", "Name", "Email", "Category", "Status"},
					func(v services.Vendor) []string {
						return []string{v.ID.String(), v.Name, v.Email, v.Category, v.Status}
					})
			})
		},
	}
	lf.register(list)

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one vendor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return env.withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				v, err := a.Services.Vendors.Get(ctx, services.ID(args[0]))
				if err != nil {
					return err
				}
				if flags.output == outputJSON {
					return printJSON(env.Out, v)
				}
				return renderKeyValues(env.Out, map[string]any{
					"id": v.ID, "name": v.Name, "email": v.Email, "phone": v.Phone,
					"category": v.Category, "status": v.Status, "rating": v.Rating,
				})
			})
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

func newRFQsCommand(env *Env, flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rfqs",
		Aliases: []string{"rfq"},
		Short:   "Manage requests for quotation",
	}

	var lf listFlags
	list := &cobra.Command{
		Use:   "list",
		Short: "List RFQs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return env.withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				return listPages(ctx, env, a, flags.output, &lf, a.Services.RFQs.Pages(lf.filters()),
					[]string{"ID", "Title", "Status", "Deadline", "Vendors"},
					func(r services.RFQ) []string {
						deadline := ""
						if !r.Deadline.IsZero() {
							deadline = r.Deadline.Format("2006-01-02")
						}
						return []string{r.ID.String(), r.Title, r.Status, deadline, fmt.Sprint(len(r.VendorIDs))}
					})
			})
		},
	}
	lf.register(list)

	var sel services.VendorSelection
	selectVendor := &cobra.Command{
		Use:   "select-vendor <rfq-id> <vendor-id>",
		Short: "Award an RFQ to a vendor",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sel.VendorID = services.ID(args[1])
			return env.withApp(cmd, flags, func(ctx context.Context, a *app.App) error {
				rfq, err := a.Services.RFQs.SelectVendor(ctx, services.ID(args[0]), sel)
				if err != nil {
					return err
				}
				if flags.output == outputJSON {
					return printJSON(env.Out, rfq)
				}
				fmt.Fprintf(env.Out, "RFQ %s awarded to vendor %s\n", rfq.ID, sel.VendorID)
				return nil
			})
		},
	}
	selectVendor.Flags().Var((*idValue)(&sel.QuotationID), "quotation", "winning quotation id")
	selectVendor.Flags().StringVar(&sel.Notes, "notes", "", "selection notes")

	cmd.AddCommand(list, selectVendor)
	return cmd
}

// idValue adapts services.ID to pflag.Value.
type idValue services.ID

func (v *idValue) String() string     { return string(*v) }
func (v *idValue) Set(s string) error { *v = idValue(s); return nil }
func (v *idValue) Type() string       { return "id" }
