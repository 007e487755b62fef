package commands

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fintrail-dev/fintrail/internal/format"
	"github.com/fintrail-dev/fintrail/internal/model"
	"github.com/fintrail-dev/fintrail/internal/report"
)

func newAccountsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage accounts",
	}
	cmd.AddCommand(newAccountsListCommand(a))
	cmd.AddCommand(newAccountsAddCommand(a))
	cmd.AddCommand(newAccountsEditCommand(a))
	cmd.AddCommand(newAccountsDeleteCommand(a))
	return cmd
}

func newAccountsListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts with balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			accts, err := a.client.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tSUB TYPE\tBALANCE")
			for _, acct := range accts {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
					acct.ID, acct.Name, acct.Type, acct.SubType, format.Currency(acct.DisplayBalance()))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(a.out, "\nNet worth: %s\n", format.Currency(report.NetWorth(accts)))
			return nil
		},
	}
}

func accountInputFlags(cmd *cobra.Command, input *model.NewAccount) {
	cmd.Flags().StringVar(&input.Name, "name", "", "account name")
	cmd.Flags().StringVar((*string)(&input.Type), "type", "", "account type (Asset, Liability, Income, Expense, Equity)")
	cmd.Flags().StringVar(&input.SubType, "sub-type", "", "account sub type")
	cmd.Flags().StringVar(&input.Description, "description", "", "description (\":\"-delimited for hierarchy)")
}

func validationMessage(errs []model.ValidationError) error {
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return fmt.Errorf("invalid input: %s", strings.Join(msgs, "; "))
}

func newAccountsAddCommand(a *app) *cobra.Command {
	var input model.NewAccount

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if errs := model.ValidateNewAccount(input); len(errs) > 0 {
				return validationMessage(errs)
			}
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			acct, err := a.client.CreateAccount(cmd.Context(), input)
			a.audit("account.create", "account", strconv.FormatInt(acct.ID, 10), err)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Created account %d (%s)\n", acct.ID, acct.Name)
			return nil
		},
	}

	accountInputFlags(cmd, &input)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newAccountsEditCommand(a *app) *cobra.Command {
	var input model.NewAccount

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if errs := model.ValidateNewAccount(input); len(errs) > 0 {
				return validationMessage(errs)
			}
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			acct, err := a.client.UpdateAccount(cmd.Context(), id, input)
			a.audit("account.update", "account", strconv.FormatInt(id, 10), err)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "Updated account %d (%s)\n", acct.ID, acct.Name)
			return nil
		},
	}

	accountInputFlags(cmd, &input)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func newAccountsDeleteCommand(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := a.requireSession(cmd.Context()); err != nil {
				return err
			}

			if !yes {
				ok, err := a.promptYesNo(fmt.Sprintf("Delete account %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(a.out, "Aborted")
					return nil
				}
			}

			err = a.client.DeleteAccount(cmd.Context(), id)
			a.audit("account.delete", "account", strconv.FormatInt(id, 10), err)
			if err != nil {
				// Referential conflicts arrive as the server's own message.
				return err
			}

			fmt.Fprintf(a.out, "Deleted account %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")

	return cmd
}
