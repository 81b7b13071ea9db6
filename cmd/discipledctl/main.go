package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/android19/discipleship-form-sub001/internal/db"
	"github.com/android19/discipleship-form-sub001/internal/token"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "discipledctl",
		Short:         "Operator utility for managing discipled form tokens",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newTokensCommand())
	return cmd
}

func newTokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens",
		Short: "Form token administration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newTokensCreateCommand())
	cmd.AddCommand(newTokensListCommand())
	cmd.AddCommand(newTokensActivateCommand())
	cmd.AddCommand(newTokensDeactivateCommand())
	cmd.AddCommand(newTokensResetUsageCommand())
	cmd.AddCommand(newTokensDeleteCommand())
	return cmd
}

func openStore(ctx context.Context) (*token.GormStore, error) {
	_ = godotenv.Load()

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("DB_DSN is not set")
	}

	database, err := db.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return token.NewGormStore(database), nil
}

func findToken(ctx context.Context, store *token.GormStore, code string) (token.Token, error) {
	tok, err := store.FindByCode(ctx, token.NormalizeCode(code))
	if err != nil {
		return token.Token{}, fmt.Errorf("find token %q: %w", code, err)
	}
	return tok, nil
}

func newTokensCreateCommand() *cobra.Command {
	var (
		leaderLabel string
		description string
		expiresIn   time.Duration
		maxUses     int
		createdBy   string
		codeLength  int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Issue a new form token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}

			gate := token.NewGate(store, nil)
			input := token.IssueInput{
				LeaderLabel: leaderLabel,
				Description: description,
				ExpiresAt:   time.Now().UTC().Add(expiresIn),
				CreatedBy:   createdBy,
				CodeLength:  codeLength,
			}
			if maxUses > 0 {
				input.MaxUses = &maxUses
			}

			tok, err := gate.Issue(ctx, input)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "issued token %s for %s (expires %s)\n",
				tok.Code, tok.LeaderLabel, tok.ExpiresAt.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&leaderLabel, "leader", "", "leader label the token is issued for")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	cmd.Flags().DurationVar(&expiresIn, "expires-in", 14*24*time.Hour, "validity window from now")
	cmd.Flags().IntVar(&maxUses, "max-uses", 0, "usage cap (0 = unlimited)")
	cmd.Flags().StringVar(&createdBy, "created-by", "", "operator identifier")
	cmd.Flags().IntVar(&codeLength, "code-length", token.DefaultCodeLength, "generated code length")
	_ = cmd.MarkFlagRequired("leader")
	return cmd
}

func newTokensListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all form tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}

			tokens, err := store.List(ctx)
			if err != nil {
				return err
			}

			now := time.Now()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tLEADER\tSTATE\tUSED\tEXPIRES")
			for _, tok := range tokens {
				used := fmt.Sprintf("%d", tok.UsedCount)
				if tok.MaxUses != nil {
					used = fmt.Sprintf("%d/%d", tok.UsedCount, *tok.MaxUses)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					tok.Code, tok.LeaderLabel, tok.StateAt(now).Label(), used,
					tok.ExpiresAt.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}
}

func newTokensActivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "activate CODE",
		Short: "Re-enable redemption for a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggleToken(cmd, args[0], true)
		},
	}
}

func newTokensDeactivateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate CODE",
		Short: "Block redemption for a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return toggleToken(cmd, args[0], false)
		},
	}
}

func toggleToken(cmd *cobra.Command, code string, active bool) error {
	ctx := cmd.Context()
	store, err := openStore(ctx)
	if err != nil {
		return err
	}

	tok, err := findToken(ctx, store, code)
	if err != nil {
		return err
	}

	gate := token.NewGate(store, nil)
	if active {
		tok, err = gate.Activate(ctx, tok)
	} else {
		tok, err = gate.Deactivate(ctx, tok)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "token %s is now %s\n", tok.Code, tok.StateAt(time.Now()).Label())
	return nil
}

func newTokensResetUsageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-usage CODE",
		Short: "Zero a token's usage count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}

			tok, err := findToken(ctx, store, args[0])
			if err != nil {
				return err
			}

			tok, err = token.NewGate(store, nil).ResetUsage(ctx, tok)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "token %s usage reset to %d\n", tok.Code, tok.UsedCount)
			return nil
		},
	}
}

func newTokensDeleteCommand() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "delete CODE",
		Short: "Delete a token (submissions keep their data, the link is cleared)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("pass --yes to delete token %s", strings.ToUpper(args[0]))
			}

			ctx := cmd.Context()
			store, err := openStore(ctx)
			if err != nil {
				return err
			}

			tok, err := findToken(ctx, store, args[0])
			if err != nil {
				return err
			}

			if err := store.Delete(ctx, tok.ID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted token %s\n", tok.Code)
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "confirm deletion")
	return cmd
}
