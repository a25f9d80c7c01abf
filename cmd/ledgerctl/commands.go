package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/feral-file/ff-nft-ledger/internal/api/shared/constants"
	"github.com/feral-file/ff-nft-ledger/internal/domain"
)

func infoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the collection and its current supply",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, err := a.executor.GetCollection(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), collection)
		},
	}
}

func mintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mint <to> <token-id>",
		Short: "Mint a token to an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenID, err := domain.ParseTokenID(args[1])
			if err != nil {
				return err
			}
			event, err := a.executor.Mint(cmd.Context(), a.callerOrAdmin(), args[0], tokenID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), event)
		},
	}
}

func approveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <approved> <token-id>",
		Short: "Approve an account to transfer a token; the zero address clears the approval",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenID, err := domain.ParseTokenID(args[1])
			if err != nil {
				return err
			}
			event, err := a.executor.Approve(cmd.Context(), a.callerOrAdmin(), args[0], tokenID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), event)
		},
	}
}

func transferCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <from> <to> <token-id>",
		Short: "Transfer a token",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenID, err := domain.ParseTokenID(args[2])
			if err != nil {
				return err
			}
			event, err := a.executor.Transfer(cmd.Context(), a.callerOrAdmin(), args[0], args[1], tokenID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), event)
		},
	}
}

func ownerOfCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "owner-of <token-id>",
		Short: "Show the owner of a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenID, err := domain.ParseTokenID(args[0])
			if err != nil {
				return err
			}
			owner, err := a.executor.GetOwner(cmd.Context(), tokenID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), owner)
		},
	}
}

func balanceOfCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "balance-of <address>",
		Short: "Show how many tokens an account owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := a.executor.GetBalance(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), balance)
		},
	}
}

func tokenURICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "token-uri <token-id>",
		Short: "Show the metadata locator of a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokenID, err := domain.ParseTokenID(args[0])
			if err != nil {
				return err
			}
			uri, err := a.executor.GetTokenURI(cmd.Context(), tokenID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), uri)
		},
	}
}

func tokensOfCmd(a *app) *cobra.Command {
	var (
		limit  int
		offset uint64
	)
	cmd := &cobra.Command{
		Use:   "tokens-of <address>",
		Short: "List the tokens an account owns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 || limit > constants.MAX_PAGE_SIZE {
				return fmt.Errorf("limit must be between 1 and %d", constants.MAX_PAGE_SIZE)
			}
			tokens, err := a.executor.GetTokensOfOwner(cmd.Context(), args[0], limit, offset)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tokens)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", constants.DEFAULT_TOKENS_LIMIT, "Page size")
	cmd.Flags().Uint64Var(&offset, "offset", 0, "Page offset")
	return cmd
}

func eventsCmd(a *app) *cobra.Command {
	var (
		tokenID string
		address string
		limit   int
		offset  uint64
	)
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List journal entries in sequence order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 || limit > constants.MAX_PAGE_SIZE {
				return fmt.Errorf("limit must be between 1 and %d", constants.MAX_PAGE_SIZE)
			}

			var tokenFilter *uint64
			if tokenID != "" {
				id, err := domain.ParseTokenID(tokenID)
				if err != nil {
					return err
				}
				tokenFilter = &id
			}
			var addressFilter *string
			if address != "" {
				addressFilter = &address
			}

			events, err := a.executor.GetEvents(cmd.Context(), tokenFilter, addressFilter, limit, offset)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), events)
		},
	}
	cmd.Flags().StringVar(&tokenID, "token-id", "", "Only entries of this token")
	cmd.Flags().StringVar(&address, "address", "", "Only entries involving this account")
	cmd.Flags().IntVar(&limit, "limit", constants.DEFAULT_EVENTS_LIMIT, "Page size")
	cmd.Flags().Uint64Var(&offset, "offset", 0, "Page offset")
	return cmd
}
