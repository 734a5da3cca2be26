package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"uat/pkg/domain"
)

func newGroupCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ti-group",
		Aliases: []string{"tig"},
		Short:   "Manage trusted intermediary groups and their members",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List groups by name",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			groups, err := a.users.ListTrustedIntermediaryGroups(cmd.Context())
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), groups)
		},
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			description, _ := cmd.Flags().GetString("description")
			group, err := a.users.CreateTrustedIntermediaryGroup(cmd.Context(), name, description)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), group)
		},
	}
	create.Flags().String("name", "", "group name")
	create.Flags().String("description", "", "group description")
	_ = create.MarkFlagRequired("name")

	remove := &cobra.Command{
		Use:   "delete",
		Short: "Delete a group; its members stop being trusted intermediaries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			groupID, err := groupFlag(cmd, "id")
			if err != nil {
				return err
			}
			if err := a.users.DeleteTrustedIntermediaryGroup(cmd.Context(), groupID); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted group %s\n", groupID)
			return err
		},
	}

	members := &cobra.Command{
		Use:   "members",
		Short: "List the accounts in a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			groupID, err := groupFlag(cmd, "id")
			if err != nil {
				return err
			}
			accounts, err := a.users.ListTrustedIntermediaries(cmd.Context(), groupID)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), accounts)
		},
	}

	addMember := &cobra.Command{
		Use:   "add-member",
		Short: "Add an account to a group, creating the account if needed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			groupID, err := groupFlag(cmd, "id")
			if err != nil {
				return err
			}
			email, _ := cmd.Flags().GetString("email")
			account, err := a.users.AddTrustedIntermediaryToGroup(cmd.Context(), groupID, email)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), account)
		},
	}
	addMember.Flags().String("email", "", "member email")
	_ = addMember.MarkFlagRequired("email")

	removeMember := &cobra.Command{
		Use:   "remove-member",
		Short: "Remove an account from a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			groupID, err := groupFlag(cmd, "id")
			if err != nil {
				return err
			}
			rawAccount, _ := cmd.Flags().GetString("account")
			accountID, err := domain.ParseAccountID(rawAccount)
			if err != nil {
				return err
			}
			if err := a.users.RemoveTrustedIntermediaryFromGroup(cmd.Context(), groupID, accountID); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed account %s from group %s\n", accountID, groupID)
			return err
		},
	}
	removeMember.Flags().String("account", "", "member account id")
	_ = removeMember.MarkFlagRequired("account")

	for _, c := range []*cobra.Command{remove, members, addMember, removeMember} {
		c.Flags().String("id", "", "group id")
		_ = c.MarkFlagRequired("id")
	}
	cmd.AddCommand(list, create, remove, members, addMember, removeMember)
	return cmd
}
