package service

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"yatube/app/models"
	"yatube/app/services"

	"github.com/spf13/cobra"
)

func cmdUsers(load configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
	}
	cmd.AddCommand(cmdUsersCreate(load))
	return cmd
}

func cmdUsersCreate(load configLoader) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an account; the password is read from stdin unless --password is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return errors.New("no password given")
				}
				password = strings.TrimRight(line, "\r\n")
			}

			store, err := openExisting(load)
			if err != nil {
				return err
			}
			defer store.Close()

			// Registration never issues tokens, so no signing key is needed here
			users := services.NewUserService(store.Users(), nil)
			user, err := users.Register(args[0], password)
			if err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "account password (at least 8 characters)")
	return cmd
}

func cmdGroups(load configLoader) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Manage groups; the API only reads them",
	}
	cmd.AddCommand(cmdGroupsCreate(load), cmdGroupsList(load))
	return cmd
}

func cmdGroupsCreate(load configLoader) *cobra.Command {
	var group models.Group

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openExisting(load)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := services.NewGroupService(store.Groups()).CreateGroup(&group); err != nil {
				return describe(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created group %s (id %d)\n", group.Slug, group.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&group.Title, "title", "", "group title")
	cmd.Flags().StringVar(&group.Slug, "slug", "", "unique slug")
	cmd.Flags().StringVar(&group.Description, "description", "", "group description")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("slug")
	return cmd
}

func cmdGroupsList(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openExisting(load)
			if err != nil {
				return err
			}
			defer store.Close()

			groups, err := services.NewGroupService(store.Groups()).ListGroups()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, g := range groups {
				fmt.Fprintf(out, "%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
			}
			return nil
		},
	}
}

// describe flattens field errors into one line for the terminal.
func describe(err error) error {
	var invalid *services.ValidationError
	if errors.As(err, &invalid) {
		return errors.New(strings.TrimPrefix(invalid.Error(), "invalid input: "))
	}
	return err
}
