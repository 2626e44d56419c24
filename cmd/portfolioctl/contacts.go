package main

import (
	"fmt"

	"github.com/5w1tchy/portfolio-api/internal/console"
	"github.com/spf13/cobra"
)

func (a *app) contactsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "contacts", Short: "Read the contact inbox"}

	var search string
	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List messages, newest first (* = unread)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.con.Refresh(ctx); err != nil {
				return err
			}
			printContacts(cmd.OutOrStdout(), console.Paginate(console.SearchContacts(a.con.State.Contacts, search), page))
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "filter by name, email, subject or message")
	list.Flags().IntVar(&page, "page", 1, "page number")

	var unseen bool
	seen := &cobra.Command{
		Use:   "seen <id>",
		Short: "Mark a message read (or unread with --unseen)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.con.Refresh(ctx); err != nil {
				return err
			}
			c, err := a.con.MarkSeen(ctx, id, !unseen)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Message #%d seen=%t\n", c.ID, c.Seen)
			printStats(cmd.OutOrStdout(), a.con.State.Stats())
			return nil
		},
	}
	seen.Flags().BoolVar(&unseen, "unseen", false, "mark as unread instead")

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.con.Refresh(ctx); err != nil {
				return err
			}
			if err := a.con.DeleteContact(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted message #%d\n", id)
			printStats(cmd.OutOrStdout(), a.con.State.Stats())
			return nil
		},
	}

	cmd.AddCommand(list, seen, del)
	return cmd
}
