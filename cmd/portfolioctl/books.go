package main

import (
	"fmt"

	"github.com/5w1tchy/portfolio-api/internal/console"
	"github.com/5w1tchy/portfolio-api/internal/models"
	"github.com/spf13/cobra"
)

type bookFlags struct {
	title, description, imageURL, buyLink, image string
}

func (f *bookFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "title")
	fl.StringVar(&f.description, "description", "", "description")
	fl.StringVar(&f.imageURL, "image-url", "", "cover image URL")
	fl.StringVar(&f.buyLink, "buy-link", "", "store link")
	fl.StringVar(&f.image, "image", "", "local image to upload as the cover")
}

func (f *bookFlags) apply(cmd *cobra.Command, p *console.BookPayload) {
	set := cmd.Flags().Changed
	if set("title") {
		p.Title = f.title
	}
	if set("description") {
		p.Description = f.description
	}
	if set("image-url") {
		p.ImageURL = f.imageURL
	}
	if set("buy-link") {
		p.BuyLink = f.buyLink
	}
}

func (a *app) booksCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "books", Short: "Manage the bookshelf"}

	var search string
	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List books",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.con.Refresh(ctx); err != nil {
				return err
			}
			printBooks(cmd.OutOrStdout(), console.Paginate(console.SearchBooks(a.con.State.Books, search), page))
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "filter by title or description")
	list.Flags().IntVar(&page, "page", 1, "page number")

	var cf bookFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a book",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var p console.BookPayload
			cf.apply(cmd, &p)
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.con.Refresh(ctx); err != nil {
				return err
			}
			b, err := a.con.CreateBook(ctx, p, cf.image)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created book %s\n", b.ID)
			printStats(cmd.OutOrStdout(), a.con.State.Stats())
			return nil
		},
	}
	cf.register(create)

	var uf bookFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a book; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			current, err := a.con.Client.Book(ctx, args[0])
			if err != nil {
				return err
			}
			p := bookPayload(current)
			uf.apply(cmd, &p)
			if err := a.con.Refresh(ctx); err != nil {
				return err
			}
			b, err := a.con.UpdateBook(ctx, args[0], p, uf.image)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated book %s\n", b.ID)
			printStats(cmd.OutOrStdout(), a.con.State.Stats())
			return nil
		},
	}
	uf.register(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.con.Refresh(ctx); err != nil {
				return err
			}
			if err := a.con.DeleteBook(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted book %s\n", args[0])
			printStats(cmd.OutOrStdout(), a.con.State.Stats())
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}

func bookPayload(b models.Book) console.BookPayload {
	return console.BookPayload{Title: b.Title, Description: b.Description, ImageURL: b.ImageURL, BuyLink: b.BuyLink}
}
