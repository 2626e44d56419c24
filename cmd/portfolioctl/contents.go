package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/5w1tchy/portfolio-api/internal/console"
	"github.com/5w1tchy/portfolio-api/internal/models"
	"github.com/5w1tchy/portfolio-api/internal/validate"
	"github.com/spf13/cobra"
)

type contentFlags struct {
	title, description, body, bodyFile string
	category, slug, docLink, imageURL  string
	published                          string
	featured                           bool
	image                              string
}

func (f *contentFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "title")
	fl.StringVar(&f.description, "description", "", "short description")
	fl.StringVar(&f.body, "body", "", "body text")
	fl.StringVar(&f.bodyFile, "body-file", "", "read the body from a file")
	fl.StringVar(&f.category, "category", "", "category, e.g. blog, novel, story")
	fl.StringVar(&f.slug, "slug", "", "URL slug (derived from the title on create when empty)")
	fl.StringVar(&f.docLink, "doc-link", "", "link to an external document")
	fl.StringVar(&f.imageURL, "image-url", "", "cover image URL")
	fl.StringVar(&f.published, "published", "", "publish date, YYYY-MM-DD or RFC 3339")
	fl.BoolVar(&f.featured, "featured", false, "show on the landing page")
	fl.StringVar(&f.image, "image", "", "local image to upload as the cover")
}

// apply copies every flag the user set onto p.
func (f *contentFlags) apply(cmd *cobra.Command, p *console.ContentPayload) error {
	set := cmd.Flags().Changed
	if set("title") {
		p.Title = f.title
	}
	if set("description") {
		p.Description = f.description
	}
	if set("body") {
		p.Body = f.body
	}
	if set("body-file") {
		b, err := os.ReadFile(f.bodyFile)
		if err != nil {
			return err
		}
		p.Body = string(b)
	}
	if set("category") {
		p.Category = f.category
	}
	if set("slug") {
		p.Slug = f.slug
	}
	if set("doc-link") {
		p.DocLink = &f.docLink
	}
	if set("image-url") {
		p.ImageURL = &f.imageURL
	}
	if set("published") {
		t, err := parseDate(f.published)
		if err != nil {
			return err
		}
		p.PublishedDate = &t
	}
	if set("featured") {
		p.Featured = &f.featured
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --published %q", s)
	}
	return t, nil
}

func payloadFromContent(c models.Content) console.ContentPayload {
	published := c.PublishedDate
	featured := c.Featured
	return console.ContentPayload{
		Title:         c.Title,
		Description:   c.Description,
		Body:          c.Body,
		Category:      c.Category,
		Slug:          c.Slug,
		DocLink:       c.DocLink,
		ImageURL:      c.ImageURL,
		PublishedDate: &published,
		Featured:      &featured,
	}
}

func (a *app) contentsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "contents", Short: "Manage posts, stories and novels"}

	var search string
	var page int
	list := &cobra.Command{
		Use:   "list",
		Short: "List contents, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.con.Refresh(ctx); err != nil {
				return err
			}
			found := console.SearchContents(a.con.State.Contents, search)
			printContents(cmd.OutOrStdout(), console.Paginate(found, page))
			return nil
		},
	}
	list.Flags().StringVar(&search, "search", "", "filter by title, description or category")
	list.Flags().IntVar(&page, "page", 1, "page number")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx()
			defer cancel()
			c, err := a.con.Client.Content(ctx, id)
			if err != nil {
				return err
			}
			printContent(cmd.OutOrStdout(), c)
			return nil
		},
	}

	var cf contentFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a content",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var p console.ContentPayload
			if err := cf.apply(cmd, &p); err != nil {
				return err
			}
			if p.Slug == "" {
				p.Slug = validate.Slugify(p.Title)
			}
			ctx, cancel := a.ctx()
			defer cancel()
			if err := a.con.Refresh(ctx); err != nil {
				return err
			}
			c, err := a.con.CreateContent(ctx, p, cf.image)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created content #%d (%s)\n", c.ID, c.Slug)
			printStats(cmd.OutOrStdout(), a.con.State.Stats())
			return nil
		},
	}
	cf.register(create)

	var uf contentFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a content; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := a.ctx()
			defer cancel()
			current, err := a.con.Client.Content(ctx, id)
			if err != nil {
				return err
			}
			p := payloadFromContent(current)
			if err := uf.apply(cmd, &p); err != nil {
				return err
			}
			if err := a.con.Refresh(ctx); err != nil {
				return err
			}
			c, err := a.con.UpdateContent(ctx, id, p, uf.image)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated content #%d (%s)\n", c.ID, c.Slug)
			printStats(cmd.OutOrStdout(), a.con.State.Stats())
			return nil
		},
	}
	uf.register(update)

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a content",
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
			if err := a.con.DeleteContent(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted content #%d\n", id)
			printStats(cmd.OutOrStdout(), a.con.State.Stats())
			return nil
		},
	}

	cmd.AddCommand(list, show, create, update, del)
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
