package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/5w1tchy/portfolio-api/internal/console"
	"github.com/5w1tchy/portfolio-api/internal/models"
)

func printStats(w io.Writer, s console.Stats) {
	fmt.Fprintf(w, "contents=%d books=%d unread=%d\n", s.Contents, s.Books, s.UnreadMessages)
}

func pageFooter(w io.Writer, total, page, pages int) {
	if total == 0 {
		fmt.Fprintln(w, "(nothing found)")
		return
	}
	fmt.Fprintf(w, "page %d/%d, %d total\n", page, pages, total)
}

func printContents(w io.Writer, p console.Page[models.Content]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORY\tSLUG\tPUBLISHED\tFEATURED")
	for _, c := range p.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%t\n", c.ID, truncate(c.Title, 40), c.Category, c.Slug, c.PublishedDate.Format("2006-01-02"), c.Featured)
	}
	_ = tw.Flush()
	pageFooter(w, p.Total, p.Page, p.Pages)
}

func printContent(w io.Writer, c models.Content) {
	fmt.Fprintf(w, "#%d %s\n", c.ID, c.Title)
	fmt.Fprintf(w, "slug: %s\ncategory: %s\npublished: %s\nfeatured: %t\n", c.Slug, c.Category, c.PublishedDate.Format("2006-01-02"), c.Featured)
	if c.ImageURL != nil {
		fmt.Fprintf(w, "image: %s\n", *c.ImageURL)
	}
	if c.DocLink != nil {
		fmt.Fprintf(w, "doc: %s\n", *c.DocLink)
	}
	fmt.Fprintf(w, "\n%s\n\n%s\n", c.Description, c.Body)
}

func printBooks(w io.Writer, p console.Page[models.Book]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tBUY LINK")
	for _, b := range p.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.ID, truncate(b.Title, 40), b.BuyLink)
	}
	_ = tw.Flush()
	pageFooter(w, p.Total, p.Page, p.Pages)
}

func printContacts(w io.Writer, p console.Page[models.Contact]) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\t\tFROM\tSUBJECT\tRECEIVED")
	for _, c := range p.Items {
		mark := "*"
		if c.Seen {
			mark = ""
		}
		fmt.Fprintf(tw, "%d\t%s\t%s <%s>\t%s\t%s\n", c.ID, mark, c.Name, c.Email, truncate(c.Subject, 40), c.CreatedAt.Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
	pageFooter(w, p.Total, p.Page, p.Pages)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
