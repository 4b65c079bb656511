package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
	"text/tabwriter"

	apiclient "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/internal/api/client"
	domain "github.com/SgO1337/mercadolibre-scraping-whatsapp-msg/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func formatPrice(p float64) string {
	return "$" + strconv.FormatFloat(p, 'f', -1, 64)
}

func printOffersTable(w io.Writer, offers []domain.Offer) error {
	tw := newTabWriter(w)
	tw.writef("ID\tTITLE\tPRICE\tSEEN\n")
	for i := range offers {
		tw.writef("%s\t%s\t%s\t%s\n",
			offers[i].ID,
			truncate(offers[i].Title, 50),
			formatPrice(offers[i].Price),
			offers[i].SeenAt.Local().Format(timeLayout),
		)
	}
	return tw.finish()
}

func printOfferDetail(w io.Writer, o *domain.Offer) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", o.ID)
	tw.writef("Title:\t%s\n", o.Title)
	tw.writef("Price:\t%s\n", formatPrice(o.Price))
	tw.writef("URL:\t%s\n", o.Permalink)
	tw.writef("First seen:\t%s\n", o.SeenAt.Local().Format(timeLayout))
	return tw.finish()
}

func printRunsTable(w io.Writer, runs []domain.Run) error {
	tw := newTabWriter(w)
	tw.writef("ID\tSTATUS\tSTARTED\tDURATION\tFETCHED\tNEW\tGONE\tERROR\n")
	for i := range runs {
		r := &runs[i]
		tw.writef("%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID,
			r.Status,
			r.StartedAt.Local().Format(timeLayout),
			r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond),
			r.Fetched,
			r.New,
			r.Disappeared,
			truncate(r.Error, 40),
		)
	}
	return tw.finish()
}

func printRunReport(w io.Writer, r *apiclient.RunReport) error {
	tw := newTabWriter(w)
	tw.writef("Run:\t%s\n", r.RunID)
	tw.writef("Status:\t%s\n", r.Status)
	tw.writef("Fetched:\t%d\n", r.Fetched)
	tw.writef("New:\t%d\n", len(r.NewOffers))
	tw.writef("Disappeared:\t%d\n", len(r.DisappearedIDs))
	if err := tw.finish(); err != nil {
		return err
	}

	if len(r.NewOffers) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return printOffersTable(w, r.NewOffers)
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to maxLen runes.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
