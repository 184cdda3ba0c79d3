package viewer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const columns = "ID\tManufacturer\tModel\tYear\tPrice\tColor"

// Render writes the snapshot as an aligned table followed by the error
// line, if any.  Prices use the English digit grouping.
func Render(w io.Writer, s Snapshot) error {
	p := message.NewPrinter(language.English)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, columns)
	for _, r := range s.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			r.ID, r.Manufacturer, r.Model, r.Year, p.Sprintf("%.2f", r.Price), r.ColorOr("-"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if s.ErrorText != "" {
		if _, err := fmt.Fprintln(w, s.ErrorText); err != nil {
			return err
		}
	}
	return nil
}
