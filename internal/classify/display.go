package classify

import (
	"fmt"
	"io"
	"strings"

	"photo-delivery/internal/selection"
)

var rule = strings.Repeat("=", 60)

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// PrintSelectionInfo writes the event metadata and the selector's own
// statistics, with N/A and zero for anything the export left out.
func PrintSelectionInfo(out io.Writer, set *selection.Set) {
	var summary selection.Summary
	if set.Summary != nil {
		summary = *set.Summary
	}

	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "SELECTION FILE")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Name:         %s\n", orNA(set.Name.String()))
	fmt.Fprintf(out, "Client:       %s\n", orNA(set.Client.String()))
	fmt.Fprintf(out, "Event date:   %s\n", orNA(set.EventDate.String()))
	fmt.Fprintf(out, "Total photos: %d\n", set.TotalPhotos)
	fmt.Fprintln(out, "\nSelector statistics:")
	fmt.Fprintf(out, "  - Amplify:      %d\n", summary.Amplify)
	fmt.Fprintf(out, "  - Print:        %d\n", summary.Print)
	fmt.Fprintf(out, "  - Social:       %d\n", summary.Social)
	fmt.Fprintf(out, "  - Invitation:   %d\n", summary.Invitation)
	fmt.Fprintf(out, "  - Discard:      %d\n", summary.Discard)
	fmt.Fprintf(out, "  - Unclassified: %d\n", summary.Unclassified)
	fmt.Fprintln(out, rule)
}

// PrintChangeRequests writes the client's change notes for operator review.
// Nothing is written when there are none.
func PrintChangeRequests(out io.Writer, cr selection.ChangeRequests) {
	if len(cr.General) > 0 {
		fmt.Fprintln(out, "\nCHANGE REQUESTS:")
		fmt.Fprintln(out, rule)
		for _, note := range cr.General {
			fmt.Fprintf(out, "  %s\n", note)
		}
	}
	if len(cr.Video) > 0 {
		fmt.Fprintln(out, "\nVIDEO CHANGE REQUESTS:")
		fmt.Fprintln(out, rule)
		for _, note := range cr.Video {
			fmt.Fprintf(out, "  %s: %s\n", orNA(note.Minute.String()), note.Change)
		}
	}
	if len(cr.Photos) > 0 {
		fmt.Fprintln(out, "\nPHOTO CHANGE REQUESTS:")
		fmt.Fprintln(out, rule)
		for _, note := range cr.Photos {
			fmt.Fprintf(out, "  Photo #%s: %s\n", orNA(note.PhotoNumber.String()), note.Change)
		}
	}
	if cr.Unreadable {
		fmt.Fprintln(out, "\nSome change requests could not be read; check sugerencias_de_cambios in the selection file.")
	}
}
