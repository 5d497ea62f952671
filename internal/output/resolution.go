package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/StinkyLord/ibuildhw/internal/model"
	"github.com/StinkyLord/ibuildhw/internal/resolver"
	"github.com/StinkyLord/ibuildhw/internal/session"
)

type candidateJSON struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Brand      string         `json:"brand,omitempty"`
	Price      int            `json:"price"`
	Properties map[string]any `json:"properties,omitempty"`
}

type resolutionJSON struct {
	resolver.Result
	Candidates []candidateJSON `json:"candidates"`
	Error      string          `json:"error,omitempty"`
	Stale      bool            `json:"stale,omitempty"`
}

func toResolutionJSON(res resolver.Result) resolutionJSON {
	out := resolutionJSON{Result: res, Candidates: make([]candidateJSON, 0, len(res.Candidates))}
	for _, c := range res.Candidates {
		out.Candidates = append(out.Candidates, candidateJSON{
			ID:         c.ID,
			Name:       c.Name,
			Brand:      c.Brand,
			Price:      int(c.Price),
			Properties: c.Properties(),
		})
	}
	return out
}

// WriteResolution writes one slot's candidates to outputPath ("-" for
// stdout).
func WriteResolution(res resolver.Result, outputPath string, format Format) error {
	if format == FormatJSON {
		return writeJSON(outputPath, toResolutionJSON(res))
	}
	return writeText(outputPath, func(w io.Writer) error {
		return renderResolution(w, newStyles(w), res, nil)
	})
}

// WriteSlots writes the outcome of a session refresh.
func WriteSlots(slots []session.Slot, outputPath string, format Format) error {
	if format == FormatJSON {
		out := make([]resolutionJSON, 0, len(slots))
		for _, slot := range slots {
			r := toResolutionJSON(slot.Result)
			if slot.Err != nil {
				r.Error = slot.Err.Error()
			}
			r.Stale = slot.Stale
			out = append(out, r)
		}
		return writeJSON(outputPath, out)
	}
	return writeText(outputPath, func(w io.Writer) error {
		st := newStyles(w)
		for i, slot := range slots {
			if i > 0 {
				fmt.Fprintln(w)
			}
			if err := renderResolution(w, st, slot.Result, slot.Err); err != nil {
				return err
			}
		}
		return nil
	})
}

func renderResolution(w io.Writer, st styles, res resolver.Result, fetchErr error) error {
	fmt.Fprintf(w, "%s  %s\n",
		st.title.Render(strings.ToUpper(string(res.Category))),
		st.muted.Render("constraints: "+res.Constraints.String()))
	if fetchErr != nil {
		fmt.Fprintln(w, st.err.Render("catalog unavailable: "+fetchErr.Error()))
		return nil
	}
	for _, warning := range res.Warnings {
		fmt.Fprintln(w, st.warn.Render("! "+warning.Message))
	}
	for _, d := range res.Diagnostics {
		fmt.Fprintln(w, st.muted.Render("~ "+d.Message))
	}
	if len(res.Candidates) == 0 {
		fmt.Fprintln(w, st.muted.Render("(no candidates)"))
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tBRAND\tPRICE\tDETAILS")
	for _, c := range res.Candidates {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", c.ID, c.Name, c.Brand, int(c.Price), details(c))
	}
	return tw.Flush()
}

// details renders the category-specific fields as sorted key=value pairs.
func details(c *model.Component) string {
	props := c.Properties()
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, props[k]))
	}
	return strings.Join(parts, " ")
}
