package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"

	"github.com/StinkyLord/ibuildhw/internal/build"
	"github.com/StinkyLord/ibuildhw/internal/model"
	"github.com/StinkyLord/ibuildhw/internal/resolver"
)

// Report is the machine-readable build summary.
type Report struct {
	SerialNumber string              `json:"serialNumber"`
	Metadata     reportMetadata      `json:"metadata"`
	Name         string              `json:"name"`
	Purpose      string              `json:"purpose,omitempty"`
	Components   []reportComponent   `json:"components"`
	Open         []model.Category    `json:"open"`
	TotalPrice   int                 `json:"totalPrice"`
	Conflicts    []resolver.Conflict `json:"conflicts"`
	Request      build.BuildRequest  `json:"request"`
}

type reportMetadata struct {
	Timestamp string     `json:"timestamp"`
	Tool      reportTool `json:"tool"`
}

type reportTool struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type reportComponent struct {
	Category   model.Category `json:"category"`
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Brand      string         `json:"brand,omitempty"`
	Price      int            `json:"price"`
	Properties map[string]any `json:"properties,omitempty"`
}

// BuildReport summarizes state. Conflicts come from resolver.Audit.
func BuildReport(state build.State, conflicts []resolver.Conflict, name, purpose, toolVersion string) Report {
	comps := make([]reportComponent, 0, state.Len())
	for _, c := range state.Selected() {
		comps = append(comps, reportComponent{
			Category:   c.Category,
			ID:         c.ID,
			Name:       c.Name,
			Brand:      c.Brand,
			Price:      int(c.Price),
			Properties: c.Properties(),
		})
	}
	if conflicts == nil {
		conflicts = []resolver.Conflict{}
	}
	open := state.Open(model.HardwareCategories)
	if open == nil {
		open = []model.Category{}
	}
	req := state.Request(name, purpose)
	return Report{
		SerialNumber: "urn:uuid:" + uuid.NewString(),
		Metadata: reportMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Tool:      reportTool{Name: "ibuildhw", Version: toolVersion},
		},
		Name:       name,
		Purpose:    req.Purpose,
		Components: comps,
		Open:       open,
		TotalPrice: build.TotalPrice(state),
		Conflicts:  conflicts,
		Request:    req,
	}
}

// WriteStatus writes the report to outputPath ("-" for stdout).
func WriteStatus(report Report, outputPath string, format Format) error {
	if format == FormatJSON {
		return writeJSON(outputPath, report)
	}
	return writeText(outputPath, func(w io.Writer) error {
		return renderStatus(w, newStyles(w), report)
	})
}

func renderStatus(w io.Writer, st styles, r Report) error {
	title := r.Name
	if title == "" {
		title = "Untitled build"
	}
	fmt.Fprintln(w, st.title.Render(title))
	if r.Purpose != "" {
		fmt.Fprintln(w, st.muted.Render("purpose: "+r.Purpose))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLOT\tID\tNAME\tPRICE")
	for _, c := range r.Components {
		if c.Category == model.CategoryPurpose {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", c.Category, c.ID, c.Name, c.Price)
	}
	fmt.Fprintf(tw, "TOTAL\t\t\t%d\n", r.TotalPrice)
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(r.Open) > 0 {
		names := make([]string, 0, len(r.Open))
		for _, c := range r.Open {
			names = append(names, string(c))
		}
		fmt.Fprintln(w, st.muted.Render("open: "+strings.Join(names, ", ")))
	}
	for _, c := range r.Conflicts {
		fmt.Fprintln(w, st.err.Render("conflict: "+c.Message))
	}
	return nil
}
