package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/bnema/wlhandle/internal/config"
	"github.com/bnema/wlhandle/internal/wayland"
	"github.com/charmbracelet/lipgloss"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Render writes r to w in the given output format.
func Render(w io.Writer, format string, r wayland.Report) error {
	switch format {
	case config.OutputJSON:
		return RenderJSON(w, r)
	case config.OutputText, "":
		_, err := io.WriteString(w, RenderText(r))
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// RenderText formats r for a terminal.
func RenderText(r wayland.Report) string {
	var b strings.Builder

	display := r.Display
	if display == "" {
		display = "$WAYLAND_DISPLAY"
	}
	b.WriteString(FormatHeader("Wayland display " + display))
	b.WriteString("\n")

	b.WriteString(SubheaderStyle.Render(fmt.Sprintf("Globals (%d)", len(r.Globals))))
	b.WriteString("\n")
	width := 0
	for _, g := range r.Globals {
		width = max(width, lipgloss.Width(g.Interface))
	}
	for _, g := range r.Globals {
		line := TableCellStyle.Width(width+2).Render(g.Interface) +
			TableCellStyle.Render(fmt.Sprintf("v%d", g.Version)) +
			SubtleStyle.Render(fmt.Sprintf("name %d", g.Name))
		if g.Bound {
			line += "  " + SuccessStyle.Render(fmt.Sprintf("bound v%d", g.BoundVersion))
		}
		b.WriteString("  " + FormatStatus(g.Bound, line) + "\n")
	}

	if r.Seat != nil {
		b.WriteString(SubheaderStyle.Render("Seat"))
		b.WriteString("\n")
		name := r.Seat.Name
		if name == "" {
			name = "(unnamed)"
		}
		caps := capabilities(*r.Seat)
		if len(caps) == 0 {
			caps = []string{"no input devices"}
		}
		b.WriteString(FormatListItem(fmt.Sprintf("%s (name %d): %s", name, r.Seat.ID, strings.Join(caps, ", ")), true))
		b.WriteString("\n")
	}

	if len(r.ShmFormats) > 0 {
		b.WriteString(SubheaderStyle.Render("Shm formats"))
		b.WriteString("\n")
		names := make([]string, len(r.ShmFormats))
		for i, f := range r.ShmFormats {
			names[i] = ShmFormatName(f)
		}
		b.WriteString(FormatListItem(strings.Join(names, ", "), false))
		b.WriteString("\n")
	}

	if r.Pings > 0 {
		b.WriteString(InfoStyle.Render(fmt.Sprintf("%s answered %d ping(s)", IconInfo, r.Pings)))
		b.WriteString("\n")
	}
	return b.String()
}

// ReportStruct converts r into a protobuf Struct.
func ReportStruct(r wayland.Report) (*structpb.Struct, error) {
	globals := make([]any, 0, len(r.Globals))
	for _, g := range r.Globals {
		entry := map[string]any{
			"name":      g.Name,
			"interface": g.Interface,
			"version":   g.Version,
			"bound":     g.Bound,
		}
		if g.Bound {
			entry["boundVersion"] = g.BoundVersion
		}
		globals = append(globals, entry)
	}

	formats := make([]any, 0, len(r.ShmFormats))
	for _, f := range r.ShmFormats {
		formats = append(formats, ShmFormatName(f))
	}

	fields := map[string]any{
		"display":    r.Display,
		"globals":    globals,
		"shmFormats": formats,
		"pings":      r.Pings,
	}
	if r.Seat != nil {
		caps := make([]any, 0, 3)
		for _, c := range capabilities(*r.Seat) {
			caps = append(caps, c)
		}
		fields["seat"] = map[string]any{
			"registryName": r.Seat.ID,
			"name":         r.Seat.Name,
			"capabilities": caps,
		}
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return s, nil
}

// RenderJSON writes r as indented JSON.
func RenderJSON(w io.Writer, r wayland.Report) error {
	s, err := ReportStruct(r)
	if err != nil {
		return err
	}
	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

func capabilities(s wayland.SeatInfo) []string {
	var caps []string
	if s.HasPointer {
		caps = append(caps, "pointer")
	}
	if s.HasKeyboard {
		caps = append(caps, "keyboard")
	}
	if s.HasTouch {
		caps = append(caps, "touch")
	}
	return caps
}

// ShmFormatName names a wl_shm format. The two formats every compositor
// supports have their own codes; the rest are DRM fourcc codes.
func ShmFormatName(format uint32) string {
	switch format {
	case 0:
		return "argb8888"
	case 1:
		return "xrgb8888"
	}
	code := []byte{byte(format), byte(format >> 8), byte(format >> 16), byte(format >> 24)}
	for _, c := range code {
		if c < 0x20 || c > 0x7e {
			return fmt.Sprintf("0x%08x", format)
		}
	}
	return strings.TrimRight(string(code), " ")
}
