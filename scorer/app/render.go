package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatYAML, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Render 输出 Report、WaitReport 或它们的切片
func Render(w io.Writer, f Format, v any) error {
	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	default:
		return renderText(w, v)
	}
}

func renderText(w io.Writer, v any) error {
	var b strings.Builder
	switch r := v.(type) {
	case Report:
		writeReport(&b, r)
	case []Report:
		for i, rep := range r {
			if i > 0 {
				b.WriteString("\n")
			}
			writeReport(&b, rep)
		}
	case WaitReport:
		writeWaits(&b, r)
	default:
		return fmt.Errorf("cannot render %T as text", v)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeReport(b *strings.Builder, r Report) {
	if r.ID != "" {
		fmt.Fprintf(b, "[%s]\n", r.ID)
	}
	if r.Rejected() {
		fmt.Fprintf(b, "拒絕 (%s): %s\n", r.Rejection, r.Reason)
		return
	}
	fmt.Fprintf(b, "總計：%d 台\n", r.Total)
	for _, it := range r.Items {
		fmt.Fprintf(b, "  %s (%d台)\n", it.Label, it.Points)
	}
}

func writeWaits(b *strings.Builder, r WaitReport) {
	if r.ID != "" {
		fmt.Fprintf(b, "[%s]\n", r.ID)
	}
	if len(r.Waits) == 0 {
		fmt.Fprintf(b, "未聽牌 (%d 槽位)\n", r.Slots)
		return
	}
	names := make([]string, len(r.Waits))
	for i, wt := range r.Waits {
		names[i] = fmt.Sprintf("%s x%d", wt.Tile, wt.Remaining)
	}
	fmt.Fprintf(b, "聽：%s\n", strings.Join(names, ", "))
}
