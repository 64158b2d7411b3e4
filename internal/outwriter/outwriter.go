// Package outwriter has output and writer logic.
package outwriter

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/gitwrapped/internal/contract"
	"golang.org/x/term"
)

const (
	minColumnWidth = 15
	maxColumnWidth = 70
	barWidth       = 30
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// textStyle holds the colorizers used by the text views.
type textStyle struct {
	title  func(...any) string
	accent func(...any) string
	muted  func(...any) string
	good   func(...any) string
}

// newTextStyle returns colorizers, or plain formatters when colors are off.
func newTextStyle(cfg *contract.Config) textStyle {
	if !cfg.UseColors {
		return textStyle{title: fmt.Sprint, accent: fmt.Sprint, muted: fmt.Sprint, good: fmt.Sprint}
	}
	return textStyle{
		title:  color.New(color.FgMagenta, color.Bold).SprintFunc(),
		accent: color.New(color.FgCyan).SprintFunc(),
		muted:  color.New(color.FgHiBlack).SprintFunc(),
		good:   color.New(color.FgGreen).SprintFunc(),
	}
}

// GetMaxTableNameWidth calculates the maximum width for a free text column
// (path, name or message) given how much the other columns reserve.
func GetMaxTableNameWidth(cfg *contract.Config, reserved int) int {
	// Reserve generous space for table borders, separators, and padding
	available := terminalWidth(cfg) - reserved - 20
	if available < minColumnWidth {
		return minColumnWidth
	}
	if available > maxColumnWidth {
		return maxColumnWidth
	}
	return available
}

// terminalWidth returns the width override, the detected terminal width or 80.
func terminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// parseHexColor parses #rrggbb.
func parseHexColor(hex string) (r, g, b int, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// swatch renders the author color as a dot, falling back to the hex code.
func swatch(hex string, useColors bool) string {
	if !useColors {
		return hex
	}
	r, g, b, ok := parseHexColor(hex)
	if !ok {
		return hex
	}
	return color.RGB(r, g, b).Sprint("●") + " " + hex
}

// bar renders value as a horizontal bar scaled against peak.
func bar(value, peak, width int) string {
	if value <= 0 || peak <= 0 {
		return ""
	}
	n := max(value*width/peak, 1)
	return strings.Repeat("█", n)
}

// sparkline renders values as a single row of block characters.
func sparkline(values []int) string {
	peak := 0
	for _, v := range values {
		peak = max(peak, v)
	}
	var sb strings.Builder
	for _, v := range values {
		if peak == 0 || v == 0 {
			sb.WriteRune(' ')
			continue
		}
		idx := v * (len(sparkLevels) - 1) / peak
		sb.WriteRune(sparkLevels[idx])
	}
	return sb.String()
}

// formatCount renders n with thousands separators.
func formatCount(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if neg {
		return "-" + sb.String()
	}
	return sb.String()
}

// limitRows caps n at the configured result limit.
func limitRows(n int, cfg *contract.Config) int {
	if cfg.ResultLimit > 0 && n > cfg.ResultLimit {
		return cfg.ResultLimit
	}
	return n
}
