// Package export renders caption segments into common subtitle formats.
package export

import (
	"fmt"
	"strings"

	"github.com/opencaption/captiond/internal/domain/model"
)

// Format identifies a subtitle output format.
type Format string

const (
	// FormatSRT is the SubRip format ("HH:MM:SS,mmm" timestamps).
	FormatSRT Format = "srt"
	// FormatVTT is the WebVTT format ("HH:MM:SS.mmm" timestamps).
	FormatVTT Format = "vtt"
)

// Valid returns true for a known subtitle format.
func (f Format) Valid() bool {
	return f == FormatSRT || f == FormatVTT
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatVTT {
		return "text/vtt; charset=utf-8"
	}
	return "application/x-subrip; charset=utf-8"
}

// Render produces the subtitle document for the segments in their original
// temporal order.
func Render(format Format, segments []model.CaptionSegment) string {
	if format == FormatVTT {
		return renderVTT(segments)
	}
	return renderSRT(segments)
}

func renderSRT(segments []model.CaptionSegment) string {
	var b strings.Builder
	for i, seg := range segments {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", timestamp(seg.Start, ","), timestamp(seg.End, ","))
		b.WriteString(strings.TrimSpace(seg.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}

func renderVTT(segments []model.CaptionSegment) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, seg := range segments {
		fmt.Fprintf(&b, "%s --> %s\n", timestamp(seg.Start, "."), timestamp(seg.End, "."))
		b.WriteString(strings.TrimSpace(seg.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}

// timestamp formats seconds as HH:MM:SS<sep>mmm. Negative inputs clamp to
// zero rather than producing malformed cues.
func timestamp(seconds float64, sep string) string {
	if seconds < 0 {
		seconds = 0
	}
	totalMillis := int64(seconds*1000 + 0.5)
	hours := totalMillis / 3_600_000
	minutes := (totalMillis % 3_600_000) / 60_000
	secs := (totalMillis % 60_000) / 1000
	millis := totalMillis % 1000
	return fmt.Sprintf("%02d:%02d:%02d%s%03d", hours, minutes, secs, sep, millis)
}
