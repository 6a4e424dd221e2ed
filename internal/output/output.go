package output

import (
	"fmt"
	"io"
	"time"
)

type Formatter struct {
	w io.Writer
}

func NewFormatter(w io.Writer) *Formatter {
	return &Formatter{w: w}
}

func (f *Formatter) Connecting(host string, port int) {
	fmt.Fprintf(f.w, "🔌 Connecting to OBS at %s:%d...\n", host, port)
}

func (f *Formatter) RecordingStarted(stopFromCLI bool) {
	fmt.Fprintf(f.w, "🔴 Recording started. Stop it from OBS when you are done.\n")
	if stopFromCLI {
		fmt.Fprintf(f.w, "   (Or press Enter here to stop from the CLI)\n")
	}
}

func (f *Formatter) RecordedFile(path string) {
	fmt.Fprintf(f.w, "📁 Recorded file: %s\n", path)
}

func (f *Formatter) Sending(path string) {
	fmt.Fprintf(f.w, "📤 Sending file for transcription: %s\n", path)
}

func (f *Formatter) Transcription(language, text string) {
	fmt.Fprintf(f.w, "\n📝 Transcription (%s):\n", language)
	fmt.Fprintf(f.w, "   %s\n", text)
}

func (f *Formatter) TranscriptionStats(processingTime float64, model string, segments int) {
	fmt.Fprintf(f.w, "\n⏱️  Processing time: %.2fs\n", processingTime)
	fmt.Fprintf(f.w, "🤖 Model used: %s\n", model)
	fmt.Fprintf(f.w, "📊 Segments: %d\n", segments)
}

func (f *Formatter) Copied() {
	fmt.Fprintf(f.w, "📋 Transcription copied to clipboard\n")
}

func (f *Formatter) Stored(id int64, dbPath string) {
	fmt.Fprintf(f.w, "💾 Saved to database (ID: %d)\n", id)
	fmt.Fprintf(f.w, "   📁 DB: %s\n", dbPath)
}

func (f *Formatter) ListHeader(count int) {
	fmt.Fprintf(f.w, "📚 Last %d transcriptions:\n\n", count)
}

func (f *Formatter) RecordHeader(id int64, createdAt time.Time) {
	fmt.Fprintf(f.w, "━━━ ID: %d ━━━\n", id)
	if !createdAt.IsZero() {
		fmt.Fprintf(f.w, "📅 %s\n", createdAt.Format("2006-01-02 15:04:05"))
	}
}

func (f *Formatter) RecordMeta(language string, processingTime float64, model string) {
	fmt.Fprintf(f.w, "🌐 Language: %s | ⏱️ %.2fs | 🤖 %s\n", language, processingTime, model)
}

func (f *Formatter) RecordSource(path string) {
	fmt.Fprintf(f.w, "📁 File: %s\n", path)
}

func (f *Formatter) RecordPreview(text string) {
	if len(text) > 100 {
		text = text[:100] + "..."
	}
	fmt.Fprintf(f.w, "📝 %s\n", text)
}

func (f *Formatter) RecordText(text string) {
	fmt.Fprintf(f.w, "\n📝 Full transcription:\n%s\n", text)
}

func (f *Formatter) SegmentsHeader() {
	fmt.Fprintf(f.w, "📊 Segments:\n")
}

func (f *Formatter) SegmentLine(start, end float64, text string) {
	fmt.Fprintf(f.w, "   [%.2fs - %.2fs] %s\n", start, end, text)
}

func (f *Formatter) RecordStatus(active bool, timecode string) {
	if active {
		fmt.Fprintf(f.w, "   Recording: 🔴 RECORDING\n")
		if timecode != "" {
			fmt.Fprintf(f.w, "   Duration: %s\n", timecode)
		}
	} else {
		fmt.Fprintf(f.w, "   Recording: ⚪ STOPPED\n")
	}
}

func (f *Formatter) OBSVersion(obsVersion, wsVersion string) {
	fmt.Fprintf(f.w, "\n📊 OBS status:\n")
	fmt.Fprintf(f.w, "   OBS version: %s\n", obsVersion)
	fmt.Fprintf(f.w, "   WebSocket version: %s\n", wsVersion)
}

func (f *Formatter) Event(when time.Time, name, detail string) {
	fmt.Fprintf(f.w, "[%s] 📡 %s %s\n", when.Format("2006-01-02 15:04:05"), name, detail)
}

func (f *Formatter) Error(msg string) {
	fmt.Fprintf(f.w, "❌ %s\n", msg)
}

func (f *Formatter) Info(msg string) {
	fmt.Fprintf(f.w, "ℹ️  %s\n", msg)
}

func (f *Formatter) Success(msg string) {
	fmt.Fprintf(f.w, "✅ %s\n", msg)
}

func (f *Formatter) Warning(msg string) {
	fmt.Fprintf(f.w, "⚠️  %s\n", msg)
}

func (f *Formatter) SetupCheck(name string, ok bool, detail string) {
	if ok {
		fmt.Fprintf(f.w, "  ✅ %s: %s\n", name, detail)
	} else {
		fmt.Fprintf(f.w, "  ❌ %s: %s\n", name, detail)
	}
}
