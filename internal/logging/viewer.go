package logging

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/fsnotify/fsnotify"
	"github.com/mattn/go-isatty"
)

// LogEntry is one line of a log file.
type LogEntry struct {
	Time     time.Time
	Level    string
	Msg      string
	Attrs    map[string]interface{}
	Raw      string // Original line
	IsJSON   bool   // Whether JSON parsing succeeded
	IsTagged bool   // A resolver diagnostic line
}

// ViewerConfig configures the log viewer.
type ViewerConfig struct {
	Level   string         // Filter by level (debug, info, warn, error)
	Pattern *regexp.Regexp // Filter by pattern
	NoColor bool           // Disable colors
}

// Viewer tails and follows log files.
type Viewer struct {
	config ViewerConfig
	out    io.Writer
	styles viewerStyles
}

type viewerStyles struct {
	debug lipgloss.Style
	info  lipgloss.Style
	warn  lipgloss.Style
	err   lipgloss.Style
	dim   lipgloss.Style
	tag   lipgloss.Style
}

// Color palette shared with the CLI output.
const (
	colorLime     = "154"
	colorGray     = "245"
	colorDarkGray = "238"
	colorRed      = "196"
	colorYellow   = "220"
	colorCyan     = "45"
)

func coloredStyles() viewerStyles {
	return viewerStyles{
		debug: lipgloss.NewStyle().Foreground(lipgloss.Color(colorGray)),
		info:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorLime)),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color(colorYellow)),
		err:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorRed)),
		dim:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorDarkGray)),
		tag:   lipgloss.NewStyle().Foreground(lipgloss.Color(colorCyan)),
	}
}

func plainStyles() viewerStyles {
	return viewerStyles{
		debug: lipgloss.NewStyle(),
		info:  lipgloss.NewStyle(),
		warn:  lipgloss.NewStyle(),
		err:   lipgloss.NewStyle(),
		dim:   lipgloss.NewStyle(),
		tag:   lipgloss.NewStyle(),
	}
}

// NewViewer creates a log viewer. Colors are used only when out is a terminal,
// NO_COLOR is unset, and cfg.NoColor is false.
func NewViewer(cfg ViewerConfig, out io.Writer) *Viewer {
	if !cfg.NoColor && (!IsTTY(out) || DetectNoColor()) {
		cfg.NoColor = true
	}

	styles := coloredStyles()
	if cfg.NoColor {
		styles = plainStyles()
	}

	return &Viewer{
		config: cfg,
		out:    out,
		styles: styles,
	}
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor checks if the NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// Tail reads the last n lines from a log file and returns matching entries.
func (v *Viewer) Tail(path string, n int) ([]LogEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	const maxCapacity = 1024 * 1024
	scanner.Buffer(make([]byte, maxCapacity), maxCapacity)

	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log file: %w", err)
	}

	if n > 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}

	var entries []LogEntry
	for _, line := range lines {
		entry := v.parseLine(line)
		if v.matchesFilter(entry) {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// Follow watches a log file and sends new entries to the channel until ctx
// is cancelled. The file does not need to exist yet; following starts from
// its current end, or from the beginning once it is created.
func (v *Viewer) Follow(ctx context.Context, path string, entries chan<- LogEntry) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	t := &tailer{path: path}
	if err := t.open(true); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	defer t.close()

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}

			switch {
			case ev.Has(fsnotify.Create):
				t.close()
				if err := t.open(false); err != nil {
					continue
				}
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				t.close()
				continue
			case ev.Has(fsnotify.Write):
				if t.file == nil {
					if err := t.open(false); err != nil {
						continue
					}
				}
			default:
				continue
			}

			for _, line := range t.readLines() {
				entry := v.parseLine(line)
				if !v.matchesFilter(entry) {
					continue
				}
				select {
				case entries <- entry:
				case <-ctx.Done():
					return nil
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", path, err)
		}
	}
}

// tailer reads complete lines appended to a file, holding back partial ones.
type tailer struct {
	path    string
	file    *os.File
	reader  *bufio.Reader
	pending string
}

func (t *tailer) open(seekEnd bool) error {
	f, err := os.Open(t.path)
	if err != nil {
		return err
	}
	if seekEnd {
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to seek to end: %w", err)
		}
	}
	t.file = f
	t.reader = bufio.NewReader(f)
	t.pending = ""
	return nil
}

func (t *tailer) close() {
	if t.file != nil {
		_ = t.file.Close()
		t.file = nil
		t.reader = nil
	}
}

func (t *tailer) readLines() []string {
	if t.reader == nil {
		return nil
	}

	var lines []string
	for {
		chunk, err := t.reader.ReadString('\n')
		if err != nil {
			t.pending += chunk
			return lines
		}
		line := strings.TrimRight(t.pending+chunk, "\r\n")
		t.pending = ""
		if line != "" {
			lines = append(lines, line)
		}
	}
}

// Print prints entries to the output.
func (v *Viewer) Print(entries []LogEntry) {
	for _, entry := range entries {
		_, _ = fmt.Fprintln(v.out, v.FormatEntry(entry))
	}
}

// FormatEntry formats a log entry for display.
func (v *Viewer) FormatEntry(entry LogEntry) string {
	if entry.IsTagged {
		return v.styles.tag.Render(entry.Raw)
	}
	if !entry.IsJSON {
		return v.levelStyle(entry.Level).Render(entry.Raw)
	}

	timestamp := v.styles.dim.Render(entry.Time.Format("15:04:05.000"))
	level := v.formatLevel(entry.Level)

	var attrs []string
	for k, val := range entry.Attrs {
		attrs = append(attrs, fmt.Sprintf("%s=%v", k, val))
	}
	sort.Strings(attrs)

	attrStr := ""
	if len(attrs) > 0 {
		attrStr = " " + strings.Join(attrs, " ")
	}

	return fmt.Sprintf("%s %s %s%s", timestamp, level, entry.Msg, attrStr)
}

// textLevelRe matches the level key of slog's text handler.
var textLevelRe = regexp.MustCompile(`(?:^|\s)level=([A-Za-z]+)`)

// parseLine parses a JSON or text log line into a LogEntry.
func (v *Viewer) parseLine(line string) LogEntry {
	entry := LogEntry{Raw: line, Msg: line}

	if strings.HasPrefix(line, Tag+":") {
		entry.IsTagged = true
		entry.Level = "error"
		return entry
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(line), &data); err != nil {
		if m := textLevelRe.FindStringSubmatch(line); m != nil {
			entry.Level = strings.ToLower(m[1])
		}
		return entry
	}

	entry.IsJSON = true
	if t, ok := data["time"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			entry.Time = parsed
		}
	}
	if l, ok := data["level"].(string); ok {
		entry.Level = strings.ToLower(l)
	}
	if m, ok := data["msg"].(string); ok {
		entry.Msg = m
	}

	entry.Attrs = make(map[string]interface{})
	for k, val := range data {
		if k != "time" && k != "level" && k != "msg" {
			entry.Attrs[k] = val
		}
	}

	return entry
}

// matchesFilter checks if an entry matches the configured filters.
// Lines without a level pass the level filter.
func (v *Viewer) matchesFilter(entry LogEntry) bool {
	if v.config.Level != "" && entry.Level != "" {
		if LevelFromString(entry.Level) < LevelFromString(v.config.Level) {
			return false
		}
	}

	if v.config.Pattern != nil && !v.config.Pattern.MatchString(entry.Raw) {
		return false
	}

	return true
}

func (v *Viewer) levelStyle(level string) lipgloss.Style {
	switch strings.ToLower(level) {
	case "debug":
		return v.styles.debug
	case "info":
		return v.styles.info
	case "warn", "warning":
		return v.styles.warn
	case "error":
		return v.styles.err
	default:
		return lipgloss.NewStyle()
	}
}

// formatLevel pads the level to five columns and colors it.
func (v *Viewer) formatLevel(level string) string {
	levelStr := strings.ToUpper(level)
	if len(levelStr) > 5 {
		levelStr = levelStr[:5]
	}
	levelStr = fmt.Sprintf("%-5s", levelStr)
	return v.levelStyle(level).Render(levelStr)
}
