// Package ui provides the terminal editor for the dataset.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/paceview/paceview/internal/bus"
	"github.com/paceview/paceview/internal/config"
	"github.com/paceview/paceview/internal/dataset"
	"github.com/paceview/paceview/internal/store"
	"github.com/paceview/paceview/internal/utils"
)

const (
	dateColWidth  = 12
	valueColWidth = 14
	toastDuration = 3 * time.Second
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	hiddenStyle = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// RunEditor starts the dataset editor. The editor is the only writer of
// the dataset; every successful mutation publishes a snapshot on b.
func RunEditor(ctx context.Context, cfg *config.Config, b *bus.Bus, dataPath string) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("edit requires a TTY")
	}

	cache := store.New(cfg.CacheDir)
	ds, source, err := initialDataset(dataPath, cache)
	if err != nil {
		return err
	}

	model := newEditorModel(cfg, ds, b, cache, dataPath)
	model.notify(fmt.Sprintf("Loaded %s", source), false)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}

// initialDataset resolves the dataset to edit: the data file when
// present, otherwise the autosave cache, otherwise the built-in default.
func initialDataset(dataPath string, cache *store.Store) (*dataset.Dataset, string, error) {
	if _, err := os.Stat(dataPath); err == nil {
		ds, err := dataset.Load(dataPath)
		if err != nil {
			return nil, "", err
		}
		return ds, dataPath, nil
	}
	if cache.Exists() {
		if ds, err := cache.Load(); err == nil {
			return ds, "autosave cache", nil
		}
		// A corrupt cache should not block editing.
	}
	return dataset.Default(), "built-in default", nil
}

type editMode int

const (
	modeNormal editMode = iota
	modeEditValue
	modeRenameHeader
	modeAddColumn
)

type editorModel struct {
	cfg   *config.Config
	ds    *dataset.Dataset
	bus   *bus.Bus
	cache *store.Store
	path  string

	// Cursor: col 0 is the date column, cols 1..len(headers) are series.
	row, col int

	mode  editMode
	input string

	toast      string
	toastErr   bool
	toastUntil time.Time

	dirty    bool
	showHelp bool
}

type tickMsg time.Time

func newEditorModel(cfg *config.Config, ds *dataset.Dataset, b *bus.Bus, cache *store.Store, path string) *editorModel {
	return &editorModel{
		cfg:   cfg,
		ds:    ds,
		bus:   b,
		cache: cache,
		path:  path,
	}
}

func (m *editorModel) Init() tea.Cmd {
	m.bus.Publish(m.ds)
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.mode != modeNormal {
			return m.updateInput(msg)
		}
		return m.updateNormal(msg)
	case tickMsg:
		if m.toast != "" && time.Now().After(m.toastUntil) {
			m.toast = ""
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m *editorModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left", "h":
		m.moveCursor(0, -1)
	case "right", "l":
		m.moveCursor(0, 1)
	case "enter", "e":
		m.startValueEdit()
	case "r":
		m.startHeaderRename()
	case "a":
		m.ds.AddRow()
		m.row = len(m.ds.Rows) - 1
		m.afterMutation("Row added")
	case "d":
		m.deleteRow()
	case "c":
		m.mode = modeAddColumn
		m.input = m.ds.NextColumnName()
	case "D":
		m.deleteColumn()
	case "+", "=":
		m.shiftDate(1)
	case "-", "_":
		m.shiftDate(-1)
	case " ", "v":
		m.toggleHidden()
	case "ctrl+s":
		m.save()
	case "ctrl+o":
		m.reload()
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *editorModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.commitInput()
	case tea.KeyEsc:
		m.mode = modeNormal
		m.input = ""
	case tea.KeyBackspace:
		if m.input != "" {
			runes := []rune(m.input)
			m.input = string(runes[:len(runes)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	return m, nil
}

func (m *editorModel) moveCursor(dRow, dCol int) {
	m.row += dRow
	m.col += dCol
	if m.row < 0 {
		m.row = 0
	}
	if max := len(m.ds.Rows) - 1; m.row > max {
		m.row = maxInt(max, 0)
	}
	if m.col < 0 {
		m.col = 0
	}
	if m.col > len(m.ds.Headers) {
		m.col = len(m.ds.Headers)
	}
}

func (m *editorModel) currentHeader() (string, bool) {
	if m.col < 1 || m.col > len(m.ds.Headers) {
		return "", false
	}
	return m.ds.Headers[m.col-1], true
}

func (m *editorModel) startValueEdit() {
	header, ok := m.currentHeader()
	if !ok {
		m.notify("Select a value cell to edit (dates shift with + and -)", true)
		return
	}
	if m.row >= len(m.ds.Rows) {
		m.notify("No row selected", true)
		return
	}
	m.mode = modeEditValue
	m.input = formatValue(m.ds.Rows[m.row].Values[header])
}

func (m *editorModel) startHeaderRename() {
	header, ok := m.currentHeader()
	if !ok {
		m.notify("Select a series column to rename", true)
		return
	}
	m.mode = modeRenameHeader
	m.input = header
}

func (m *editorModel) commitInput() {
	input := m.input
	mode := m.mode
	m.mode = modeNormal
	m.input = ""

	switch mode {
	case modeEditValue:
		header, ok := m.currentHeader()
		if !ok {
			return
		}
		if err := m.ds.UpdateValue(m.row, header, strings.TrimSpace(input)); err != nil {
			m.notify(err.Error(), true)
			return
		}
		m.afterMutation("Value updated")
	case modeRenameHeader:
		header, ok := m.currentHeader()
		if !ok {
			return
		}
		if err := m.ds.RenameHeader(header, strings.TrimSpace(input)); err != nil {
			m.notify(err.Error(), true)
			return
		}
		m.afterMutation("Header renamed")
	case modeAddColumn:
		if err := m.ds.AddColumn(strings.TrimSpace(input)); err != nil {
			m.notify(err.Error(), true)
			return
		}
		m.col = len(m.ds.Headers)
		m.afterMutation("Column added")
	}
}

func (m *editorModel) deleteRow() {
	if err := m.ds.RemoveRow(m.row); err != nil {
		m.notify(err.Error(), true)
		return
	}
	if m.row >= len(m.ds.Rows) && m.row > 0 {
		m.row--
	}
	m.afterMutation("Row removed")
}

func (m *editorModel) deleteColumn() {
	header, ok := m.currentHeader()
	if !ok {
		m.notify("Select a series column to remove", true)
		return
	}
	if err := m.ds.RemoveColumn(header); err != nil {
		m.notify(err.Error(), true)
		return
	}
	if m.col > len(m.ds.Headers) {
		m.col = len(m.ds.Headers)
	}
	m.afterMutation("Column removed")
}

func (m *editorModel) shiftDate(months int) {
	if err := m.ds.ShiftDate(m.row, months); err != nil {
		m.notify(err.Error(), true)
		return
	}
	m.afterMutation("Date shifted")
}

func (m *editorModel) toggleHidden() {
	if err := m.ds.ToggleHidden(m.row); err != nil {
		m.notify(err.Error(), true)
		return
	}
	m.afterMutation("Visibility toggled")
}

// afterMutation runs after every successful edit: snapshot to the bus,
// autosave to the cache, and a confirmation toast.
func (m *editorModel) afterMutation(message string) {
	m.dirty = true
	m.bus.Publish(m.ds)
	if m.cfg.Autosave {
		if err := m.cache.Save(m.ds); err != nil {
			m.notify(fmt.Sprintf("%s (autosave failed: %v)", message, err), true)
			return
		}
	}
	m.notify(message, false)
}

func (m *editorModel) save() {
	if result := m.ds.Check(); !result.Valid {
		m.notify(fmt.Sprintf("Not saved: %v", result.Err()), true)
		return
	}
	if err := m.ds.Save(m.path); err != nil {
		m.notify(err.Error(), true)
		return
	}
	m.dirty = false
	m.notify(fmt.Sprintf("Saved %s", m.path), false)
}

func (m *editorModel) reload() {
	ds, err := dataset.Load(m.path)
	if err != nil {
		m.notify(err.Error(), true)
		return
	}
	m.ds = ds
	m.row, m.col = 0, 0
	m.dirty = false
	m.bus.Publish(m.ds)
	m.notify(fmt.Sprintf("Loaded %s", m.path), false)
}

func (m *editorModel) notify(message string, isErr bool) {
	m.toast = message
	m.toastErr = isErr
	m.toastUntil = time.Now().Add(toastDuration)
}

func (m *editorModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Paceview Editor") + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		m.writeFooter(&b)
		return b.String()
	}

	m.writeTable(&b)
	m.writeInput(&b)
	m.writeToast(&b)
	m.writeFooter(&b)
	return b.String()
}

func (m *editorModel) writeTable(b *strings.Builder) {
	cells := []string{pad("date", dateColWidth)}
	for _, h := range m.ds.Headers {
		cells = append(cells, pad(utils.Truncate(h, valueColWidth), valueColWidth))
	}
	b.WriteString(headerStyle.Render(strings.Join(cells, " ")) + "\n")

	for i, row := range m.ds.Rows {
		line := make([]string, 0, len(m.ds.Headers)+1)
		line = append(line, m.renderCell(pad(row.Date.String(), dateColWidth), i, 0, row.Hidden))
		for c, h := range m.ds.Headers {
			text := pad(formatValue(row.Values[h]), valueColWidth)
			line = append(line, m.renderCell(text, i, c+1, row.Hidden))
		}
		marker := "  "
		if row.Hidden {
			marker = " *"
		}
		b.WriteString(strings.Join(line, " ") + marker + "\n")
	}
	if len(m.ds.Rows) == 0 {
		b.WriteString(hiddenStyle.Render("  (no rows; press a to add one)") + "\n")
	}
	b.WriteString("\n")
}

func (m *editorModel) renderCell(text string, row, col int, hidden bool) string {
	if row == m.row && col == m.col {
		return cursorStyle.Render(text)
	}
	if hidden {
		return hiddenStyle.Render(text)
	}
	return text
}

func (m *editorModel) writeInput(b *strings.Builder) {
	switch m.mode {
	case modeEditValue:
		b.WriteString(fmt.Sprintf("New value: %s_\n\n", m.input))
	case modeRenameHeader:
		b.WriteString(fmt.Sprintf("Rename header: %s_\n\n", m.input))
	case modeAddColumn:
		b.WriteString(fmt.Sprintf("New column name: %s_\n\n", m.input))
	}
}

func (m *editorModel) writeToast(b *strings.Builder) {
	if m.toast == "" {
		return
	}
	style := okStyle
	if m.toastErr {
		style = errStyle
	}
	b.WriteString(style.Render(m.toast) + "\n\n")
}

func (m *editorModel) writeFooter(b *strings.Builder) {
	dirty := ""
	if m.dirty {
		dirty = " [unsaved]"
	}
	b.WriteString(fmt.Sprintf("%s%s | ? help | ctrl+s save | ctrl+o load | q quit\n",
		m.path, dirty))
}

func writeHelp(b *strings.Builder) {
	b.WriteString("Keyboard Shortcuts\n\n")
	b.WriteString("  arrows, hjkl   Move cursor\n")
	b.WriteString("  enter, e       Edit value under cursor\n")
	b.WriteString("  r              Rename series column\n")
	b.WriteString("  a              Add row (3 months after the last)\n")
	b.WriteString("  d              Remove row\n")
	b.WriteString("  c              Add series column\n")
	b.WriteString("  D              Remove series column\n")
	b.WriteString("  + / -          Shift row date by one month\n")
	b.WriteString("  space, v       Toggle row visibility\n")
	b.WriteString("  ctrl+s         Save to the dataset file\n")
	b.WriteString("  ctrl+o         Reload from the dataset file\n")
	b.WriteString("  ?              Toggle this help screen\n")
	b.WriteString("  q, ctrl+c      Quit\n\n")
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) >= width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
