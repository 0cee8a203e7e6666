// Package tui is the terminal front end: a single input line driving
// generation, refinement, file attachment and history commands, with the
// streaming result rendered above it.
package tui

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"promptforge/prompt"
	"promptforge/prompt/catalog"
	"promptforge/prompt/gemini"
	"promptforge/prompt/ingest"
	"promptforge/prompt/session"
	"promptforge/pubsub"
	"promptforge/tui/component"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type (
	// noticeMsg updates the status line without touching the output pane.
	noticeMsg struct {
		text string
		err  bool
	}

	// runDoneMsg reports the synchronous outcome of a generate/refine call.
	// Stream progress arrives separately through the session broker.
	runDoneMsg struct {
		err error
	}

	suggestionMsg struct {
		suggestion gemini.IdeaSuggestion
		err        error
	}

	analysisMsg struct {
		analysis gemini.Analysis
		err      error
	}
)

// Model is the root TUI model.
type Model struct {
	viewport viewport.Model
	files    component.FilesModel
	status   component.StatusModel
	edit     component.EditModel

	runtime *session.Runtime
	coord   *ingest.Coordinator
	client  *gemini.Client

	ctx        context.Context
	sessionSub <-chan pubsub.Event[session.Event]
	ingestSub  <-chan pubsub.Event[ingest.Event]

	personaIdx int
	modeIdx    int

	processing []string
	lastEntry  prompt.HistoryEntry
	haveEntry  bool

	width  int
	height int
	ready  bool
}

// InitialModel wires the root model to the runtime, coordinator and model
// client.
func InitialModel(runtime *session.Runtime, coord *ingest.Coordinator, client *gemini.Client) Model {
	ctx := context.Background()

	return Model{
		viewport:   viewport.New(0, 0),
		files:      component.NewFilesModel(),
		status:     component.NewStatusModel(),
		edit:       component.NewEditModel(),
		runtime:    runtime,
		coord:      coord,
		client:     client,
		ctx:        ctx,
		sessionSub: runtime.Broker().Subscribe(ctx),
		ingestSub:  coord.Broker().Subscribe(ctx),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.edit.Init(),
		m.status.Init(),
		m.waitForSessionEvent(),
		m.waitForIngestEvent(),
	)
}

func (m Model) waitForSessionEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.sessionSub
	}
}

func (m Model) waitForIngestEvent() tea.Cmd {
	return func() tea.Msg {
		return <-m.ingestSub
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()

	case component.SubmitMsg:
		cmd := m.dispatch(msg.Value)
		cmds = append(cmds, cmd)
		m.layout()

	case noticeMsg:
		if msg.err {
			m.status.Stop(errorStyle.Render(msg.text))
		} else {
			m.status.Stop(msg.text)
		}

	case runDoneMsg:
		if msg.err != nil {
			m.status.Stop(errorStyle.Render(msg.err.Error()))
		}

	case suggestionMsg:
		if msg.err != nil {
			m.status.Stop(errorStyle.Render(msg.err.Error()))
			break
		}
		m.edit.SetValue(msg.suggestion.Prompt)
		m.setPersona(msg.suggestion.Persona)
		m.status.Stop("Suggestion loaded. Press Enter to generate.")

	case analysisMsg:
		if msg.err != nil {
			m.status.Stop(errorStyle.Render(msg.err.Error()))
			break
		}
		m.viewport.SetContent(renderAnalysis(msg.analysis))
		m.viewport.GotoTop()
		m.status.Stop("Analysis complete")

	case pubsub.Event[session.Event]:
		cmds = append(cmds, m.waitForSessionEvent())
		m.applySessionEvent(msg)

	case pubsub.Event[ingest.Event]:
		cmds = append(cmds, m.waitForIngestEvent())
		m.applyIngestEvent(msg)
		m.layout()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlP:
			m.personaIdx = (m.personaIdx + 1) % len(catalog.Personas)
			m.status.Stop("Persona: " + catalog.Personas[m.personaIdx].Name)
			return m, nil
		case tea.KeyCtrlO:
			m.modeIdx = (m.modeIdx + 1) % len(catalog.Modes)
			m.status.Stop("Mode: " + catalog.Modes[m.modeIdx].Name)
			return m, nil
		}
	}

	var cmd tea.Cmd

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	m.edit, cmd = m.edit.Update(msg)
	cmds = append(cmds, cmd)

	m.status, cmd = m.status.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// dispatch routes one submitted line: slash commands, or plain text as a
// generation idea.
func (m *Model) dispatch(line string) tea.Cmd {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, "/") {
		return m.startGenerate(line)
	}

	cmd, arg, _ := strings.Cut(line[1:], " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "refine":
		return m.startRefine(arg)
	case "attach":
		return m.attach(arg)
	case "rm":
		m.coord.Remove(arg)
		m.refreshFiles()
		return notify("Removed " + arg)
	case "clear":
		m.coord.Clear()
		m.refreshFiles()
		return notify("Cleared attached files")
	case "lucky":
		return m.startLucky()
	case "analyze":
		return m.startAnalyze()
	case "history":
		m.viewport.SetContent(renderEntries("History", m.runtime.Store().History(), m.runtime.Store()))
		m.viewport.GotoTop()
		return nil
	case "library":
		m.viewport.SetContent(renderEntries("Library", m.runtime.Store().Library(), m.runtime.Store()))
		m.viewport.GotoTop()
		return nil
	case "save":
		if !m.haveEntry {
			return notifyErr("Nothing to save yet")
		}
		entry := m.lastEntry
		return func() tea.Msg {
			if err := m.runtime.Store().SaveToLibrary(m.ctx, entry); err != nil {
				return noticeMsg{text: err.Error(), err: true}
			}
			return noticeMsg{text: "Saved to library"}
		}
	case "unsave":
		return m.storeCmd(arg, m.runtime.Store().RemoveFromLibrary, "Removed from library")
	case "delete":
		return m.storeCmd(arg, m.runtime.Store().Remove, "Deleted from history")
	case "persona":
		if arg == "" {
			return notify("Persona: " + catalog.Personas[m.personaIdx].Name)
		}
		if !m.setPersona(arg) {
			return notifyErr("Unknown persona: " + arg)
		}
		return notify("Persona: " + catalog.Personas[m.personaIdx].Name)
	case "mode":
		if arg == "" {
			return notify("Mode: " + catalog.Modes[m.modeIdx].Name)
		}
		if !m.setMode(arg) {
			return notifyErr("Unknown mode: " + arg)
		}
		return notify("Mode: " + catalog.Modes[m.modeIdx].Name)
	case "examples":
		m.viewport.SetContent(renderExamples())
		m.viewport.GotoTop()
		return nil
	case "help":
		m.viewport.SetContent(helpText)
		m.viewport.GotoTop()
		return nil
	default:
		return notifyErr("Unknown command: /" + cmd)
	}
}

func (m *Model) startGenerate(idea string) tea.Cmd {
	persona := catalog.Personas[m.personaIdx].Key
	mode := catalog.Modes[m.modeIdx].Key
	docs := m.coord.Pending()

	spin := m.status.Start("Generating...")
	run := func() tea.Msg {
		_, err := m.runtime.Generate(m.ctx, idea, persona, mode, docs)
		return runDoneMsg{err: err}
	}
	return tea.Batch(spin, run)
}

func (m *Model) startRefine(instruction string) tea.Cmd {
	if instruction == "" {
		return notifyErr("Usage: /refine <instruction>")
	}
	if !m.haveEntry {
		return notifyErr("Nothing to refine yet")
	}
	persona := catalog.Personas[m.personaIdx].Key
	mode := catalog.Modes[m.modeIdx].Key
	docs := m.coord.Pending()
	previous := m.lastEntry.Result

	spin := m.status.Start("Refining...")
	run := func() tea.Msg {
		_, err := m.runtime.Refine(m.ctx, previous, instruction, persona, mode, docs)
		return runDoneMsg{err: err}
	}
	return tea.Batch(spin, run)
}

// attach expands a glob pattern and submits the matches to the coordinator.
func (m *Model) attach(pattern string) tea.Cmd {
	if pattern == "" {
		return notifyErr("Usage: /attach <glob>")
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return notifyErr("Bad pattern: " + err.Error())
	}
	if len(matches) == 0 {
		return notifyErr("No files match " + pattern)
	}

	var batch []ingest.RawFile
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		path := path
		batch = append(batch, ingest.RawFile{
			Name:         filepath.Base(path),
			Size:         info.Size(),
			MIMEType:     mime.TypeByExtension(filepath.Ext(path)),
			LastModified: info.ModTime(),
			Read:         func() ([]byte, error) { return os.ReadFile(path) },
		})
	}
	if len(batch) == 0 {
		return notifyErr("No readable files match " + pattern)
	}

	admitted, rejected := m.coord.Accept(batch)
	m.coord.Run(m.ctx, admitted)

	for _, task := range admitted {
		m.processing = append(m.processing, task.Name)
	}
	m.refreshFiles()

	if len(rejected) > 0 {
		parts := make([]string, 0, len(rejected))
		for _, r := range rejected {
			parts = append(parts, r.Error())
		}
		return notifyErr(strings.Join(parts, "; "))
	}
	return notify(fmt.Sprintf("Extracting %d file(s)...", len(admitted)))
}

func (m *Model) startLucky() tea.Cmd {
	spin := m.status.Start("Inventing an idea...")
	run := func() tea.Msg {
		s, err := m.client.SuggestIdea(m.ctx)
		return suggestionMsg{suggestion: s, err: err}
	}
	return tea.Batch(spin, run)
}

func (m *Model) startAnalyze() tea.Cmd {
	if !m.haveEntry {
		return notifyErr("Nothing to analyze yet")
	}
	result := m.lastEntry.Result

	spin := m.status.Start("Analyzing prompt quality...")
	run := func() tea.Msg {
		a, err := m.client.Analyze(m.ctx, result)
		return analysisMsg{analysis: a, err: err}
	}
	return tea.Batch(spin, run)
}

func (m *Model) storeCmd(id string, op func(context.Context, string) error, done string) tea.Cmd {
	if id == "" {
		return notifyErr("An entry id is required")
	}
	return func() tea.Msg {
		if err := op(m.ctx, id); err != nil {
			return noticeMsg{text: err.Error(), err: true}
		}
		return noticeMsg{text: done}
	}
}

func (m *Model) applySessionEvent(ev pubsub.Event[session.Event]) {
	switch ev.Type {
	case pubsub.UpdatedEvent:
		m.viewport.SetContent(ev.Payload.Text)
		m.viewport.GotoBottom()

	case pubsub.FinishedEvent:
		m.lastEntry = ev.Payload.Entry
		m.haveEntry = true
		m.viewport.SetContent(renderMarkdown(ev.Payload.Entry.Result, m.viewport.Width))
		m.viewport.GotoTop()
		if ev.Payload.Track == session.TrackRefine {
			m.status.Stop("Refined. /refine again, /save, or /analyze")
		} else {
			m.status.Stop("Done. /refine to iterate, /save to keep, /analyze to score")
		}

	case pubsub.FailedEvent:
		m.status.Stop(errorStyle.Render("Generation failed: " + ev.Payload.Err.Error()))
	}
}

func (m *Model) applyIngestEvent(ev pubsub.Event[ingest.Event]) {
	m.dropProcessing(ev.Payload.Name)
	m.refreshFiles()

	switch ev.Type {
	case pubsub.AddedEvent:
		m.status.Stop("Attached " + ev.Payload.Name)
	case pubsub.FailedEvent:
		m.status.Stop(errorStyle.Render(ev.Payload.Name + ": " + ev.Payload.Err.Error()))
	}
}

func (m *Model) dropProcessing(name string) {
	for i, n := range m.processing {
		if n == name {
			m.processing = append(m.processing[:i], m.processing[i+1:]...)
			return
		}
	}
}

func (m *Model) refreshFiles() {
	m.files.SetPending(m.coord.Pending())
	m.files.SetProcessing(m.processing)
}

func (m *Model) setPersona(key string) bool {
	for i, p := range catalog.Personas {
		if p.Key == key {
			m.personaIdx = i
			return true
		}
	}
	return false
}

func (m *Model) setMode(key string) bool {
	for i, md := range catalog.Modes {
		if md.Key == key {
			m.modeIdx = i
			return true
		}
	}
	return false
}

// layout recomputes component sizes from the current terminal dimensions.
func (m *Model) layout() {
	if !m.ready {
		return
	}

	m.files.SetWidth(m.width)
	m.status.SetWidth(m.width)
	m.edit.SetWidth(m.width)

	headerHeight := lipgloss.Height(m.headerView())
	filesHeight := lipgloss.Height(m.files.View())
	if m.files.View() == "" {
		filesHeight = 0
	}
	statusHeight := lipgloss.Height(m.status.View())
	editHeight := m.edit.Height()

	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-headerHeight-filesHeight-statusHeight-editHeight, 1)
}

func (m Model) headerView() string {
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		headerStyle.Render("PromptForge"),
		labelStyle.Render("  persona: "),
		valueStyle.Render(catalog.Personas[m.personaIdx].Name),
		labelStyle.Render("  mode: "),
		valueStyle.Render(catalog.Modes[m.modeIdx].Name),
	)
}

func (m Model) View() string {
	if !m.ready {
		return "Starting..."
	}

	sections := []string{m.headerView(), m.viewport.View()}
	if files := m.files.View(); files != "" {
		sections = append(sections, files)
	}
	sections = append(sections, m.status.View(), m.edit.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func notify(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text} }
}

func notifyErr(text string) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text, err: true} }
}

// renderMarkdown pretty-prints a finished result. Falls back to the raw text
// when rendering fails.
func renderMarkdown(text string, width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return out
}

func renderEntries(title string, entries []prompt.HistoryEntry, store interface{ InLibrary(string) bool }) string {
	if len(entries) == 0 {
		return labelStyle.Render(title + " is empty.")
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(title) + "\n\n")
	for _, e := range entries {
		saved := ""
		if store.InLibrary(e.ID) {
			saved = " *"
		}
		b.WriteString(valueStyle.Render(e.Idea) + saved + "\n")
		b.WriteString(labelStyle.Render(fmt.Sprintf("  id=%s  persona=%s  mode=%s  %s",
			e.ID, e.Persona, e.Mode, e.CreatedAt.Format("2006-01-02 15:04"))) + "\n\n")
	}
	return b.String()
}

func renderExamples() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Example ideas") + "\n\n")
	for _, ex := range catalog.ExamplePrompts {
		b.WriteString(valueStyle.Render(ex.Text) + "\n")
		b.WriteString(labelStyle.Render("  persona: "+ex.Persona) + "\n\n")
	}
	return b.String()
}

func renderAnalysis(a gemini.Analysis) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Prompt analysis") + "\n\n")
	dims := []struct {
		name  string
		score gemini.Score
	}{
		{"Clarity", a.Clarity},
		{"Specificity", a.Specificity},
		{"Constraints", a.Constraints},
	}
	for _, d := range dims {
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s: %d/10", d.name, d.score.Score)) + "\n")
		b.WriteString(labelStyle.Render("  "+d.score.Feedback) + "\n\n")
	}
	b.WriteString(valueStyle.Render(a.Summary) + "\n")
	return b.String()
}

const helpText = `Commands

  <idea>               generate a prompt from the typed idea
  /refine <text>       refine the last result with an instruction
  /attach <glob>       attach files as context (txt, md, html, docx, xlsx, pdf, images)
  /rm <name>           remove one attached file
  /clear               remove all attached files
  /lucky               let the model invent an idea
  /analyze             score the last result on clarity, specificity, constraints
  /history             list past generations
  /library             list saved prompts
  /save                save the last result to the library
  /delete <id>         delete a history entry (and its library copy)
  /unsave <id>         remove an entry from the library
  /persona [key]       show or set the persona
  /mode [key]          show or set the prompt mode
  /examples            show example ideas

  ctrl+p cycle persona   ctrl+o cycle mode   esc quit`
