package component

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"promptforge/prompt"
)

var (
	fileNameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	filePreviewStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243")).Italic(true)
	fileBusyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// FilesModel renders the pending-documents list plus any names still being
// extracted.
type FilesModel struct {
	pending    []prompt.NormalizedDocument
	processing []string
	width      int
}

// NewFilesModel creates the file list component.
func NewFilesModel() FilesModel {
	return FilesModel{}
}

// SetPending replaces the displayed pending documents.
func (m *FilesModel) SetPending(docs []prompt.NormalizedDocument) {
	m.pending = docs
}

// SetProcessing replaces the displayed in-flight file names.
func (m *FilesModel) SetProcessing(names []string) {
	m.processing = names
}

// SetWidth sets the component width.
func (m *FilesModel) SetWidth(width int) {
	m.width = width
}

// View renders the attached and processing files, one per line.
func (m *FilesModel) View() string {
	if len(m.pending) == 0 && len(m.processing) == 0 {
		return ""
	}

	var b strings.Builder
	for _, doc := range m.pending {
		marker := "txt"
		if doc.MediaType == prompt.MediaBinary {
			marker = "img"
		}
		b.WriteString(fileNameStyle.Render(fmt.Sprintf("  [%s] %s", marker, doc.Name)))
		if doc.Preview != "" {
			b.WriteString(filePreviewStyle.Render(fmt.Sprintf("  %q", doc.Preview)))
		}
		b.WriteString("\n")
	}
	for _, name := range m.processing {
		b.WriteString(fileBusyStyle.Render(fmt.Sprintf("  [...] %s extracting", name)))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
