package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/estix-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/estix-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/estix-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/estix-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/estix-cli/internal/adapters/driving/tui/views/preview"
	"github.com/custodia-labs/estix-cli/internal/core/domain"
	"github.com/custodia-labs/estix-cli/internal/core/ports/driving"
)

// Document is the input previewed by the app.
type Document struct {
	// Name is shown in the title, usually the file path.
	Name string

	// Data is the raw document, passed to Import on request.
	Data []byte

	// Result is the decoded document.
	Result *domain.ParseResult
}

// App is the preview application following the Elm architecture.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	doc      Document
	preview  *preview.View
	status   *status.Bar
	help     help.Model
	showHelp bool

	imported *driving.ImportSummary
	width    int
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a preview application for doc.
func NewApp(ports *Ports, doc Document) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	if doc.Result == nil {
		return nil, fmt.Errorf("creating app: %w", ErrMissingDocument)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:   ports,
		ctx:     context.Background(),
		styles:  s,
		keymap:  km,
		doc:     doc,
		preview: preview.NewView(s, km, doc.Result),
		status:  status.NewBar(s, km),
		help:    help.New(),
		width:   80,
	}, nil
}

// WithContext sets the context used for imports.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("estix - " + a.doc.Name)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.status.SetWidth(msg.Width)
		a.help.Width = msg.Width
		a.preview.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keymap.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keymap.Help):
			a.showHelp = !a.showHelp
			return a, nil
		}
		a.preview, cmd = a.preview.Update(msg)
		return a, cmd

	case messages.ImportRequested:
		if a.imported != nil {
			a.status.SetState(status.StateImported, "Already imported as "+a.imported.ProjectID)
			return a, nil
		}
		if a.status.State() == status.StateImporting {
			return a, nil
		}
		a.status.SetState(status.StateImporting, "")
		return a, a.importDocument()

	case messages.ImportCompleted:
		if msg.Err != nil {
			a.status.SetState(status.StateError, msg.Err.Error())
			return a, nil
		}
		a.imported = msg.Summary
		a.status.SetState(status.StateImported, fmt.Sprintf("Imported %q as %s",
			msg.Summary.ProjectName, msg.Summary.ProjectID))
		return a, nil

	case messages.LevelToggled:
		verb := "Expanded"
		if msg.Collapsed {
			verb = "Collapsed"
		}
		name := fmt.Sprintf("level %d", msg.Level+1)
		if msg.Level < len(a.doc.Result.Levels) {
			name = a.doc.Result.Levels[msg.Level].Name
		}
		if a.status.State() != status.StateImporting {
			a.status.SetState(status.StateReady, verb+" "+name)
		}
		return a, nil
	}

	return a, nil
}

func (a *App) importDocument() tea.Cmd {
	ctx := a.ctx
	data := a.doc.Data
	svc := a.ports.Interchange
	return func() tea.Msg {
		summary, err := svc.Import(ctx, data)
		return messages.ImportCompleted{Summary: summary, Err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("estix preview: " + a.doc.Name))
	b.WriteString("\n")
	b.WriteString(a.styles.Muted.Render(strings.Repeat("─", minInt(a.width, 60))))
	b.WriteString("\n")

	if a.showHelp {
		b.WriteString(a.help.FullHelpView(a.keymap.FullHelp()))
		b.WriteString("\n")
	} else {
		b.WriteString(a.preview.View())
	}

	b.WriteString(a.status.View())
	return b.String()
}

// Imported returns the import summary once the document was imported.
func (a *App) Imported() *driving.ImportSummary {
	return a.imported
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
