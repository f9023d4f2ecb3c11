package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dailystatus/internal/config"
	"dailystatus/internal/generator"
	"dailystatus/internal/git"
	"dailystatus/internal/llm"
	"dailystatus/internal/report"
	"dailystatus/pkg/style"
)

// focusZone identifies which form field receives input
type focusZone int

const (
	focusRepo focusZone = iota
	focusDate
	focusStyle
	focusKey
	focusBranches
	focusPrompt
	focusZoneCount
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type branchItem struct {
	name     string
	selected bool
}

// branchesMsg carries the result of a branch refresh
type branchesMsg struct {
	branches []string
}

// reportMsg carries the result of a generation run
type reportMsg struct {
	report string
	err    error
}

// Form is the interactive shell: pick inputs, edit the prompt
// template, generate, read the result.
type Form struct {
	settings     *config.Settings
	settingsPath string

	repo   textinput.Model
	date   textinput.Model
	apiKey textinput.Model
	prompt textarea.Model

	styleIndex int
	branches   []branchItem
	cursor     int

	focus      focusZone
	output     string
	status     string
	errText    string
	generating bool
	quitting   bool
}

// NewForm builds the form pre-populated from the loaded settings
func NewForm(settings *config.Settings, settingsPath string) *Form {
	repo := textinput.New()
	repo.Placeholder = "/path/to/repository"
	repo.SetValue(settings.ProjectFolder)
	repo.Width = 60
	repo.Focus()

	date := textinput.New()
	date.Placeholder = config.DateFormat
	if settings.Date != "" {
		date.SetValue(settings.Date)
	} else {
		date.SetValue(time.Now().Format(config.DateFormat))
	}
	date.Width = 20

	apiKey := textinput.New()
	apiKey.Placeholder = "API key"
	apiKey.SetValue(settings.APIKey)
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.EchoCharacter = '•'
	apiKey.Width = 50

	prompt := textarea.New()
	prompt.SetWidth(78)
	prompt.SetHeight(8)
	if settings.PromptTemplate != "" {
		prompt.SetValue(settings.PromptTemplate)
	} else {
		prompt.SetValue(report.DefaultTemplate)
	}

	styleIndex := 0
	for i, s := range style.All() {
		if s == settings.Style() {
			styleIndex = i
		}
	}

	return &Form{
		settings:     settings,
		settingsPath: settingsPath,
		repo:         repo,
		date:         date,
		apiKey:       apiKey,
		prompt:       prompt,
		styleIndex:   styleIndex,
	}
}

// Run starts the bubbletea program and blocks until the user quits
func (f *Form) Run() error {
	_, err := tea.NewProgram(f, tea.WithAltScreen()).Run()
	return err
}

// Init implements tea.Model
func (f *Form) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, f.refreshBranchesCmd())
}

// Update implements tea.Model
func (f *Form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case branchesMsg:
		f.setBranches(msg.branches)
		f.status = fmt.Sprintf("Found %d branches.", len(msg.branches))
		return f, nil

	case reportMsg:
		f.generating = false
		if msg.err != nil {
			f.output = ""
			f.errText = msg.err.Error()
			f.status = ""
			return f, nil
		}
		f.output = msg.report
		f.errText = ""
		f.status = "Report generated."
		return f, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			f.quitting = true
			return f, tea.Quit

		case "tab":
			return f, f.setFocus((f.focus + 1) % focusZoneCount)

		case "shift+tab":
			return f, f.setFocus((f.focus + focusZoneCount - 1) % focusZoneCount)

		case "ctrl+r":
			f.status = "Refreshing branches..."
			return f, f.refreshBranchesCmd()

		case "ctrl+s":
			f.saveSettings()
			return f, nil

		case "ctrl+p":
			f.prompt.SetValue(report.DefaultTemplate)
			f.status = "Prompt template reset."
			return f, nil

		case "ctrl+g":
			if f.generating {
				return f, nil
			}
			f.generating = true
			f.errText = ""
			f.status = "Generating report..."
			return f, f.generateCmd()
		}
		return f, f.updateFocused(msg)
	}

	return f, f.updateFocused(msg)
}

// updateFocused routes remaining messages to the focused widget
func (f *Form) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case focusRepo:
		f.repo, cmd = f.repo.Update(msg)
	case focusDate:
		f.date, cmd = f.date.Update(msg)
	case focusKey:
		f.apiKey, cmd = f.apiKey.Update(msg)
	case focusPrompt:
		f.prompt, cmd = f.prompt.Update(msg)
	case focusStyle:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "left", "up":
				f.styleIndex = (f.styleIndex + len(style.All()) - 1) % len(style.All())
			case "right", "down", " ":
				f.styleIndex = (f.styleIndex + 1) % len(style.All())
			}
		}
	case focusBranches:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "up":
				if f.cursor > 0 {
					f.cursor--
				}
			case "down":
				if f.cursor < len(f.branches)-1 {
					f.cursor++
				}
			case " ", "space", "enter":
				if f.cursor < len(f.branches) {
					f.branches[f.cursor].selected = !f.branches[f.cursor].selected
				}
			}
		}
	}
	return cmd
}

func (f *Form) setFocus(zone focusZone) tea.Cmd {
	f.focus = zone
	f.repo.Blur()
	f.date.Blur()
	f.apiKey.Blur()
	f.prompt.Blur()

	switch zone {
	case focusRepo:
		return f.repo.Focus()
	case focusDate:
		return f.date.Focus()
	case focusKey:
		return f.apiKey.Focus()
	case focusPrompt:
		return f.prompt.Focus()
	}
	return nil
}

// setBranches replaces the branch list, keeping prior selections
func (f *Form) setBranches(names []string) {
	selected := make(map[string]bool, len(f.branches))
	for _, b := range f.branches {
		if b.selected {
			selected[b.name] = true
		}
	}
	// First load: honor the persisted selection
	if len(f.branches) == 0 {
		for _, name := range f.settings.Branches {
			selected[name] = true
		}
	}

	f.branches = make([]branchItem, 0, len(names))
	for _, name := range names {
		f.branches = append(f.branches, branchItem{name: name, selected: selected[name]})
	}
	if f.cursor >= len(f.branches) {
		f.cursor = 0
	}
}

// selectedBranches returns the checked branch names in display order
func (f *Form) selectedBranches() []string {
	var names []string
	for _, b := range f.branches {
		if b.selected {
			names = append(names, b.name)
		}
	}
	return names
}

// currentStyle returns the style the selector points at
func (f *Form) currentStyle() style.Style {
	return style.All()[f.styleIndex]
}

// snapshot copies the form fields back into the settings record
func (f *Form) snapshot() {
	f.settings.ProjectFolder = f.repo.Value()
	f.settings.Date = f.date.Value()
	f.settings.ReportStyle = f.currentStyle().String()
	f.settings.Branches = f.selectedBranches()
	f.settings.APIKey = f.apiKey.Value()
	f.settings.PromptTemplate = strings.TrimRight(f.prompt.Value(), "\n")
}

func (f *Form) saveSettings() {
	f.snapshot()
	if err := f.settings.Save(f.settingsPath); err != nil {
		f.errText = err.Error()
		f.status = ""
		return
	}
	f.errText = ""
	f.status = "Settings saved."
}

// refreshBranchesCmd lists branches off the update loop
func (f *Form) refreshBranchesCmd() tea.Cmd {
	repoPath := f.repo.Value()
	if repoPath == "" {
		repoPath = f.settings.ProjectFolder
	}
	return func() tea.Msg {
		collector := git.NewCollector(git.NewExecutor(repoPath))
		branches, err := collector.Branches(context.Background())
		if err != nil {
			return branchesMsg{}
		}
		return branchesMsg{branches: branches}
	}
}

// generateCmd runs the whole pipeline as one background unit of work.
// All inputs are captured up front so the closure never touches the
// model from another goroutine.
func (f *Form) generateCmd() tea.Cmd {
	f.snapshot()

	repoPath := f.settings.ProjectFolder
	dateStr := f.settings.Date
	reportStyle := f.currentStyle()
	branches := f.settings.Branches
	template := f.settings.PromptTemplate
	modelCfg := f.settings.ModelConfig()
	retryCfg := llm.DefaultRetryConfig()
	retryCfg.Enabled = f.settings.RetryEnabled

	return func() tea.Msg {
		day, err := time.ParseInLocation(config.DateFormat, dateStr, time.Local)
		if err != nil {
			return reportMsg{err: fmt.Errorf("invalid date %q, expected %s", dateStr, config.DateFormat)}
		}

		ctx := context.Background()
		promptText, err := generator.BuildPrompt(ctx, generator.Request{
			RepoPath: repoPath,
			Date:     day,
			Style:    reportStyle,
			Branches: branches,
			Template: template,
		})
		if err != nil {
			return reportMsg{err: err}
		}

		provider, err := llm.NewProviderFactory().Create(modelCfg)
		if err != nil {
			return reportMsg{err: err}
		}

		text, err := generator.New(provider, generator.WithRetry(retryCfg)).Generate(ctx, promptText)
		if err != nil {
			return reportMsg{err: err}
		}
		return reportMsg{report: text}
	}
}

// View implements tea.Model
func (f *Form) View() string {
	if f.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("DailyStatus"))
	b.WriteString("\n\n")

	b.WriteString(f.renderLabel("Repository folder", focusRepo))
	b.WriteString(f.repo.View())
	b.WriteString("\n")

	b.WriteString(f.renderLabel("Date", focusDate))
	b.WriteString(f.date.View())
	b.WriteString("\n")

	b.WriteString(f.renderLabel("Report style", focusStyle))
	b.WriteString(f.renderStyleSelector())
	b.WriteString("\n")

	b.WriteString(f.renderLabel("API key", focusKey))
	b.WriteString(f.apiKey.View())
	b.WriteString("\n")

	b.WriteString(f.renderLabel("Branches (optional)", focusBranches))
	b.WriteString(f.renderBranches())
	b.WriteString("\n")

	b.WriteString(f.renderLabel("Editable prompt", focusPrompt))
	b.WriteString(f.prompt.View())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Output:"))
	b.WriteString("\n")
	if f.generating {
		b.WriteString(dimStyle.Render("Processing..."))
	} else if f.output != "" {
		b.WriteString(f.output)
	} else {
		b.WriteString(dimStyle.Render("(no report yet)"))
	}
	b.WriteString("\n\n")

	if f.errText != "" {
		b.WriteString(errStyle.Render("Error: " + f.errText))
		b.WriteString("\n")
	} else if f.status != "" {
		b.WriteString(okStyle.Render(f.status))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab: next field • ctrl+r: refresh branches • ctrl+s: save • ctrl+g: generate • ctrl+p: reset prompt • ctrl+c: quit"))
	b.WriteString("\n")
	return b.String()
}

func (f *Form) renderLabel(text string, zone focusZone) string {
	if f.focus == zone {
		return activeStyle.Render("› "+text+":") + "\n"
	}
	return labelStyle.Render("  "+text+":") + "\n"
}

func (f *Form) renderStyleSelector() string {
	parts := make([]string, 0, len(style.All()))
	for i, s := range style.All() {
		if i == f.styleIndex {
			parts = append(parts, activeStyle.Render("(•) "+s.String()))
		} else {
			parts = append(parts, dimStyle.Render("( ) "+s.String()))
		}
	}
	return strings.Join(parts, "  ")
}

func (f *Form) renderBranches() string {
	if len(f.branches) == 0 {
		return dimStyle.Render("(none found, ctrl+r to refresh)")
	}

	var b strings.Builder
	for i, branch := range f.branches {
		check := "[ ]"
		if branch.selected {
			check = "[x]"
		}
		line := fmt.Sprintf("%s %s", check, branch.name)
		if f.focus == focusBranches && i == f.cursor {
			line = activeStyle.Render("› " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		if i < len(f.branches)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
