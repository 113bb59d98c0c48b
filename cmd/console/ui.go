package main

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jwebster45206/realm-engine/internal/engine"
	"github.com/jwebster45206/realm-engine/internal/handlers"
	"github.com/jwebster45206/realm-engine/pkg/character"
	"github.com/jwebster45206/realm-engine/pkg/state"
)

const (
	AgentName       = "Narrator"
	PlaceHolderText = "Type your action here..."
)

// statLabels names the attributes shown in the character panel, in
// display order. Labels are title-cased for rendering.
var statLabels = []string{"level", "experience", "money", "hunger", "thirst", "fatigue", "morale"}

var titleCaser = cases.Title(language.English)

type chatEntry struct {
	role    string // user, narrator, system, error
	content string
}

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	player       *character.Character
	history      []chatEntry
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool

	// Most recent narrator text, kept for /copy.
	lastNarrative string

	// Character creation state
	showCreationModal bool
	nameInput         textinput.Model
	conceptText       string
	loadingConcept    bool

	// Quit confirmation state
	showQuitModal bool

	// Progress bar state
	progressTick int
}

type actionResponseMsg struct {
	response *engine.ActionResponse
	err      error
}

type characterCreatedMsg struct {
	response *engine.ActionResponse
	err      error
}

type randomConceptMsg struct {
	concept *engine.RandomCharacterConcept
	err     error
}

type environmentMsg struct {
	info *engine.EnvironmentInfo
	err  error
}

type resetDoneMsg struct {
	err error
}

type gameLogMsg struct {
	entries []*state.GameLogEntry
	err     error
}

type settingSavedMsg struct {
	key string
	err error
}

type progressTickMsg struct{}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // purple
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Background(lipgloss.Color("235")).
			Foreground(lipgloss.Color("255"))

	modalTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Align(lipgloss.Center)
)

var separatorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")) // dark grey

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, player *character.Character) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 1000
	ta.SetWidth(50)
	ta.SetHeight(3)
	ta.ShowLineNumbers = false

	ni := textinput.New()
	ni.Placeholder = "Character name"
	ni.CharLimit = 50
	ni.Width = 40

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(20, 20)

	m := ConsoleUI{
		config:       cfg,
		client:       client,
		player:       player,
		textarea:     ta,
		nameInput:    ni,
		chatViewport: chatVp,
		metaViewport: metaVp,
		ready:        false,
	}
	if player == nil {
		m.showCreationModal = true
		m.nameInput.Focus()
	}
	return m
}

func writeInitialContent(player *character.Character, chatWidth int) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("REALM ENGINE") + "\n\n")
	if player != nil {
		content.WriteString(fmt.Sprintf("Welcome back, %s.\n", player.Name))
	}
	content.WriteString("Type your actions below to play. /help lists commands.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth-6)) + "\n\n")
	return content.String()
}

func writeMetadata(player *character.Character) string {
	var content strings.Builder
	content.WriteString(titleStyle.Render("CHARACTER") + "\n\n")

	if player == nil {
		content.WriteString("No character yet.\n")
		return content.String()
	}

	content.WriteString(speakerStyle.Render(player.Name) + "\n")
	if player.Profession != "" || player.Race != "" {
		content.WriteString(fmt.Sprintf("%s %s\n", player.Race, player.Profession))
	}
	if player.CurrentLocation != "" {
		content.WriteString(player.CurrentLocation + "\n")
	}
	content.WriteString("\n")

	content.WriteString(fmt.Sprintf("HP: %d/%d\n", player.HP, player.MaxHP))
	content.WriteString(fmt.Sprintf("MP: %d/%d\n", player.MP, player.MaxMP))
	content.WriteString(fmt.Sprintf("Stamina: %d/%d\n", player.Stamina, player.MaxStamina))
	content.WriteString("\n")

	for _, label := range statLabels {
		content.WriteString(fmt.Sprintf("%s: %d\n", titleCaser.String(label), statValue(player, label)))
	}
	content.WriteString("\n")

	content.WriteString("Equipment:\n")
	for _, slot := range character.EquipmentSlots {
		item := player.Equipment[slot]
		name := "-"
		if item != nil {
			name = item.Name
		}
		content.WriteString(fmt.Sprintf("• %s: %s\n", titleCaser.String(slot), name))
	}
	content.WriteString("\n")

	content.WriteString(fmt.Sprintf("Inventory: %d/%d\n\n", len(player.Inventory), player.MaxInventorySize))

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")
	content.WriteString("• /help: Help\n")
	content.WriteString("• /env: Surroundings\n")

	return content.String()
}

func statValue(c *character.Character, label string) int {
	switch label {
	case "level":
		return c.Level
	case "experience":
		return c.Experience
	case "money":
		return c.Money
	case "hunger":
		return c.Hunger
	case "thirst":
		return c.Thirst
	case "fatigue":
		return c.Fatigue
	case "morale":
		return c.Morale
	}
	return 0
}

// writeChatContent rebuilds the chat content for the current viewport width
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6 // Account for left(3) + right(3) padding

	var content strings.Builder
	content.WriteString(writeInitialContent(m.player, chatWidth))

	for _, entry := range m.history {
		switch entry.role {
		case "narrator":
			content.WriteString(formatNarratorResponse(entry.content, chatWidth) + "\n\n")
		case "user":
			content.WriteString(userStyle.Render("You: ") + wordwrap.String(entry.content, chatWidth-6) + "\n\n")
		case "system":
			content.WriteString(loadingStyle.Render(wordwrap.String(entry.content, chatWidth)) + "\n\n")
		case "error":
			content.WriteString(errorStyle.Render("Error: "+entry.content) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(m.renderProgressBar())
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func (m ConsoleUI) Init() tea.Cmd {
	if m.showCreationModal {
		return textinput.Blink
	}
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle creation modal first
	if m.showCreationModal {
		return m.updateCreationModal(msg)
	}

	// Handle quit modal second
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		mvCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.MouseMsg:
		// Pass all mouse events to the chat viewport for scrolling and
		// text selection; it ignores events outside its bounds.
		m.chatViewport, vpCmd = m.chatViewport.Update(msg)
		m.textarea, tiCmd = m.textarea.Update(msg)
		m.metaViewport, mvCmd = m.metaViewport.Update(msg)
		return m, tea.Batch(tiCmd, vpCmd, mvCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizePanels()
		m.ready = true
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.player))

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyEnter:
			if m.loading {
				return m, nil
			}

			input := strings.TrimSpace(m.textarea.Value())
			if input == "" {
				return m, nil
			}

			if strings.HasPrefix(input, "/") {
				return m.handleCommand(input)
			}

			m.textarea.Reset()
			m.loading = true
			m.progressTick = 0 // Reset progress animation

			m.history = append(m.history, chatEntry{role: "user", content: input})
			m.writeChatContent()

			return m, tea.Batch(m.sendActionCmd(input), progressTick())
		}

	case actionResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.history = append(m.history, chatEntry{role: "error", content: msg.err.Error()})
		} else {
			m.appendActionResponse(msg.response)
		}
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.player))
		return m, nil

	case environmentMsg:
		m.loading = false
		if msg.err != nil {
			m.history = append(m.history, chatEntry{role: "error", content: msg.err.Error()})
		} else {
			text := msg.info.Description
			if len(msg.info.Suggestions) > 0 {
				text += "\n\n可选行动: " + strings.Join(msg.info.Suggestions, " / ")
			}
			m.history = append(m.history, chatEntry{role: "narrator", content: text})
			m.lastNarrative = msg.info.Description
		}
		m.writeChatContent()
		return m, nil

	case gameLogMsg:
		m.loading = false
		if msg.err != nil {
			m.history = append(m.history, chatEntry{role: "error", content: msg.err.Error()})
		} else if len(msg.entries) == 0 {
			m.history = append(m.history, chatEntry{role: "system", content: "The game log is empty."})
		} else {
			var log strings.Builder
			log.WriteString("Recent log:\n")
			for _, entry := range msg.entries {
				line := entry.Message
				if line == "" && entry.Response != nil {
					line = entry.Response.Plot
				}
				log.WriteString(fmt.Sprintf("[%s] %s\n", entry.Timestamp.Format("15:04"), line))
			}
			m.history = append(m.history, chatEntry{role: "system", content: log.String()})
		}
		m.writeChatContent()
		return m, nil

	case settingSavedMsg:
		m.loading = false
		if msg.err != nil {
			m.history = append(m.history, chatEntry{role: "error", content: msg.err.Error()})
		} else {
			m.history = append(m.history, chatEntry{role: "system", content: fmt.Sprintf("Saved setting %q.", msg.key)})
		}
		m.writeChatContent()
		return m, nil

	case resetDoneMsg:
		m.loading = false
		if msg.err != nil {
			m.history = append(m.history, chatEntry{role: "error", content: msg.err.Error()})
			m.writeChatContent()
			return m, nil
		}
		// A reset wipes the character, so drop back into creation.
		m.player = nil
		m.history = nil
		m.lastNarrative = ""
		m.showCreationModal = true
		m.conceptText = ""
		m.nameInput.Reset()
		m.nameInput.Focus()
		return m, textinput.Blink

	case progressTickMsg:
		if m.loading {
			m.progressTick++
			m.writeChatContent()     // Refresh the chat content to update the progress bar
			return m, progressTick() // Continue the animation
		}
	}

	// Update components for non-mouse events
	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)
	m.metaViewport, mvCmd = m.metaViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, mvCmd)
}

func (m *ConsoleUI) resizePanels() {
	if m.width == 0 || m.height == 0 {
		return
	}
	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	m.chatViewport.Width = chatWidth - 2
	m.chatViewport.Height = m.height - 7
	m.metaViewport.Width = metaWidth - 2
	m.metaViewport.Height = m.height - 4
	m.textarea.SetWidth(chatWidth - 4)
}

// appendActionResponse folds one server response into the chat history
// and refreshes the cached player sheet.
func (m *ConsoleUI) appendActionResponse(resp *engine.ActionResponse) {
	if resp.Character != nil {
		m.player = resp.Character
	}
	if resp.Result == nil {
		return
	}

	var text strings.Builder
	text.WriteString(resp.Result.Plot)
	if resp.Result.Dialogue != "" {
		text.WriteString("\n\n" + resp.Result.Dialogue)
	}
	m.lastNarrative = text.String()
	m.history = append(m.history, chatEntry{role: "narrator", content: m.lastNarrative})

	if len(resp.Reconciliation.Detail) > 0 {
		var changes []string
		for field, change := range resp.Reconciliation.Detail {
			changes = append(changes, fmt.Sprintf("%s %d→%d", field, change.From, change.To))
		}
		m.history = append(m.history, chatEntry{role: "system", content: strings.Join(changes, "  ")})
	}
	for _, warning := range resp.Warnings {
		m.history = append(m.history, chatEntry{role: "system", content: warning})
	}
	if resp.SceneChanged {
		m.history = append(m.history, chatEntry{role: "system", content: "— 场景已切换 —"})
	}
	if len(resp.Result.SuggestedActions) > 0 {
		m.history = append(m.history, chatEntry{role: "system", content: "可选行动: " + strings.Join(resp.Result.SuggestedActions, " / ")})
	}
}

func formatNarratorResponse(response string, width int) string {
	// Check if response already has a speaker prefix
	hasPrefix := false
	if idx := strings.Index(response, ":"); idx > 0 && idx <= 20 {
		speaker := response[:idx]
		if len(strings.Fields(speaker)) <= 2 {
			hasPrefix = true
		}
	}

	// If no prefix, we'll add "Narrator: " so reduce available width
	wrapWidth := width
	if !hasPrefix {
		narratorPrefix := AgentName + ": "
		wrapWidth = width - len(narratorPrefix)
	}

	// Wrap the text to the available width
	wrappedResponse := wordwrap.String(response, wrapWidth)
	lines := strings.Split(wrappedResponse, "\n")
	var formattedLines []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			formattedLines = append(formattedLines, "")
			continue
		}

		if idx := strings.Index(trimmed, ":"); idx > 0 && idx <= 20 {
			speaker := trimmed[:idx]
			rest := trimmed[idx+1:]
			if len(strings.Fields(speaker)) <= 2 {
				formattedLines = append(formattedLines, speakerStyle.Render(speaker+":")+rest)
				continue
			}
		}

		formattedLines = append(formattedLines, line)
	}

	result := strings.Join(formattedLines, "\n")
	if !hasPrefix && !strings.HasPrefix(strings.TrimSpace(result), speakerStyle.Render("")) {
		result = narratorStyle.Render(AgentName+": ") + result
	}

	return result
}

func (m ConsoleUI) handleCommand(input string) (tea.Model, tea.Cmd) {
	cmd := strings.ToLower(strings.TrimSpace(input))

	if key, ok := strings.CutPrefix(input, "/apikey "); ok {
		m.textarea.Reset()
		m.loading = true
		m.progressTick = 0
		m.writeChatContent()
		return m, tea.Batch(m.saveSettingCmd(handlers.APIKeySetting, strings.TrimSpace(key)), progressTick())
	}

	switch cmd {
	case "/help":
		helpText := `
Commands:
• /help - Show this help
• /status - Character status report
• /chars - Characters in the scene
• /env - Describe your surroundings
• /copy - Copy the last narration to the clipboard
• /log - Show recent game log entries
• /apikey <key> - Save the Gemini API key
• /reset - Restart the game
• Ctrl+C - Quit game

How to play:
• Type your actions and press Enter
• The narrator will respond to guide the story
• Be descriptive for better responses
`
		m.history = append(m.history, chatEntry{role: "system", content: titleStyle.Render("Help:") + helpText})
		m.writeChatContent()

	case "/copy":
		if m.lastNarrative == "" {
			m.history = append(m.history, chatEntry{role: "system", content: "Nothing to copy yet."})
		} else if err := clipboard.WriteAll(m.lastNarrative); err != nil {
			m.history = append(m.history, chatEntry{role: "error", content: fmt.Sprintf("failed to copy: %v", err)})
		} else {
			m.history = append(m.history, chatEntry{role: "system", content: "Copied last narration to clipboard."})
		}
		m.writeChatContent()

	case "/env":
		m.textarea.Reset()
		m.loading = true
		m.progressTick = 0
		m.writeChatContent()
		return m, tea.Batch(m.fetchEnvironmentCmd(), progressTick())

	case "/log":
		m.textarea.Reset()
		m.loading = true
		m.progressTick = 0
		m.writeChatContent()
		return m, tea.Batch(m.fetchGameLogCmd(10), progressTick())

	case "/reset":
		m.textarea.Reset()
		m.loading = true
		m.progressTick = 0
		m.writeChatContent()
		return m, tea.Batch(m.resetGameCmd(), progressTick())

	default:
		// Other slash commands are handled server side.
		m.textarea.Reset()
		m.loading = true
		m.progressTick = 0
		m.history = append(m.history, chatEntry{role: "user", content: input})
		m.writeChatContent()
		return m, tea.Batch(m.sendActionCmd(input), progressTick())
	}

	m.textarea.Reset()
	return m, nil
}

func (m ConsoleUI) sendActionCmd(input string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendAction(m.client, m.config.APIBaseURL, input)
		return actionResponseMsg{resp, err}
	}
}

func (m ConsoleUI) fetchEnvironmentCmd() tea.Cmd {
	return func() tea.Msg {
		info, err := fetchEnvironment(m.client, m.config.APIBaseURL)
		return environmentMsg{info, err}
	}
}

func (m ConsoleUI) fetchGameLogCmd(limit int) tea.Cmd {
	return func() tea.Msg {
		entries, err := fetchGameLog(m.client, m.config.APIBaseURL, limit)
		return gameLogMsg{entries, err}
	}
}

func (m ConsoleUI) saveSettingCmd(key, value string) tea.Cmd {
	return func() tea.Msg {
		return settingSavedMsg{key, saveSetting(m.client, m.config.APIBaseURL, key, value)}
	}
}

func (m ConsoleUI) resetGameCmd() tea.Cmd {
	return func() tea.Msg {
		return resetDoneMsg{resetGame(m.client, m.config.APIBaseURL)}
	}
}

func (m ConsoleUI) createCharacterCmd(draft *engine.CharacterDraft) tea.Cmd {
	return func() tea.Msg {
		resp, err := createCharacter(m.client, m.config.APIBaseURL, draft)
		return characterCreatedMsg{resp, err}
	}
}

func (m ConsoleUI) randomConceptCmd() tea.Cmd {
	return func() tea.Msg {
		concept, err := randomCharacter(m.client, m.config.APIBaseURL)
		return randomConceptMsg{concept, err}
	}
}

func (m ConsoleUI) updateCreationModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.showQuitModal {
		return m.updateQuitModal(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case randomConceptMsg:
		m.loadingConcept = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.err = nil
			m.nameInput.SetValue(msg.concept.Name)
			m.conceptText = msg.concept.Description
		}
		return m, nil

	case characterCreatedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.player = msg.response.Character
		m.showCreationModal = false
		m.resizePanels()
		if msg.response.Result != nil && msg.response.Result.Plot != "" {
			m.lastNarrative = msg.response.Result.Plot
			m.history = append(m.history, chatEntry{role: "narrator", content: msg.response.Result.Plot})
		}
		m.writeChatContent()
		m.metaViewport.SetContent(writeMetadata(m.player))
		m.textarea.Focus() // Ensure textarea gets focus when modal closes
		m.ready = true
		return m, textarea.Blink

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.showQuitModal = true
			return m, nil
		case tea.KeyCtrlR:
			if !m.loadingConcept && !m.loading {
				m.loadingConcept = true
				return m, m.randomConceptCmd()
			}
			return m, nil
		case tea.KeyEnter:
			if m.loading || m.loadingConcept {
				return m, nil
			}
			name := strings.TrimSpace(m.nameInput.Value())
			if name == "" {
				return m, nil
			}
			m.loading = true
			draft := &engine.CharacterDraft{
				Name:        name,
				Description: m.conceptText,
			}
			return m, m.createCharacterCmd(draft)
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m ConsoleUI) updateQuitModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, tea.Quit
		default:
			switch msg.String() {
			case "y", "Y":
				return m, tea.Quit
			case "n", "N":
				m.showQuitModal = false
				if m.showCreationModal {
					m.nameInput.Focus()
					return m, textinput.Blink
				}
				m.textarea.Focus()
				return m, textarea.Blink
			}
		}
	}

	return m, nil
}

func (m ConsoleUI) renderQuitModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder
	content.WriteString(modalTitleStyle.Render("Quit Game?"))
	content.WriteString("\n\n")
	content.WriteString("Are you sure you want to quit your adventure?")
	content.WriteString("\n\n")
	content.WriteString(promptStyle.Render("Press Y to quit, N to continue, or Ctrl+C to force quit"))

	modal := modalStyle.Width(50).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) renderCreationModal() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	if m.loading {
		content.WriteString(modalTitleStyle.Render("Creating Character..."))
		content.WriteString("\n\n")
		content.WriteString(loadingStyle.Render("The narrator is shaping your story..."))
	} else {
		content.WriteString(modalTitleStyle.Render("Create Your Character"))
		content.WriteString("\n\n")
		content.WriteString(m.nameInput.View())
		content.WriteString("\n\n")

		if m.loadingConcept {
			content.WriteString(loadingStyle.Render("Rolling a character concept..."))
			content.WriteString("\n\n")
		} else if m.conceptText != "" {
			content.WriteString(wordwrap.String(m.conceptText, 56))
			content.WriteString("\n\n")
		}

		if m.err != nil {
			content.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			content.WriteString("\n\n")
		}

		content.WriteString(promptStyle.Render("Enter to create, Ctrl+R for a random concept, Ctrl+C to exit"))
	}

	modal := modalStyle.Width(60).Render(content.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal, lipgloss.WithWhitespaceChars(" "))
}

func (m ConsoleUI) View() string {
	if m.showQuitModal {
		return m.renderQuitModal()
	}

	if m.showCreationModal {
		return m.renderCreationModal()
	}

	if !m.ready {
		return "\n  Initializing..."
	}

	chatWidth := int(float64(m.width)*0.75) - 4
	metaWidth := m.width - chatWidth - 6

	chatPanel := chatPanelStyle.Width(chatWidth).Height(m.height - 3).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.chatViewport.View(),
			"", // Add empty line for spacing
			separatorStyle.Render(strings.Repeat("─", chatWidth-4)),
			m.textarea.View(),
		),
	)

	metaPanel := metaPanelStyle.Width(metaWidth).Height(m.height - 2).Render(
		m.metaViewport.View(),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)
}

// renderProgressBar creates an animated progress bar for loading states
func (m ConsoleUI) renderProgressBar() string {
	usable := m.chatViewport.Width - 6
	if usable <= 0 {
		usable = 30 // fallback before sizing
	}

	if usable > 80 {
		usable = 80
	} else if usable < 10 {
		usable = 10
	}

	const totalFrames = 40
	frame := m.progressTick % totalFrames
	filled := (frame * usable) / totalFrames

	var bar strings.Builder
	for i := 0; i < usable; i++ {
		if i < filled {
			bar.WriteString("█")
		} else if i == filled && frame%4 < 2 {
			bar.WriteString("▓") // Blinking effect at the progress point
		} else {
			bar.WriteString("░")
		}
	}
	return separatorStyle.Render(bar.String())
}

// progressTick creates a command that sends a progress tick message
func progressTick() tea.Cmd {
	return tea.Tick(time.Millisecond*200, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}
