package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"clouddrive/internal/api"
	"clouddrive/internal/config"
	"clouddrive/internal/domain"
	"clouddrive/internal/services"
	"clouddrive/internal/session"
	"clouddrive/internal/state"
)

type screen int

const (
	screenLogin screen = iota
	screenRegister
	screenForgot
	screenDashboard
)

type promptKind int

const (
	promptNone promptKind = iota
	promptNewFolder
	promptRename
	promptUpload
	promptSearch
	promptDelete
)

const (
	loginFieldEmail = iota
	loginFieldPassword
)

const (
	registerFieldFirstName = iota
	registerFieldLastName
	registerFieldEmail
	registerFieldPassword
	registerFieldConfirm
)

type Model struct {
	dashboard *state.Dashboard
	lister    services.Lister
	mutator   services.Mutator
	uploader  services.Uploader
	accounts  services.Accounts
	sessions  *session.Store

	baseConfig config.Config
	keys       KeyMap
	spin       spinner.Model

	screen    screen
	form      []textinput.Model
	formFocus int

	prompt       promptKind
	promptInput  textinput.Model
	pendingEntry *domain.Entry

	status   string
	showHelp bool
	width    int
	height   int
	viewTop  int
}

type ConfigProvider interface {
	ConfigSnapshot() config.Config
}

func NewModel(dashboard *state.Dashboard, gateway services.Gateway, sessions *session.Store, cfg config.Config) Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	model := Model{
		dashboard:  dashboard,
		lister:     gateway,
		mutator:    gateway,
		uploader:   gateway,
		accounts:   gateway,
		sessions:   sessions,
		baseConfig: cfg,
		keys:       DefaultKeyMap(),
		spin:       spin,
		screen:     screenLogin,
		width:      100,
		height:     30,
	}
	if sessions.Authenticated() {
		model.screen = screenDashboard
		model.status = fmt.Sprintf("Signed in as %s", sessions.User().FullName())
	} else {
		model.status = "Sign in to your drive"
	}
	model.resetForm()
	return model
}

func (model Model) ConfigSnapshot() config.Config {
	snapshot := model.baseConfig
	snapshot.ViewMode = model.dashboard.Prefs.ViewMode
	snapshot.Theme = model.dashboard.Prefs.Theme
	snapshot.LastFolderID = model.dashboard.FolderID
	return snapshot
}

func (model Model) Init() tea.Cmd {
	if model.screen == screenDashboard {
		seq := model.dashboard.BeginFetch(model.dashboard.FolderID)
		return tea.Batch(model.fetchCmd(seq, model.dashboard.FolderID), model.spin.Tick)
	}
	return textinput.Blink
}

func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		model.width = typed.Width
		model.height = typed.Height
		model.ensureCursorVisible()
		return model, nil
	case spinner.TickMsg:
		if !model.dashboard.Loading() {
			return model, nil
		}
		var cmd tea.Cmd
		model.spin, cmd = model.spin.Update(typed)
		return model, cmd
	case tea.KeyMsg:
		return model.handleKey(typed)
	case listResultMsg:
		return model.handleListResult(typed), nil
	case loginResultMsg:
		return model.handleLoginResult(typed)
	case registerResultMsg:
		return model.handleRegisterResult(typed), nil
	case forgotResultMsg:
		return model.handleForgotResult(typed), nil
	case createFolderResultMsg:
		return model.handleMutation("Folder created", envelopeOf(typed.result), typed.err)
	case renameResultMsg:
		return model.handleMutation("Renamed", envelopeOf(typed.result), typed.err)
	case deleteResultMsg:
		return model.handleMutation(fmt.Sprintf("Deleted %q", typed.name), envelopeOf(typed.result), typed.err)
	case downloadLinkMsg:
		switch {
		case typed.err != nil:
			model.status = fmt.Sprintf("Download error: %v", typed.err)
		case !typed.result.Success:
			model.status = fmt.Sprintf("Download failed: %s", typed.result.Message)
		default:
			model.status = fmt.Sprintf("%s → %s", typed.name, typed.result.URL)
		}
		return model, nil
	case uploadBatchMsg:
		model.status = typed.result.Summary()
		if typed.result.Succeeded > 0 {
			return model.beginFetch(model.dashboard.FolderID)
		}
		return model, nil
	default:
		return model, nil
	}
}

func envelopeOf(result *api.EntryResult) *api.Envelope {
	if result == nil {
		return nil
	}
	return &result.Envelope
}

func (model Model) handleMutation(successStatus string, env *api.Envelope, err error) (tea.Model, tea.Cmd) {
	switch {
	case err != nil:
		model.status = fmt.Sprintf("Error: %v", err)
		return model, nil
	case env == nil || !env.Success:
		msg := "request failed"
		if env != nil && env.Message != "" {
			msg = env.Message
		}
		model.status = msg
		return model, nil
	}
	model.status = successStatus
	return model.beginFetch(model.dashboard.FolderID)
}

func (model Model) handleListResult(msg listResultMsg) Model {
	switch {
	case msg.err != nil:
		model.dashboard.ApplyError(msg.seq, msg.err.Error())
	case !msg.result.Success:
		model.dashboard.ApplyError(msg.seq, msg.result.Message)
	default:
		if model.dashboard.ApplyListing(msg.seq, msg.folderID, msg.result.Entries, msg.result.Path) {
			model.ensureCursorVisible()
		}
	}
	return model
}

func (model Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		model.status = fmt.Sprintf("Login error: %v", msg.err)
		return model, nil
	}
	if !msg.result.Success || msg.result.Token == "" || msg.result.User == nil {
		model.status = failureStatus(msg.result.Message, "login failed")
		return model, nil
	}
	if err := model.sessions.Establish(msg.result.Token, msg.result.User); err != nil {
		model.status = fmt.Sprintf("Could not save session: %v", err)
		return model, nil
	}
	model.screen = screenDashboard
	model.status = fmt.Sprintf("Welcome, %s", msg.result.User.FullName())
	return model.beginFetch("")
}

func (model Model) handleRegisterResult(msg registerResultMsg) Model {
	if msg.err != nil {
		model.status = fmt.Sprintf("Registration error: %v", msg.err)
		return model
	}
	if !msg.result.Success {
		model.status = failureStatus(msg.result.Message, "registration failed")
		return model
	}
	model.screen = screenLogin
	model.resetForm()
	model.status = failureStatus(msg.result.Message, "Registered. Check your email to activate your account.")
	return model
}

func (model Model) handleForgotResult(msg forgotResultMsg) Model {
	if msg.err != nil {
		model.status = fmt.Sprintf("Error: %v", msg.err)
		return model
	}
	if !msg.result.Success {
		model.status = failureStatus(msg.result.Message, "request failed")
		return model
	}
	model.screen = screenLogin
	model.resetForm()
	model.status = failureStatus(msg.result.Message, "Check your email for a reset link.")
	return model
}

func failureStatus(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}

func (model Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}
	if model.screen == screenDashboard {
		return model.handleDashboardKey(msg)
	}
	return model.handleAuthKey(msg)
}

func (model Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if model.screen == screenLogin {
			return model, tea.Quit
		}
		model.screen = screenLogin
		model.resetForm()
		model.status = "Sign in to your drive"
		return model, nil
	case tea.KeyTab, tea.KeyDown:
		model.moveFormFocus(1)
		return model, textinput.Blink
	case tea.KeyShiftTab, tea.KeyUp:
		model.moveFormFocus(-1)
		return model, textinput.Blink
	case tea.KeyEnter:
		if model.formFocus < len(model.form)-1 {
			model.moveFormFocus(1)
			return model, textinput.Blink
		}
		return model.submitForm()
	case tea.KeyCtrlR:
		if model.screen == screenLogin {
			model.screen = screenRegister
			model.resetForm()
			model.status = "Create your account"
		}
		return model, textinput.Blink
	case tea.KeyCtrlF:
		if model.screen == screenLogin {
			model.screen = screenForgot
			model.resetForm()
			model.status = "We will email you a reset link"
		}
		return model, textinput.Blink
	}
	var cmd tea.Cmd
	model.form[model.formFocus], cmd = model.form[model.formFocus].Update(msg)
	return model, cmd
}

func (model *Model) moveFormFocus(delta int) {
	model.form[model.formFocus].Blur()
	model.formFocus += delta
	if model.formFocus < 0 {
		model.formFocus = len(model.form) - 1
	}
	if model.formFocus >= len(model.form) {
		model.formFocus = 0
	}
	model.form[model.formFocus].Focus()
}

func (model Model) submitForm() (tea.Model, tea.Cmd) {
	switch model.screen {
	case screenLogin:
		email := strings.TrimSpace(model.form[loginFieldEmail].Value())
		password := model.form[loginFieldPassword].Value()
		if email == "" || password == "" {
			model.status = "Email and password are required"
			return model, nil
		}
		model.status = "Signing in..."
		return model, model.loginCmd(email, password)
	case screenRegister:
		data := api.RegisterData{
			FirstName: strings.TrimSpace(model.form[registerFieldFirstName].Value()),
			LastName:  strings.TrimSpace(model.form[registerFieldLastName].Value()),
			Email:     strings.TrimSpace(model.form[registerFieldEmail].Value()),
			Password:  model.form[registerFieldPassword].Value(),
		}
		if data.FirstName == "" {
			model.status = "First name is required"
			return model, nil
		}
		if err := services.ValidateEmail(data.Email); err != nil {
			model.status = err.Error()
			return model, nil
		}
		if err := services.ValidatePassword(data.Password); err != nil {
			model.status = err.Error()
			return model, nil
		}
		if data.Password != model.form[registerFieldConfirm].Value() {
			model.status = "Passwords do not match"
			return model, nil
		}
		model.status = "Creating account..."
		return model, model.registerCmd(data)
	case screenForgot:
		email := strings.TrimSpace(model.form[0].Value())
		if err := services.ValidateEmail(email); err != nil {
			model.status = err.Error()
			return model, nil
		}
		model.status = "Sending reset link..."
		return model, model.forgotCmd(email)
	}
	return model, nil
}

func (model Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.prompt == promptDelete {
		switch {
		case key.Matches(msg, model.keys.Confirm):
			entry := model.pendingEntry
			model.prompt = promptNone
			model.pendingEntry = nil
			model.status = fmt.Sprintf("Deleting %q...", entry.Name)
			return model, model.deleteCmd(*entry)
		case key.Matches(msg, model.keys.Cancel):
			model.prompt = promptNone
			model.pendingEntry = nil
			model.status = "Delete cancelled"
			return model, nil
		}
		return model, nil
	}
	if model.prompt != promptNone {
		return model.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, model.keys.Quit):
		return model, tea.Quit
	case key.Matches(msg, model.keys.Help):
		model.showHelp = !model.showHelp
		return model, nil
	case key.Matches(msg, model.keys.Logout):
		model.sessions.Clear()
		model.screen = screenLogin
		model.resetForm()
		model.status = "Signed out"
		return model, textinput.Blink
	case key.Matches(msg, model.keys.Up):
		model.dashboard.MoveCursor(-1)
		model.ensureCursorVisible()
		return model, nil
	case key.Matches(msg, model.keys.Down):
		model.dashboard.MoveCursor(1)
		model.ensureCursorVisible()
		return model, nil
	case key.Matches(msg, model.keys.Open):
		entry := model.dashboard.CurrentEntry()
		if entry == nil {
			return model, nil
		}
		if entry.IsFolder() {
			return model.beginFetch(entry.ID)
		}
		model.status = fmt.Sprintf("Fetching link for %q...", entry.Name)
		return model, model.downloadCmd(*entry)
	case key.Matches(msg, model.keys.Back):
		parentID, ok := model.dashboard.ParentFolderID()
		if !ok {
			return model, nil
		}
		return model.beginFetch(parentID)
	case key.Matches(msg, model.keys.Root):
		if model.dashboard.FolderID == "" {
			return model, nil
		}
		return model.beginFetch("")
	case key.Matches(msg, model.keys.Refresh):
		return model.beginFetch(model.dashboard.FolderID)
	case key.Matches(msg, model.keys.NewFolder):
		model.openPrompt(promptNewFolder, "Folder name", "")
		return model, textinput.Blink
	case key.Matches(msg, model.keys.Upload):
		model.openPrompt(promptUpload, "Files to upload (space separated)", "")
		return model, textinput.Blink
	case key.Matches(msg, model.keys.Rename):
		entry := model.dashboard.CurrentEntry()
		if entry == nil {
			return model, nil
		}
		model.pendingEntry = entry
		model.openPrompt(promptRename, "New name", entry.Name)
		return model, textinput.Blink
	case key.Matches(msg, model.keys.Delete):
		entry := model.dashboard.CurrentEntry()
		if entry == nil {
			return model, nil
		}
		model.pendingEntry = entry
		model.prompt = promptDelete
		if entry.IsFolder() {
			model.status = fmt.Sprintf("Delete folder %q and everything inside it? (y/n)", entry.Name)
		} else {
			model.status = fmt.Sprintf("Delete %q? (y/n)", entry.Name)
		}
		return model, nil
	case key.Matches(msg, model.keys.Download):
		entry := model.dashboard.CurrentEntry()
		if entry == nil || entry.IsFolder() {
			return model, nil
		}
		model.status = fmt.Sprintf("Fetching link for %q...", entry.Name)
		return model, model.downloadCmd(*entry)
	case key.Matches(msg, model.keys.Search):
		model.openPrompt(promptSearch, "Search", model.dashboard.SearchQuery)
		return model, textinput.Blink
	case key.Matches(msg, model.keys.ClearSearch):
		model.dashboard.ClearSearch()
		model.ensureCursorVisible()
		return model, nil
	case key.Matches(msg, model.keys.ToggleView):
		mode := model.dashboard.ToggleViewMode()
		model.status = fmt.Sprintf("View: %s", mode)
		return model, nil
	}
	return model, nil
}

func (model *Model) openPrompt(kind promptKind, placeholder, value string) {
	input := textinput.New()
	input.Placeholder = placeholder
	input.SetValue(value)
	input.CursorEnd()
	input.Focus()
	input.CharLimit = 256
	model.prompt = kind
	model.promptInput = input
}

func (model Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if model.prompt == promptSearch {
			model.dashboard.ClearSearch()
			model.ensureCursorVisible()
		}
		model.prompt = promptNone
		model.pendingEntry = nil
		model.status = "Cancelled"
		return model, nil
	case tea.KeyEnter:
		return model.commitPrompt()
	}
	var cmd tea.Cmd
	model.promptInput, cmd = model.promptInput.Update(msg)
	if model.prompt == promptSearch {
		model.dashboard.SetSearch(model.promptInput.Value())
		model.viewTop = 0
	}
	return model, cmd
}

func (model Model) commitPrompt() (tea.Model, tea.Cmd) {
	kind := model.prompt
	value := model.promptInput.Value()
	model.prompt = promptNone

	switch kind {
	case promptNewFolder:
		name, err := services.ValidateEntryName(value)
		if err != nil {
			model.status = err.Error()
			return model, nil
		}
		model.status = fmt.Sprintf("Creating %q...", name)
		return model, model.createFolderCmd(name, model.dashboard.FolderID)
	case promptRename:
		entry := model.pendingEntry
		model.pendingEntry = nil
		name, err := services.ValidateEntryName(value)
		if err != nil {
			model.status = err.Error()
			return model, nil
		}
		if entry == nil || name == entry.Name {
			model.status = "Rename cancelled"
			return model, nil
		}
		model.status = fmt.Sprintf("Renaming to %q...", name)
		return model, model.renameCmd(entry.ID, name)
	case promptUpload:
		paths := strings.Fields(value)
		if len(paths) == 0 {
			model.status = "No files given"
			return model, nil
		}
		model.status = fmt.Sprintf("Uploading %d file(s)...", len(paths))
		return model, model.uploadCmd(paths, model.dashboard.FolderID)
	case promptSearch:
		model.dashboard.SetSearch(value)
		model.ensureCursorVisible()
		return model, nil
	}
	return model, nil
}

func (model Model) beginFetch(folderID string) (Model, tea.Cmd) {
	seq := model.dashboard.BeginFetch(folderID)
	model.viewTop = 0
	return model, tea.Batch(model.fetchCmd(seq, folderID), model.spin.Tick)
}

func (model Model) fetchCmd(seq uint64, folderID string) tea.Cmd {
	return func() tea.Msg {
		result, err := model.lister.List(context.Background(), folderID)
		return listResultMsg{seq: seq, folderID: folderID, result: result, err: err}
	}
}

func (model Model) loginCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		result, err := model.accounts.Login(context.Background(), email, password)
		return loginResultMsg{result: result, err: err}
	}
}

func (model Model) registerCmd(data api.RegisterData) tea.Cmd {
	return func() tea.Msg {
		result, err := model.accounts.Register(context.Background(), data)
		return registerResultMsg{result: result, err: err}
	}
}

func (model Model) forgotCmd(email string) tea.Cmd {
	return func() tea.Msg {
		result, err := model.accounts.ForgotPassword(context.Background(), email)
		return forgotResultMsg{result: result, err: err}
	}
}

func (model Model) createFolderCmd(name, parentID string) tea.Cmd {
	return func() tea.Msg {
		result, err := model.mutator.CreateFolder(context.Background(), name, parentID)
		return createFolderResultMsg{result: result, err: err}
	}
}

func (model Model) renameCmd(entryID, name string) tea.Cmd {
	return func() tea.Msg {
		result, err := model.mutator.Rename(context.Background(), entryID, name)
		return renameResultMsg{result: result, err: err}
	}
}

func (model Model) deleteCmd(entry domain.Entry) tea.Cmd {
	return func() tea.Msg {
		result, err := model.mutator.Delete(context.Background(), entry.ID)
		return deleteResultMsg{name: entry.Name, result: result, err: err}
	}
}

func (model Model) downloadCmd(entry domain.Entry) tea.Cmd {
	return func() tea.Msg {
		result, err := model.mutator.DownloadLink(context.Background(), entry.ID)
		return downloadLinkMsg{name: entry.Name, result: result, err: err}
	}
}

func (model Model) uploadCmd(paths []string, parentID string) tea.Cmd {
	return func() tea.Msg {
		result := services.UploadBatch(context.Background(), model.uploader, paths, parentID)
		return uploadBatchMsg{result: result}
	}
}

func (model *Model) resetForm() {
	newInput := func(placeholder string, password bool) textinput.Model {
		input := textinput.New()
		input.Placeholder = placeholder
		input.CharLimit = 128
		if password {
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '•'
		}
		return input
	}

	var fields []textinput.Model
	switch model.screen {
	case screenRegister:
		fields = []textinput.Model{
			newInput("First name", false),
			newInput("Last name", false),
			newInput("Email", false),
			newInput("Password", true),
			newInput("Confirm password", true),
		}
	case screenForgot:
		fields = []textinput.Model{
			newInput("Email", false),
		}
	default:
		fields = []textinput.Model{
			newInput("Email", false),
			newInput("Password", true),
		}
	}
	fields[0].Focus()
	model.form = fields
	model.formFocus = 0
}

func (model *Model) ensureCursorVisible() {
	visible := model.dashboard.Visible()
	if len(visible) == 0 {
		model.dashboard.Cursor = 0
		model.viewTop = 0
		return
	}
	if model.dashboard.Cursor >= len(visible) {
		model.dashboard.Cursor = len(visible) - 1
	}
	if model.dashboard.Cursor < 0 {
		model.dashboard.Cursor = 0
	}
	listHeight := model.listHeight()
	if listHeight <= 0 {
		return
	}
	if model.dashboard.Cursor < model.viewTop {
		model.viewTop = model.dashboard.Cursor
	}
	if model.dashboard.Cursor >= model.viewTop+listHeight {
		model.viewTop = model.dashboard.Cursor - listHeight + 1
	}
	maxTop := len(visible) - listHeight
	if maxTop < 0 {
		maxTop = 0
	}
	if model.viewTop > maxTop {
		model.viewTop = maxTop
	}
}

func (model *Model) listHeight() int {
	return model.height - 6
}
