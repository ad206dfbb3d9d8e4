package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"clouddrive/internal/domain"
	"clouddrive/internal/state"
)

type uiStyles struct {
	titleStyle  lipgloss.Style
	headerStyle lipgloss.Style
	mutedStyle  lipgloss.Style
	statusStyle lipgloss.Style
	warnStyle   lipgloss.Style
	cursorStyle lipgloss.Style
	folderStyle lipgloss.Style
	panelBorder lipgloss.Style
	cardBorder  lipgloss.Style
}

func stylesFor(model Model) uiStyles {
	if strings.ToLower(model.dashboard.Prefs.Theme) == "light" {
		return uiStyles{
			titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("25")),
			headerStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("235")),
			mutedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
			statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("25")).Bold(true),
			warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true),
			cursorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("90")).Bold(true),
			folderStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("28")),
			panelBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
			cardBorder:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		}
	}
	return uiStyles{
		titleStyle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		headerStyle: lipgloss.NewStyle().Bold(true),
		mutedStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		statusStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true),
		warnStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true),
		cursorStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		folderStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		panelBorder: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		cardBorder:  lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
	}
}

func (model Model) View() string {
	styles := stylesFor(model)
	if model.screen != screenDashboard {
		return renderAuthView(model, styles)
	}
	if model.showHelp {
		return renderHelpView(model, styles)
	}
	header := renderHeader(model, styles)
	body := renderBody(model, styles)
	footer := renderFooter(model, styles)
	return strings.Join([]string{header, body, footer}, "\n")
}

func renderAuthView(model Model, styles uiStyles) string {
	var title, hint string
	switch model.screen {
	case screenRegister:
		title = "Create account"
		hint = "enter submit  tab next field  esc back to sign in"
	case screenForgot:
		title = "Forgot password"
		hint = "enter submit  esc back to sign in"
	default:
		title = "Sign in"
		hint = "enter submit  ctrl+r register  ctrl+f forgot password  esc quit"
	}

	lines := []string{
		styles.titleStyle.Render("CloudDrive"),
		styles.mutedStyle.Render("Your files, in the terminal"),
		"",
		styles.headerStyle.Render(title),
		"",
	}
	for _, field := range model.form {
		lines = append(lines, field.View())
	}
	lines = append(lines, "", statusLineStyle(model, styles).Render(model.status), "", styles.mutedStyle.Render(hint))

	panel := styles.panelBorder.Width(maxInt(minInt(model.width-4, 60), 30)).Render(strings.Join(lines, "\n"))
	if model.width > 0 && model.height > 0 {
		return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center, panel)
	}
	return panel
}

func renderHeader(model Model, styles uiStyles) string {
	crumbs := breadcrumbs(model.dashboard.Path)
	left := styles.titleStyle.Render("CloudDrive") + "  " + crumbs
	right := ""
	if user := model.sessions.User(); user != nil {
		right = styles.mutedStyle.Render(user.FullName())
	}
	if model.dashboard.Loading() {
		right = model.spin.View() + " " + right
	}
	return padLine(left, right, model.width)
}

func renderBody(model Model, styles uiStyles) string {
	height := model.listHeight()
	if height < 3 {
		height = 3
	}

	if model.dashboard.Status == state.StatusFailed {
		lines := []string{
			styles.warnStyle.Render("Could not load this folder"),
			model.dashboard.ErrorMsg,
			"",
			styles.mutedStyle.Render("r retry  ← parent folder"),
		}
		return fillLines(lines, height)
	}

	visible := model.dashboard.Visible()
	if len(visible) == 0 {
		message := "This folder is empty"
		if model.dashboard.Loading() {
			message = "Loading..."
		} else if model.dashboard.SearchQuery != "" {
			message = fmt.Sprintf("Nothing matches %q", model.dashboard.SearchQuery)
		} else if model.dashboard.Status != state.StatusLoaded {
			message = "Loading..."
		}
		lines := []string{styles.mutedStyle.Render(message)}
		if !model.dashboard.Loading() && model.dashboard.SearchQuery == "" {
			lines = append(lines, "", styles.mutedStyle.Render("u upload files  n new folder"))
		}
		return fillLines(lines, height)
	}

	if model.dashboard.Prefs.ViewMode == domain.ViewGrid {
		return renderGrid(model, styles, visible, height)
	}
	return renderList(model, styles, visible, height)
}

func renderList(model Model, styles uiStyles, visible []domain.Entry, height int) string {
	start := clamp(model.viewTop, 0, maxInt(len(visible)-1, 0))
	end := minInt(start+height, len(visible))

	nameWidth := maxInt(model.width-34, 20)
	lines := make([]string, 0, height)
	for index := start; index < end; index++ {
		entry := visible[index]
		name := truncate(entry.Name, nameWidth)
		line := fmt.Sprintf("%s %-*s %9s  %s", entryIcon(entry), nameWidth, name, sizeLabel(entry), relativeTime(entry.CreatedAt))
		switch {
		case index == model.dashboard.Cursor:
			line = styles.cursorStyle.Render(line)
		case entry.IsFolder():
			line = styles.folderStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return fillLines(lines, height)
}

func renderGrid(model Model, styles uiStyles, visible []domain.Entry, height int) string {
	cardWidth := 22
	columns := maxInt(model.width/(cardWidth+2), 1)

	cards := make([]string, 0, len(visible))
	for index, entry := range visible {
		border := styles.cardBorder
		if index == model.dashboard.Cursor {
			border = border.BorderForeground(lipgloss.Color("205"))
		}
		name := truncate(entry.Name, cardWidth-2)
		if index == model.dashboard.Cursor {
			name = styles.cursorStyle.Render(name)
		} else if entry.IsFolder() {
			name = styles.folderStyle.Render(name)
		}
		detail := relativeTime(entry.CreatedAt)
		if !entry.IsFolder() {
			detail = sizeLabel(entry) + "  " + detail
		}
		content := strings.Join([]string{
			entryIcon(entry),
			name,
			styles.mutedStyle.Render(truncate(detail, cardWidth-2)),
		}, "\n")
		cards = append(cards, border.Width(cardWidth).Render(content))
	}

	rows := make([]string, 0, len(cards)/columns+1)
	for start := 0; start < len(cards); start += columns {
		end := minInt(start+columns, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[start:end]...))
	}
	grid := strings.Join(rows, "\n")

	lines := strings.Split(grid, "\n")
	top := gridScrollTop(model, columns, len(lines))
	if top > 0 && top < len(lines) {
		lines = lines[top:]
	}
	return fillLines(lines, height)
}

// gridScrollTop keeps the cursor's card row on screen. Cards are a
// fixed five lines tall (three content lines plus the border).
func gridScrollTop(model Model, columns, totalLines int) int {
	const cardHeight = 5
	row := model.dashboard.Cursor / columns
	visibleRows := maxInt(model.listHeight()/cardHeight, 1)
	firstRow := row - visibleRows + 1
	if firstRow < 0 {
		firstRow = 0
	}
	top := firstRow * cardHeight
	if top >= totalLines {
		top = 0
	}
	return top
}

func renderFooter(model Model, styles uiStyles) string {
	if model.prompt != promptNone && model.prompt != promptDelete {
		label := promptLabel(model.prompt)
		prompt := styles.headerStyle.Render(label+": ") + model.promptInput.View()
		hint := styles.mutedStyle.Render("enter confirm  esc cancel")
		return strings.Join([]string{prompt, hint}, "\n")
	}

	statusLine := statusLineStyle(model, styles).Render(truncate(model.status, maxInt(model.width-2, 20)))

	counts := entryCounts(model.dashboard.Entries)
	info := fmt.Sprintf("%s  View: %s", counts, model.dashboard.Prefs.ViewMode)
	if model.dashboard.SearchQuery != "" {
		info += fmt.Sprintf("  Search: %s", model.dashboard.SearchQuery)
	}
	keys := "↑/↓ move  enter open  ← back  n folder  u upload  e rename  d delete  o link  / search  v view  ? help  q quit"
	if model.prompt == promptDelete {
		keys = "y confirm  n/esc cancel"
	}
	footerLine := padLine(info, keys, model.width)
	return strings.Join([]string{statusLine, styles.mutedStyle.Render(footerLine)}, "\n")
}

func statusLineStyle(model Model, styles uiStyles) lipgloss.Style {
	lower := strings.ToLower(model.status)
	if strings.Contains(lower, "error") || strings.Contains(lower, "failed") || strings.Contains(lower, "cannot") {
		return styles.warnStyle
	}
	return styles.statusStyle
}

func renderHelpView(model Model, styles uiStyles) string {
	bindings := []key.Binding{
		model.keys.Up,
		model.keys.Down,
		model.keys.Open,
		model.keys.Back,
		model.keys.Root,
		model.keys.Refresh,
		model.keys.NewFolder,
		model.keys.Upload,
		model.keys.Rename,
		model.keys.Delete,
		model.keys.Download,
		model.keys.Search,
		model.keys.ClearSearch,
		model.keys.ToggleView,
		model.keys.Logout,
		model.keys.Help,
		model.keys.Quit,
	}

	lines := []string{styles.headerStyle.Render("CloudDrive Help"), ""}
	lines = append(lines, styles.headerStyle.Render("Navigation"))
	lines = append(lines, "↑/↓ move cursor", "enter open folder or fetch file link", "← parent folder", "g root folder")
	lines = append(lines, "", styles.headerStyle.Render("Files"))
	lines = append(lines, "u upload local files", "n create folder", "e rename", "d delete (asks first)", "o signed download link")
	lines = append(lines, "", styles.headerStyle.Render("Display"))
	lines = append(lines, "/ filter current folder", "x clear filter", "v toggle grid and list")
	lines = append(lines, "", styles.headerStyle.Render("Keys"))
	for _, binding := range bindings {
		keysLabel := strings.Join(binding.Keys(), ", ")
		lines = append(lines, fmt.Sprintf("%-18s %s", keysLabel, binding.Help().Desc))
	}
	lines = append(lines, "", "Press ? to close help")
	content := strings.Join(lines, "\n")
	width := model.width
	if width <= 0 {
		width = 80
	}
	return styles.panelBorder.Width(maxInt(width-2, 10)).Render(content)
}

func promptLabel(kind promptKind) string {
	switch kind {
	case promptNewFolder:
		return "New folder"
	case promptRename:
		return "Rename"
	case promptUpload:
		return "Upload"
	case promptSearch:
		return "Search"
	default:
		return "Input"
	}
}

func breadcrumbs(path []domain.PathSegment) string {
	parts := []string{"My Drive"}
	for _, segment := range path {
		parts = append(parts, segment.Name)
	}
	return strings.Join(parts, " › ")
}

func entryCounts(entries []domain.Entry) string {
	var folders, files int
	for _, entry := range entries {
		if entry.IsFolder() {
			folders++
		} else {
			files++
		}
	}
	return fmt.Sprintf("%d folder(s), %d file(s)", folders, files)
}

func entryIcon(entry domain.Entry) string {
	if entry.IsFolder() {
		return "📁"
	}
	mime := entry.MimeType
	switch {
	case strings.HasPrefix(mime, "image/"):
		return "🖼"
	case strings.HasPrefix(mime, "video/"):
		return "🎬"
	case strings.HasPrefix(mime, "audio/"):
		return "🎵"
	case strings.Contains(mime, "pdf"):
		return "📕"
	case strings.Contains(mime, "zip") || strings.Contains(mime, "compressed"):
		return "🗜"
	case strings.HasPrefix(mime, "text/"):
		return "📝"
	default:
		return "📄"
	}
}

func formatSize(size int64) string {
	if size <= 0 {
		return "-"
	}
	units := []string{"B", "KB", "MB", "GB"}
	value := float64(size)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(units)-1 {
		value /= 1024
		unitIndex++
	}
	return fmt.Sprintf("%.1f %s", value, units[unitIndex])
}

func sizeLabel(entry domain.Entry) string {
	if entry.IsFolder() {
		return "-"
	}
	return formatSize(entry.Size)
}

func relativeTime(when time.Time) string {
	if when.IsZero() {
		return "-"
	}
	elapsed := time.Since(when)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	case elapsed < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	case elapsed < 365*24*time.Hour:
		return fmt.Sprintf("%dmo ago", int(elapsed.Hours()/(24*30)))
	default:
		return fmt.Sprintf("%dy ago", int(elapsed.Hours()/(24*365)))
	}
}

func fillLines(lines []string, height int) string {
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func truncate(value string, max int) string {
	runes := []rune(value)
	if max <= 3 || len(runes) <= max {
		return value
	}
	return string(runes[:max-3]) + "..."
}

func padLine(left, right string, width int) string {
	if width <= 0 {
		return left
	}
	space := width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		return left + " " + right
	}
	return left + strings.Repeat(" ", space) + right
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
