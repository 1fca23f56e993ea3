package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tdnguyen/planboard/internal/api"
	"github.com/tdnguyen/planboard/internal/models"
	"github.com/tdnguyen/planboard/internal/state"
	"github.com/tdnguyen/planboard/internal/ui/keys"
	"github.com/tdnguyen/planboard/internal/ui/styles"
)

var roleCycle = []string{"member", "manager", "admin"}

// TeamView is the user directory with profile editing
type TeamView struct {
	client *api.Client
	store  *state.Store
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int
	loaded bool
	cursor int

	// Profile edit (own profile, or role change on others for admins)
	editing      bool
	editTargetID int64
	editFullName textinput.Model
	editDept     textinput.Model
	editTeam     textinput.Model
	roleIdx      int
	editFocusIdx int // 0=name, 1=dept, 2=team, 3=role, 4=save

	// Password change
	changingPassword bool
	currentPassword  textinput.Model
	newPassword      textinput.Model
	passwordFocusIdx int

	statusText string
	statusOK   bool
	statusSeq  int
}

// NewTeamView creates the team directory
func NewTeamView(client *api.Client, store *state.Store) *TeamView {
	name := textinput.New()
	name.Placeholder = "Full name"
	name.CharLimit = 100

	dept := textinput.New()
	dept.Placeholder = "Department"
	dept.CharLimit = 100

	team := textinput.New()
	team.Placeholder = "Team"
	team.CharLimit = 100

	current := textinput.New()
	current.Placeholder = "Current password"
	current.EchoMode = textinput.EchoPassword
	current.CharLimit = 100

	next := textinput.New()
	next.Placeholder = "New password"
	next.EchoMode = textinput.EchoPassword
	next.CharLimit = 100

	return &TeamView{
		client:          client,
		store:           store,
		styles:          styles.NewStyles(),
		keys:            keys.DefaultKeyMap(),
		editFullName:    name,
		editDept:        dept,
		editTeam:        team,
		currentPassword: current,
		newPassword:     next,
	}
}

// Init initializes the view
func (v *TeamView) Init() tea.Cmd {
	return v.loadUsers
}

type teamLoadedMsg struct {
	users []models.User
}

type profileSavedMsg struct{}

type passwordChangedMsg struct{}

func (v *TeamView) loadUsers() tea.Msg {
	ctx, cancel := reqContext()
	defer cancel()
	users, err := v.client.ListUsers(ctx)
	if err != nil {
		return ErrMsg{Err: err}
	}
	return teamLoadedMsg{users: users}
}

// Update handles messages
func (v *TeamView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case teamLoadedMsg:
		v.store.Users = msg.users
		v.loaded = true
		v.cursor = clamp(v.cursor, 0, max(0, len(v.store.Users)-1))
		return v, nil

	case profileSavedMsg:
		v.setStatus("Profile saved", true)
		return v, tea.Batch(v.loadUsers, clearStatusAfter(v.statusSeq))

	case passwordChangedMsg:
		v.setStatus("Password changed", true)
		return v, clearStatusAfter(v.statusSeq)

	case statusClearMsg:
		if msg.seq == v.statusSeq {
			v.statusText = ""
		}
		return v, nil

	case ErrMsg:
		v.loaded = true
		v.setStatus(msg.Err.Error(), false)
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v.updateEditing(msg)
		}
		if v.changingPassword {
			return v.updatePassword(msg)
		}
		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TeamView) setStatus(text string, ok bool) {
	v.statusText = text
	v.statusOK = ok
	v.statusSeq++
	v.editing = false
	v.changingPassword = false
}

func (v *TeamView) isAdmin() bool {
	return v.store.Me != nil && v.store.Me.Role == "admin"
}

func (v *TeamView) selectedUser() (models.User, bool) {
	if len(v.store.Users) == 0 {
		return models.User{}, false
	}
	return v.store.Users[clamp(v.cursor, 0, len(v.store.Users)-1)], true
}

func (v *TeamView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.store.Users)-1 {
			v.cursor++
		}
		return v, nil

	case key.Matches(msg, v.keys.Edit):
		u, ok := v.selectedUser()
		if !ok {
			return v, nil
		}
		isMe := v.store.Me != nil && u.ID == v.store.Me.ID
		if !isMe && !v.isAdmin() {
			return v, nil
		}
		v.startEdit(u)
		return v, textinput.Blink

	case msg.String() == "p":
		v.changingPassword = true
		v.passwordFocusIdx = 0
		v.currentPassword.Reset()
		v.newPassword.Reset()
		v.currentPassword.Focus()
		v.newPassword.Blur()
		return v, textinput.Blink

	case msg.String() == "r":
		return v, v.loadUsers
	}

	return v, nil
}

func (v *TeamView) startEdit(u models.User) {
	v.editing = true
	v.editTargetID = u.ID
	v.editFocusIdx = 0
	v.editFullName.SetValue(u.FullName)
	v.editDept.SetValue(u.Department)
	v.editTeam.SetValue(u.Team)
	v.roleIdx = 0
	for i, r := range roleCycle {
		if r == u.Role {
			v.roleIdx = i
		}
	}
	v.updateEditFocus()
}

func (v *TeamView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		return v, v.saveProfile()

	case key.Matches(msg, v.keys.Tab):
		v.editFocusIdx = (v.editFocusIdx + 1) % 5
		v.updateEditFocus()
		return v, nil

	case msg.String() == "shift+tab":
		v.editFocusIdx = (v.editFocusIdx + 4) % 5
		v.updateEditFocus()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		if v.editFocusIdx < 4 {
			v.editFocusIdx++
			v.updateEditFocus()
			return v, nil
		}
		return v, v.saveProfile()

	case key.Matches(msg, v.keys.Left):
		if v.editFocusIdx == 3 && v.isAdmin() {
			v.roleIdx = (v.roleIdx + len(roleCycle) - 1) % len(roleCycle)
			return v, nil
		}

	case key.Matches(msg, v.keys.Right):
		if v.editFocusIdx == 3 && v.isAdmin() {
			v.roleIdx = (v.roleIdx + 1) % len(roleCycle)
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case 0:
		v.editFullName, cmd = v.editFullName.Update(msg)
	case 1:
		v.editDept, cmd = v.editDept.Update(msg)
	case 2:
		v.editTeam, cmd = v.editTeam.Update(msg)
	}
	return v, cmd
}

func (v *TeamView) updateEditFocus() {
	v.editFullName.Blur()
	v.editDept.Blur()
	v.editTeam.Blur()
	switch v.editFocusIdx {
	case 0:
		v.editFullName.Focus()
	case 1:
		v.editDept.Focus()
	case 2:
		v.editTeam.Focus()
	}
}

func (v *TeamView) saveProfile() tea.Cmd {
	req := api.UserUpdate{
		FullName:   strings.TrimSpace(v.editFullName.Value()),
		Department: strings.TrimSpace(v.editDept.Value()),
		Team:       strings.TrimSpace(v.editTeam.Value()),
	}
	if v.isAdmin() {
		req.Role = roleCycle[v.roleIdx]
	}

	id := v.editTargetID
	isMe := v.store.Me != nil && id == v.store.Me.ID
	v.editing = false

	return func() tea.Msg {
		ctx, cancel := reqContext()
		defer cancel()
		var err error
		if isMe {
			_, err = v.client.UpdateMe(ctx, req)
		} else {
			_, err = v.client.UpdateUser(ctx, id, req)
		}
		if err != nil {
			return ErrMsg{Err: err}
		}
		return profileSavedMsg{}
	}
}

func (v *TeamView) updatePassword(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.changingPassword = false
		return v, nil

	case key.Matches(msg, v.keys.Tab):
		v.passwordFocusIdx = 1 - v.passwordFocusIdx
		if v.passwordFocusIdx == 0 {
			v.currentPassword.Focus()
			v.newPassword.Blur()
		} else {
			v.currentPassword.Blur()
			v.newPassword.Focus()
		}
		return v, nil

	case key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Save):
		if v.passwordFocusIdx == 0 {
			v.passwordFocusIdx = 1
			v.currentPassword.Blur()
			v.newPassword.Focus()
			return v, nil
		}
		current := v.currentPassword.Value()
		next := v.newPassword.Value()
		if current == "" || next == "" {
			return v, nil
		}
		v.changingPassword = false
		return v, func() tea.Msg {
			ctx, cancel := reqContext()
			defer cancel()
			if err := v.client.ChangePassword(ctx, current, next); err != nil {
				return ErrMsg{Err: err}
			}
			return passwordChangedMsg{}
		}
	}

	var cmd tea.Cmd
	if v.passwordFocusIdx == 0 {
		v.currentPassword, cmd = v.currentPassword.Update(msg)
	} else {
		v.newPassword, cmd = v.newPassword.Update(msg)
	}
	return v, cmd
}

// Editing reports whether a text input owns the keyboard
func (v *TeamView) Editing() bool {
	return v.editing || v.changingPassword
}

// View renders the view
func (v *TeamView) View() string {
	s := v.styles

	if !v.loaded {
		return s.TitleMuted.Render("Loading...")
	}

	if v.editing {
		return v.renderEditForm()
	}
	if v.changingPassword {
		return v.renderPasswordForm()
	}

	title := s.Title.Render("Team")
	if v.statusText != "" {
		statusStyle := s.StatusError
		if v.statusOK {
			statusStyle = s.StatusInfo
		}
		title += "  " + statusStyle.Render(v.statusText)
	}

	var rows []string
	for i, u := range v.store.Users {
		label := u.DisplayName()
		meta := u.Role
		if u.Team != "" {
			meta += " · " + u.Team
		}
		if !u.IsActive {
			meta += " · inactive"
		}
		if v.store.Me != nil && u.ID == v.store.Me.ID {
			label += " (you)"
		}
		line := label + "  " + s.TitleMuted.Render(meta)
		if i == v.cursor {
			rows = append(rows, s.ListSelected.Render(line))
		} else {
			rows = append(rows, s.ListItem.Render(line))
		}
	}
	if len(rows) == 0 {
		rows = append(rows, s.TitleMuted.Render("No users"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		"",
		v.renderDetail(),
		v.renderHelp(),
	)
}

func (v *TeamView) renderDetail() string {
	s := v.styles
	u, ok := v.selectedUser()
	if !ok {
		return ""
	}

	lines := []string{
		s.Title.Render(u.DisplayName()),
		s.TitleMuted.Render("@" + u.Username + "  " + u.Email),
	}
	if u.Department != "" || u.Team != "" {
		lines = append(lines, u.Department+" / "+u.Team)
	}
	return s.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)) + "\n"
}

func (v *TeamView) renderEditForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	nameStyle := s.Input
	deptStyle := s.Input
	teamStyle := s.Input
	roleStyle := s.Button
	btnStyle := s.Button
	switch v.editFocusIdx {
	case 0:
		nameStyle = s.InputFocused
	case 1:
		deptStyle = s.InputFocused
	case 2:
		teamStyle = s.InputFocused
	case 3:
		roleStyle = s.ButtonFocused
	case 4:
		btnStyle = s.ButtonFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 50)

	roleRow := roleStyle.Render("◀ " + roleCycle[v.roleIdx] + " ▶")
	if !v.isAdmin() {
		roleRow = s.TitleMuted.Render(roleCycle[v.roleIdx] + " (admins change roles)")
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Edit Profile"),
		"",
		"Full name:",
		nameStyle.Width(inputWidth).Render(v.editFullName.View()),
		"",
		"Department:",
		deptStyle.Width(inputWidth).Render(v.editDept.View()),
		"",
		"Team:",
		teamStyle.Width(inputWidth).Render(v.editTeam.View()),
		"",
		"Role:",
		roleRow,
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • Ctrl+S: save • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TeamView) renderPasswordForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	currentStyle := s.Input
	nextStyle := s.Input
	if v.passwordFocusIdx == 0 {
		currentStyle = s.InputFocused
	} else {
		nextStyle = s.InputFocused
	}

	inputWidth := clamp(contentWidth-6, 20, 40)

	form := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Change Password"),
		"",
		"Current:",
		currentStyle.Width(inputWidth).Render(v.currentPassword.View()),
		"",
		"New:",
		nextStyle.Width(inputWidth).Render(v.newPassword.View()),
		"",
		s.TitleMuted.Render("↵: confirm • Esc: cancel"),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TeamView) renderHelp() string {
	s := v.styles
	return s.Help.Render(
		fmt.Sprintf("%s edit profile • %s password • %s refresh • %s quit",
			s.HelpKey.Render("e"),
			s.HelpKey.Render("p"),
			s.HelpKey.Render("r"),
			s.HelpKey.Render("q"),
		),
	)
}
