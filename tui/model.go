// Package tui is the terminal front end: the login and registration
// screens as a bubbletea program.
package tui

import (
	"context"
	"strings"

	"klikk/models"
	"klikk/views"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AuthAPI is the remote auth service as the terminal client sees it
type AuthAPI interface {
	views.Authenticator
	views.Registrar
}

type screen int

const (
	screenLogin screen = iota
	screenRegister
)

// loginResultMsg and registerResultMsg carry a finished request back
// into the update loop.
type loginResultMsg struct {
	token string
	err   error
}

type registerResultMsg struct {
	message string
	err     error
}

// requiredNotice is shown when the login form is submitted with an empty field
const requiredNotice = "Email and password are required"

// Model is the bubbletea model. All view state lives in the shared
// LoginView and RegisterView; the model only owns the text inputs.
type Model struct {
	ctx context.Context
	api AuthAPI

	login    *views.LoginView
	register *views.RegisterView

	screen      screen
	loginInputs []textinput.Model // email, password
	regInputs   []textinput.Model // models.RegistrationFields order
	focus       int
	notice      string

	keys keyMap
	help help.Model
}

// New creates the model. The login screen starts authenticated when store
// already holds a live token.
func New(ctx context.Context, store models.SessionStore, api AuthAPI) Model {
	m := Model{
		ctx:      ctx,
		api:      api,
		login:    views.NewLoginView(store, api),
		register: views.NewRegisterView(api),
		keys:     defaultKeys(),
		help:     help.New(),
	}

	m.loginInputs = []textinput.Model{
		newInput("you@example.com", false),
		newInput("password", true),
	}
	m.regInputs = []textinput.Model{
		newInput("First name", false),
		newInput("Last name", false),
		newInput("you@example.com", false),
		newInput("6+ chars, a number and a symbol", true),
	}
	m.setFocus(0)
	return m
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 128
	ti.Width = 36
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case loginResultMsg:
		m.login.Settle(msg.token, msg.err)
		if m.login.State() == views.Authenticated {
			m.loginInputs[1].SetValue("")
		}
		return m, nil

	case registerResultMsg:
		m.register.Settle(msg.message, msg.err)
		if msg.err == nil {
			for i := range m.regInputs {
				m.regInputs[i].SetValue("")
			}
			m.setFocus(0)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	if m.loggedIn() {
		if key.Matches(msg, m.keys.Logout) {
			m.login.Logout()
			m.loginInputs[0].SetValue("")
			m.loginInputs[1].SetValue("")
			m.screen = screenLogin
			m.setFocus(0)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Switch):
		if m.screen == screenLogin {
			m.screen = screenRegister
		} else {
			m.screen = screenLogin
		}
		m.notice = ""
		return m, m.setFocus(0)

	case key.Matches(msg, m.keys.Next):
		return m, m.setFocus(m.focus + 1)

	case key.Matches(msg, m.keys.Prev):
		return m, m.setFocus(m.focus - 1)

	case key.Matches(msg, m.keys.Submit):
		if m.screen == screenLogin {
			return m, m.submitLogin()
		}
		return m, m.submitRegister()
	}

	return m, m.typeInto(msg)
}

// typeInto forwards a key to the focused input and mirrors the new value
// into the view, which clears that field's error on the register screen.
func (m *Model) typeInto(msg tea.KeyMsg) tea.Cmd {
	inputs := m.inputs()
	before := inputs[m.focus].Value()

	var cmd tea.Cmd
	inputs[m.focus], cmd = inputs[m.focus].Update(msg)

	after := inputs[m.focus].Value()
	if after == before {
		return cmd
	}

	if m.screen == screenRegister {
		m.register.Edit(models.RegistrationFields[m.focus], after)
		return cmd
	}

	if m.focus == 0 {
		m.login.SetEmail(after)
	} else {
		m.login.SetPassword(after)
	}
	m.notice = ""
	return cmd
}

func (m *Model) submitLogin() tea.Cmd {
	if !m.login.Filled() {
		m.notice = requiredNotice
		return nil
	}
	m.notice = ""

	creds, ok := m.login.Begin()
	if !ok {
		return nil
	}
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		token, err := api.Login(ctx, creds)
		return loginResultMsg{token: token, err: err}
	}
}

func (m *Model) submitRegister() tea.Cmd {
	data, ok := m.register.Begin()
	if !ok {
		m.focusFirstError()
		return nil
	}
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		msg, err := api.Register(ctx, data)
		return registerResultMsg{message: msg, err: err}
	}
}

func (m *Model) focusFirstError() {
	errs := m.register.Errors()
	for i, field := range models.RegistrationFields {
		if errs.Has(field) {
			m.setFocus(i)
			return
		}
	}
}

func (m *Model) inputs() []textinput.Model {
	if m.screen == screenRegister {
		return m.regInputs
	}
	return m.loginInputs
}

// setFocus moves focus to index i, wrapping around the current form
func (m *Model) setFocus(i int) tea.Cmd {
	inputs := m.inputs()
	n := len(inputs)
	m.focus = ((i % n) + n) % n

	var cmd tea.Cmd
	for j := range inputs {
		if j == m.focus {
			cmd = inputs[j].Focus()
		} else {
			inputs[j].Blur()
		}
	}
	return cmd
}

func (m Model) loggedIn() bool {
	return m.login.State() == views.Authenticated
}

func (m Model) View() string {
	var body string
	switch {
	case m.loggedIn():
		body = m.sessionView()
	case m.screen == screenRegister:
		body = m.registerView()
	default:
		body = m.loginView()
	}

	var keys help.KeyMap = formKeys{m.keys}
	if m.loggedIn() {
		keys = sessionKeys{m.keys}
	}

	return appStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(views.AppTitle),
		cardStyle.Render(body),
		m.help.View(keys),
	))
}

func (m Model) loginView() string {
	snap := m.login.Snapshot()

	var b strings.Builder
	b.WriteString(headingStyle.Render("Sign in to your account") + "\n")
	b.WriteString(m.field("Email", m.loginInputs, 0, "") + "\n")
	b.WriteString(m.field("Password", m.loginInputs, 1, "") + "\n")

	switch {
	case snap.Pending:
		b.WriteString(noteStyle.Render("Signing in..."))
	case m.notice != "":
		b.WriteString(errorStyle.Render(m.notice))
	case snap.ErrorMessage != "":
		b.WriteString(errorStyle.Render(snap.ErrorMessage))
	}
	return b.String()
}

func (m Model) registerView() string {
	snap := m.register.Snapshot()
	labels := []string{"First name", "Last name", "Email", "Password"}

	var b strings.Builder
	b.WriteString(headingStyle.Render("Create your account") + "\n")
	for i, field := range models.RegistrationFields {
		b.WriteString(m.field(labels[i], m.regInputs, i, snap.Errors[field]) + "\n")
	}

	switch {
	case snap.Loading:
		b.WriteString(noteStyle.Render("Registering..."))
	case snap.Errors.Has(models.FieldGeneral):
		b.WriteString(errorStyle.Render(snap.Errors[models.FieldGeneral]))
	case snap.Success != "":
		b.WriteString(successStyle.Render(snap.Success))
	}
	return b.String()
}

func (m Model) sessionView() string {
	snap := m.login.Snapshot()

	lines := []string{headingStyle.Render("You are logged in")}
	if snap.HasIdentity {
		if snap.Identity.Name != "" {
			lines = append(lines, snap.Identity.Name)
		}
		if snap.Identity.Email != "" {
			lines = append(lines, snap.Identity.Email)
		}
		if !snap.Identity.ExpiresAt.IsZero() {
			lines = append(lines, noteStyle.Render("Session valid until "+snap.Identity.ExpiresAt.Local().Format("Jan 2, 2006 15:04")))
		}
	}
	return strings.Join(lines, "\n")
}

// field renders one labelled input with its error line underneath
func (m Model) field(label string, inputs []textinput.Model, i int, errMsg string) string {
	style := labelStyle
	if i == m.focus {
		style = focusedLabel
	}
	line := style.Render(label) + inputs[i].View()
	if errMsg != "" {
		line += "\n" + labelStyle.Render("") + errorStyle.Render(errMsg)
	}
	return line
}

// Run starts the terminal client and blocks until the user quits.
func Run(ctx context.Context, store models.SessionStore, api AuthAPI) error {
	_, err := tea.NewProgram(New(ctx, store, api), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
