package tui

import (
	"strings"
	"time"

	"todomaster/internal/i18n"
	"todomaster/internal/todo"
	"todomaster/internal/validation"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// todoForm 新建/编辑待办的表单。标题、描述、截止日期是文本输入；
// 分类和优先级用左右键在枚举里轮换。
// todoForm is the create/edit form. Title, description, and due date
// are text inputs; category and priority cycle through their enums
// with the arrow keys.
type todoForm struct {
	title       textinput.Model
	description textinput.Model
	dueDate     textinput.Model
	category    int
	priority    int

	focus  int
	errs   map[string]string
	editID string
	theme  Theme
	locale *i18n.I18n
}

const (
	fieldTitle = iota
	fieldDescription
	fieldCategory
	fieldPriority
	fieldDueDate
	fieldCount
)

func newTodoForm(theme Theme, locale *i18n.I18n) todoForm {
	title := textinput.New()
	title.CharLimit = 100
	title.Focus()

	desc := textinput.New()
	desc.CharLimit = 500

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10

	return todoForm{
		title:       title,
		description: desc,
		dueDate:     due,
		priority:    1, // medium
		theme:       theme,
		locale:      locale,
	}
}

// loadTodo 预填编辑对象 / loadTodo pre-fills the form for editing
func (f *todoForm) loadTodo(t todo.Todo) {
	f.editID = t.ID
	f.title.SetValue(t.Title)
	f.description.SetValue(t.Description)
	if t.DueDate != nil {
		f.dueDate.SetValue(t.DueDate.Format("2006-01-02"))
	}
	for i, c := range todo.Categories() {
		if c == t.Category {
			f.category = i
		}
	}
	for i, p := range todo.Priorities() {
		if p == t.Priority {
			f.priority = i
		}
	}
}

func (f *todoForm) editing() bool { return f.editID != "" }

func (f *todoForm) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.setFocus((f.focus + 1) % fieldCount)
			return nil
		case "shift+tab", "up":
			f.setFocus((f.focus + fieldCount - 1) % fieldCount)
			return nil
		case "left":
			if f.focus == fieldCategory {
				f.category = (f.category + len(todo.Categories()) - 1) % len(todo.Categories())
				return nil
			}
			if f.focus == fieldPriority {
				f.priority = (f.priority + len(todo.Priorities()) - 1) % len(todo.Priorities())
				return nil
			}
		case "right":
			if f.focus == fieldCategory {
				f.category = (f.category + 1) % len(todo.Categories())
				return nil
			}
			if f.focus == fieldPriority {
				f.priority = (f.priority + 1) % len(todo.Priorities())
				return nil
			}
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldDueDate:
		f.dueDate, cmd = f.dueDate.Update(msg)
	}
	return cmd
}

func (f *todoForm) setFocus(idx int) {
	f.focus = idx
	f.title.Blur()
	f.description.Blur()
	f.dueDate.Blur()
	switch idx {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	case fieldDueDate:
		f.dueDate.Focus()
	}
}

// validate 提交前校验；返回 true 表示可以提交
// validate checks the form before submit; true means good to go
func (f *todoForm) validate() bool {
	in := validation.TodoInput{
		Title:       validation.SanitizeText(f.title.Value()),
		Description: validation.SanitizeText(f.description.Value()),
		Category:    string(todo.Categories()[f.category]),
		Priority:    string(todo.Priorities()[f.priority]),
		DueDate:     strings.TrimSpace(f.dueDate.Value()),
	}
	f.errs = validation.FieldErrors(validation.Validate.Struct(in))
	return len(f.errs) == 0
}

func (f *todoForm) draft() todo.Draft {
	return todo.Draft{
		Title:       validation.SanitizeText(f.title.Value()),
		Description: validation.SanitizeText(f.description.Value()),
		Category:    todo.Categories()[f.category],
		Priority:    todo.Priorities()[f.priority],
		DueDate:     f.parsedDue(),
	}
}

func (f *todoForm) patch() todo.Patch {
	title := validation.SanitizeText(f.title.Value())
	desc := validation.SanitizeText(f.description.Value())
	category := todo.Categories()[f.category]
	priority := todo.Priorities()[f.priority]
	return todo.Patch{
		Title:       &title,
		Description: &desc,
		Category:    &category,
		Priority:    &priority,
		DueDate:     f.parsedDue(),
	}
}

func (f *todoForm) parsedDue() *time.Time {
	raw := strings.TrimSpace(f.dueDate.Value())
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &parsed
}

func (f *todoForm) view(width int) string {
	t := f.locale.T
	heading := t("form.new_todo")
	if f.editing() {
		heading = t("form.edit_todo")
	}

	var b strings.Builder
	b.WriteString(f.theme.TitleStyle.Render(heading) + "\n\n")
	b.WriteString(f.renderField(fieldTitle, t("todo.title"), f.title.View()))
	b.WriteString(f.renderField(fieldDescription, t("todo.description"), f.description.View()))
	b.WriteString(f.renderField(fieldCategory, t("todo.category"), f.renderChoice(string(todo.Categories()[f.category]), f.focus == fieldCategory)))
	b.WriteString(f.renderField(fieldPriority, t("todo.priority"), f.renderChoice(string(todo.Priorities()[f.priority]), f.focus == fieldPriority)))
	b.WriteString(f.renderField(fieldDueDate, t("todo.due"), f.dueDate.View()))

	b.WriteString("\n" + f.theme.MutedStyle.Render("enter "+t("form.submit")+" · esc "+t("form.cancel")))
	return f.theme.ModalStyle.Width(min(width-4, 70)).Render(b.String())
}

func (f *todoForm) renderField(idx int, label, input string) string {
	style := f.theme.MutedStyle
	if f.focus == idx {
		style = f.theme.InputLabelStyle
	}
	line := style.Render(label) + "\n" + input + "\n"
	if msg := f.fieldError(idx); msg != "" {
		line += f.theme.ErrorStyle.Render(msg) + "\n"
	}
	return line
}

func (f *todoForm) renderChoice(value string, focused bool) string {
	if focused {
		return "◂ " + value + " ▸"
	}
	return "  " + value
}

func (f *todoForm) fieldError(idx int) string {
	if f.errs == nil {
		return ""
	}
	t := f.locale.T
	switch idx {
	case fieldTitle:
		switch f.errs["Title"] {
		case "required":
			return t("form.title_required")
		case "max":
			return t("form.title_too_long", 100)
		}
	case fieldCategory:
		if f.errs["Category"] != "" {
			return t("form.bad_category")
		}
	case fieldPriority:
		if f.errs["Priority"] != "" {
			return t("form.bad_priority")
		}
	case fieldDueDate:
		if f.errs["DueDate"] != "" {
			return t("form.bad_date")
		}
	}
	return ""
}

// authForm 登录/注册表单；ctrl+t 在两种模式间切换
// authForm is the sign-in/sign-up form; ctrl+t toggles between modes
type authForm struct {
	name     textinput.Model
	email    textinput.Model
	password textinput.Model

	registering bool
	focus       int
	errs        map[string]string
	theme       Theme
	locale      *i18n.I18n
}

func newAuthForm(theme Theme, locale *i18n.I18n) authForm {
	name := textinput.New()
	name.CharLimit = 50

	email := textinput.New()
	email.CharLimit = 100
	email.Focus()

	password := textinput.New()
	password.CharLimit = 100
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return authForm{
		name:     name,
		email:    email,
		password: password,
		theme:    theme,
		locale:   locale,
	}
}

func (f *authForm) fields() int {
	if f.registering {
		return 3
	}
	return 2
}

func (f *authForm) toggleMode() {
	f.registering = !f.registering
	f.errs = nil
	f.setFocus(0)
}

func (f *authForm) update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "down":
			f.setFocus((f.focus + 1) % f.fields())
			return nil
		case "shift+tab", "up":
			f.setFocus((f.focus + f.fields() - 1) % f.fields())
			return nil
		}
	}

	var cmd tea.Cmd
	switch f.activeField() {
	case "name":
		f.name, cmd = f.name.Update(msg)
	case "email":
		f.email, cmd = f.email.Update(msg)
	case "password":
		f.password, cmd = f.password.Update(msg)
	}
	return cmd
}

// activeField 注册模式多出 name 字段，下标含义随之偏移
// activeField accounts for the extra name field in register mode
func (f *authForm) activeField() string {
	if f.registering {
		switch f.focus {
		case 0:
			return "name"
		case 1:
			return "email"
		default:
			return "password"
		}
	}
	if f.focus == 0 {
		return "email"
	}
	return "password"
}

func (f *authForm) setFocus(idx int) {
	f.focus = idx
	f.name.Blur()
	f.email.Blur()
	f.password.Blur()
	switch f.activeField() {
	case "name":
		f.name.Focus()
	case "email":
		f.email.Focus()
	case "password":
		f.password.Focus()
	}
}

func (f *authForm) validate() bool {
	in := validation.Credentials{
		Email:    strings.TrimSpace(f.email.Value()),
		Password: f.password.Value(),
		Name:     validation.SanitizeText(f.name.Value()),
	}
	f.errs = validation.FieldErrors(validation.Validate.Struct(in))
	if f.registering && in.Name == "" {
		if f.errs == nil {
			f.errs = make(map[string]string)
		}
		f.errs["Name"] = "required"
	}
	return len(f.errs) == 0
}

func (f *authForm) view(width int) string {
	t := f.locale.T
	heading := t("view.login")
	action := t("auth.login")
	switchHint := t("auth.switch_signup")
	if f.registering {
		heading = t("view.register")
		action = t("auth.register")
		switchHint = t("auth.switch_login")
	}

	var b strings.Builder
	b.WriteString(f.theme.TitleStyle.Render("TodoMaster — "+heading) + "\n\n")

	if f.registering {
		b.WriteString(f.renderAuthField("name", t("auth.name"), f.name.View()))
	}
	b.WriteString(f.renderAuthField("email", t("auth.email"), f.email.View()))
	b.WriteString(f.renderAuthField("password", t("auth.password"), f.password.View()))

	b.WriteString("\n" + f.theme.MutedStyle.Render("enter "+action+" · ctrl+t "+switchHint))
	box := f.theme.ModalStyle.Width(min(width-4, 60)).Render(b.String())
	return lipgloss.Place(width, lipgloss.Height(box)+4, lipgloss.Center, lipgloss.Center, box)
}

func (f *authForm) renderAuthField(name, label, input string) string {
	style := f.theme.MutedStyle
	if f.activeField() == name {
		style = f.theme.InputLabelStyle
	}
	line := style.Render(label) + "\n" + input + "\n"
	if msg := f.authError(name); msg != "" {
		line += f.theme.ErrorStyle.Render(msg) + "\n"
	}
	return line
}

func (f *authForm) authError(name string) string {
	if f.errs == nil {
		return ""
	}
	t := f.locale.T
	switch name {
	case "email":
		switch f.errs["Email"] {
		case "required":
			return t("auth.email_required")
		case "email":
			return t("auth.bad_email")
		}
	case "password":
		if f.errs["Password"] != "" {
			return t("auth.password_short", 6)
		}
	case "name":
		if f.errs["Name"] != "" {
			return t("auth.name_required")
		}
	}
	return ""
}
