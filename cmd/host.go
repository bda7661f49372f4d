package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/fatih/color"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/pilltag/internal/defaults"
	"github.com/oakwood-commons/pilltag/pkg/pilltag"
)

const maxEventLines = 6

type hostKeyMap struct {
	Activate key.Binding
	Remove   key.Binding
	Quit     key.Binding
	ForceQ   key.Binding
}

func defaultHostKeys() hostKeyMap {
	return hostKeyMap{
		Activate: key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "click/edit")),
		Remove:   key.NewBinding(key.WithKeys("delete", "x"), key.WithHelp("x", "remove")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		ForceQ:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

func (k hostKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Remove, k.Quit}
}

func (k hostKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// editingHelp shows the tag's own bindings while a session is open.
type editingHelp struct{ keys pilltag.KeyMap }

func (e editingHelp) ShortHelp() []key.Binding {
	return []key.Binding{e.keys.Confirm, e.keys.Tab, e.keys.Abort}
}

func (e editingHelp) FullHelp() [][]key.Binding { return e.keys.FullHelp() }

// hostModel is the demo program: one tag, an event log and a help line.
type hostModel struct {
	tag    *pilltag.Model
	keys   hostKeyMap
	help   help.Model
	log    logr.Logger
	events []string
	attrs  map[string]*string
}

func newHostModel(tag *pilltag.Model, cfg defaults.File, log logr.Logger) *hostModel {
	return &hostModel{
		tag:   tag,
		keys:  defaultHostKeys(),
		help:  help.New(),
		log:   log,
		attrs: attributesFromConfig(cfg.Tag),
	}
}

func (m *hostModel) Init() tea.Cmd {
	return nil
}

func (m *hostModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.SetWidth(msg.Width)
		return m, nil

	case pilltag.EventMsg:
		m.record(msg.Event)
		return m, nil

	case configReloadedMsg:
		m.applyConfig(msg.cfg)
		return m, nil

	case tea.KeyPressMsg:
		if key.Matches(msg, m.keys.ForceQ) {
			return m, tea.Quit
		}
		if !m.tag.Editing() {
			switch {
			case key.Matches(msg, m.keys.Quit):
				return m, tea.Quit
			case m.tag.Detached():
				return m, nil
			case key.Matches(msg, m.keys.Activate):
				return m, m.tag.Click()
			case key.Matches(msg, m.keys.Remove):
				return m, m.tag.Remove()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.tag, cmd = m.tag.Update(msg)
	return m, cmd
}

func (m *hostModel) View() tea.View {
	v := tea.NewView(m.render())
	v.MouseMode = tea.MouseModeAllMotion
	v.ReportFocus = true
	return v
}

func (m *hostModel) render() string {
	var b strings.Builder
	if m.tag.Detached() {
		b.WriteString(color.New(color.Faint).Sprint("(tag removed)"))
	} else {
		b.WriteString(m.tag.View())
	}
	b.WriteString("\n\n")
	for _, line := range m.events {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if len(m.events) > 0 {
		b.WriteByte('\n')
	}
	if m.tag.Editing() {
		b.WriteString(m.help.View(editingHelp{keys: m.tag.KeyMap()}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m *hostModel) record(ev pilltag.Event) {
	m.events = append(m.events, formatEvent(ev))
	if len(m.events) > maxEventLines {
		m.events = m.events[len(m.events)-maxEventLines:]
	}
}

// applyConfig restyles the tag and replays changed tag keys as attribute changes.
func (m *hostModel) applyConfig(cfg defaults.File) {
	m.tag.SetStyles(pilltag.StylesFromConfig(cfg.Styles, pilltag.DefaultStyles()))

	next := attributesFromConfig(cfg.Tag)
	for _, name := range []string{pilltag.OptionValue, pilltag.OptionEditable, pilltag.OptionRemovable, pilltag.OptionAutoComplete} {
		if err := m.tag.AttributeChanged(name, m.attrs[name], next[name]); err != nil {
			m.log.Error(err, "attribute rejected", "attribute", name)
			next[name] = m.attrs[name]
		}
	}
	m.attrs = next
}

// attributesFromConfig renders the tag section as declarative attributes:
// booleans by presence and suggestions as a JSON array.
func attributesFromConfig(tag defaults.TagConfig) map[string]*string {
	attrs := map[string]*string{}
	value := tag.Value
	attrs[pilltag.OptionValue] = &value
	present := ""
	if tag.Editable != nil && *tag.Editable {
		attrs[pilltag.OptionEditable] = &present
	}
	if tag.Removable != nil && *tag.Removable {
		attrs[pilltag.OptionRemovable] = &present
	}
	if tag.AutoComplete != nil {
		if data, err := json.Marshal(tag.AutoComplete); err == nil {
			s := string(data)
			attrs[pilltag.OptionAutoComplete] = &s
		}
	}
	return attrs
}

var (
	eventNameColor = color.New(color.FgCyan, color.Bold)
	eventTagColor  = color.New(color.FgGreen)
	eventOldColor  = color.New(color.FgYellow)
)

// formatEvent renders one event log line.
func formatEvent(ev pilltag.Event) string {
	name := eventNameColor.Sprint(ev.Name())
	switch e := ev.(type) {
	case pilltag.TagClicked:
		return fmt.Sprintf("%s %s", name, eventTagColor.Sprintf("%q", e.Tag))
	case pilltag.TagRemoved:
		return fmt.Sprintf("%s %s", name, eventTagColor.Sprintf("%q", e.Tag))
	case pilltag.TagUpdated:
		return fmt.Sprintf("%s %s -> %s", name, eventOldColor.Sprintf("%q", e.OldTag), eventTagColor.Sprintf("%q", e.NewTag))
	case pilltag.TagAdded:
		return fmt.Sprintf("%s %s", name, eventTagColor.Sprintf("%q", e.NewTag))
	}
	return name
}
