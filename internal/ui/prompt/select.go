package prompt

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/sahilm/fuzzy"

	"github.com/raphi011/hookr/internal/ui/styles"
)

const maxVisible = 10

// Option is one selectable entry.
type Option struct {
	Label       string
	Description string
}

// SelectResult holds the result of a selection prompt.
type SelectResult struct {
	Value     string
	Index     int
	Cancelled bool
}

// optionSource implements fuzzy.Source for our options.
type optionSource []Option

func (s optionSource) String(i int) string { return s[i].Label }
func (s optionSource) Len() int            { return len(s) }

type selectModel struct {
	prompt    string
	options   []Option
	input     textinput.Model
	matches   []fuzzy.Match
	cursor    int
	selected  int
	done      bool
	cancelled bool
}

func newSelectModel(prompt string, options []Option) selectModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Focus()
	ti.SetWidth(40)

	m := selectModel{
		prompt:   prompt,
		options:  options,
		input:    ti,
		selected: -1,
	}
	m.filter()
	return m
}

// filter ranks the options against the current input. An empty filter
// keeps the original order.
func (m *selectModel) filter() {
	query := m.input.Value()
	if query == "" {
		m.matches = make([]fuzzy.Match, len(m.options))
		for i, o := range m.options {
			m.matches[i] = fuzzy.Match{Str: o.Label, Index: i}
		}
	} else {
		m.matches = fuzzy.FindFrom(query, optionSource(m.options))
	}
	m.cursor = min(m.cursor, max(len(m.matches)-1, 0))
}

func (m selectModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		switch key.String() {
		case "enter":
			if len(m.matches) == 0 {
				return m, nil
			}
			m.selected = m.matches[m.cursor].Index
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.matches)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.filter()
	}
	return m, cmd
}

func (m selectModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}

	var b strings.Builder
	b.WriteString(styles.Bold.Render(m.prompt) + "\n")
	b.WriteString(m.input.View() + "\n\n")

	start := 0
	if m.cursor >= maxVisible {
		start = m.cursor - maxVisible + 1
	}
	end := min(start+maxVisible, len(m.matches))

	for i := start; i < end; i++ {
		match := m.matches[i]
		opt := m.options[match.Index]

		cursor := "  "
		if i == m.cursor {
			cursor = styles.AccentStyle.Render("> ")
		}
		b.WriteString(cursor + highlight(opt.Label, match.MatchedIndexes, i == m.cursor))
		if opt.Description != "" {
			b.WriteString("  " + styles.MutedStyle.Render(opt.Description))
		}
		b.WriteString("\n")
	}

	if len(m.matches) == 0 {
		b.WriteString(styles.MutedStyle.Render("  No matching items") + "\n")
	} else if end < len(m.matches) {
		b.WriteString(styles.MutedStyle.Render("  ↓ more below") + "\n")
	}
	b.WriteString("\n" + styles.MutedStyle.Render("↑/↓ select • type to filter • enter confirm • esc cancel"))

	return tea.NewView(b.String())
}

// highlight renders label with the fuzzy matched characters emphasized.
func highlight(label string, matched []int, selected bool) string {
	style := styles.NormalStyle
	if selected {
		style = styles.AccentStyle
	}
	if len(matched) == 0 {
		return style.Render(label)
	}

	set := make(map[int]bool, len(matched))
	for _, idx := range matched {
		set[idx] = true
	}

	var b strings.Builder
	for i, r := range []rune(label) {
		if set[i] {
			b.WriteString(styles.HighlightStyle.Render(string(r)))
		} else {
			b.WriteString(style.Render(string(r)))
		}
	}
	return b.String()
}

// Select shows a fuzzy-filtered list and returns the chosen option.
func Select(prompt string, options []Option) (SelectResult, error) {
	if len(options) == 0 {
		return SelectResult{Cancelled: true}, nil
	}

	finalModel, err := run(newSelectModel(prompt, options))
	if err != nil {
		return SelectResult{}, err
	}
	m := finalModel.(selectModel)

	if m.cancelled || m.selected < 0 || m.selected >= len(options) {
		return SelectResult{Cancelled: true}, nil
	}
	return SelectResult{
		Value: options[m.selected].Label,
		Index: m.selected,
	}, nil
}
