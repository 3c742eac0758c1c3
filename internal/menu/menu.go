// Package menu holds the button-driven menu state: nested pages, a
// selection cursor and a digit-by-digit integer editor. Rendering lives in
// the ui package.
package menu

import "fmt"

// Button is one of the four device buttons.
type Button int

const (
	Up Button = iota
	Down
	Select
	Back
)

// MaxDepth bounds how many pages can be stacked.
const MaxDepth = 5

// Page is a list of items under a title.
type Page struct {
	Title string
	Items []Item
}

// Item is a menu entry. Exactly one of Open, Edit or Run is normally set.
type Item struct {
	Label string
	Open  *Page
	Edit  *IntField
	Run   func()
}

// IntField is an integer setting editable from the menu.
type IntField struct {
	Name     string
	Min, Max int
	Get      func() int
	Set      func(int)
}

type frame struct {
	page *Page
	sel  int
}

// Menu tracks the open page stack and an optional active editor.
type Menu struct {
	root   *Page
	stack  []frame
	editor *Editor
}

// New creates a menu positioned at root.
func New(root *Page) *Menu {
	m := &Menu{root: root}
	m.Reset()
	return m
}

// Reset returns to the first item of the root page and drops any editor.
func (m *Menu) Reset() {
	m.stack = append(m.stack[:0], frame{page: m.root})
	m.editor = nil
}

// Page returns the page currently shown.
func (m *Menu) Page() *Page {
	return m.top().page
}

// Selection returns the selected item index on the current page.
func (m *Menu) Selection() int {
	return m.top().sel
}

// Depth returns the number of stacked pages, 1 at the root.
func (m *Menu) Depth() int {
	return len(m.stack)
}

// Editor returns the active editor or nil.
func (m *Menu) Editor() *Editor {
	return m.editor
}

func (m *Menu) top() *frame {
	return &m.stack[len(m.stack)-1]
}

// Press handles a button. It returns true when Back is pressed on the root
// page, meaning the caller should leave the menu.
func (m *Menu) Press(b Button) bool {
	if m.editor != nil {
		if done := m.editor.Press(b); done {
			m.editor = nil
		}
		return false
	}

	f := m.top()
	n := len(f.page.Items)
	switch b {
	case Up:
		if n > 0 {
			f.sel = (f.sel - 1 + n) % n
		}
	case Down:
		if n > 0 {
			f.sel = (f.sel + 1) % n
		}
	case Select:
		if n > 0 {
			m.activate(f.page.Items[f.sel])
		}
	case Back:
		if len(m.stack) == 1 {
			m.Reset()
			return true
		}
		m.stack = m.stack[:len(m.stack)-1]
	}
	return false
}

func (m *Menu) activate(it Item) {
	switch {
	case it.Open != nil:
		if len(m.stack) < MaxDepth {
			m.stack = append(m.stack, frame{page: it.Open})
		}
	case it.Edit != nil:
		m.editor = NewEditor(it.Edit)
	case it.Run != nil:
		it.Run()
	}
}

// Editor edits an IntField one decimal digit at a time, most significant
// first. Up and Down roll the current digit, Select moves to the next digit
// and commits after the last one, Back steps to the previous digit and
// cancels from the first.
type Editor struct {
	field  *IntField
	digits []int
	cur    int
}

// NewEditor starts editing f from its current value.
func NewEditor(f *IntField) *Editor {
	width := len(fmt.Sprint(f.Max))
	v := clamp(f.Get(), f.Min, f.Max)
	digits := make([]int, width)
	for i := width - 1; i >= 0; i-- {
		digits[i] = v % 10
		v /= 10
	}
	return &Editor{field: f, digits: digits}
}

// Press handles a button and reports whether editing finished.
func (e *Editor) Press(b Button) bool {
	switch b {
	case Up:
		e.digits[e.cur] = (e.digits[e.cur] + 1) % 10
	case Down:
		e.digits[e.cur] = (e.digits[e.cur] + 9) % 10
	case Select:
		if e.cur < len(e.digits)-1 {
			e.cur++
			return false
		}
		e.field.Set(e.Value())
		return true
	case Back:
		if e.cur > 0 {
			e.cur--
			return false
		}
		return true
	}
	return false
}

// Value returns the edited value clamped to the field bounds.
func (e *Editor) Value() int {
	v := 0
	for _, d := range e.digits {
		v = v*10 + d
	}
	return clamp(v, e.field.Min, e.field.Max)
}

// Digits returns the digits being edited and the index of the current one.
func (e *Editor) Digits() ([]int, int) {
	return e.digits, e.cur
}

// Name returns the edited field's name.
func (e *Editor) Name() string {
	return e.field.Name
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
