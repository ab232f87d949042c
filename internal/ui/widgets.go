package ui

type Tone int

const (
	ToneNeutral Tone = iota
	ToneSuccess
	ToneWarning
)

func (t Tone) String() string {
	switch t {
	case ToneSuccess:
		return "success"
	case ToneWarning:
		return "warning"
	default:
		return "neutral"
	}
}

// Button is a submit control. Loop-only, like every widget here.
type Button struct {
	label    string
	disabled bool
	onChange func(label string, disabled bool)
}

func NewButton(label string) *Button {
	return &Button{label: label}
}

func (b *Button) Label() string  { return b.label }
func (b *Button) Disabled() bool { return b.disabled }

func (b *Button) SetLabel(label string) {
	b.label = label
	b.notify()
}

func (b *Button) SetDisabled(disabled bool) {
	b.disabled = disabled
	b.notify()
}

// OnChange registers a renderer called after every mutation.
func (b *Button) OnChange(fn func(label string, disabled bool)) {
	b.onChange = fn
}

func (b *Button) notify() {
	if b.onChange != nil {
		b.onChange(b.label, b.disabled)
	}
}

// Status is the single message region of a form. Every Show replaces the previous message.
type Status struct {
	text     string
	tone     Tone
	onChange func(text string, tone Tone)
}

func NewStatus() *Status {
	return &Status{}
}

func (s *Status) Text() string { return s.text }
func (s *Status) Tone() Tone   { return s.tone }

func (s *Status) Show(text string, tone Tone) {
	s.text = text
	s.tone = tone
	if s.onChange != nil {
		s.onChange(text, tone)
	}
}

func (s *Status) Clear() {
	s.Show("", ToneNeutral)
}

func (s *Status) OnChange(fn func(text string, tone Tone)) {
	s.onChange = fn
}
