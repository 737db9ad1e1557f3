package analyzer

import "github.com/leonard/asahi-map/internal/layout"

// Action enumerates the recommendations the Analyzer can emit for a single
// key event.
type Action int

const (
	// ActionNone has no user-visible effect.
	ActionNone Action = iota
	// ActionSwitchLayout means the buffered word was typed in the wrong
	// layout and should be rewritten in the other one.
	ActionSwitchLayout
	// ActionCorrectWrongLayout is the manual-hotkey equivalent of
	// ActionSwitchLayout: rewrite the buffer (or selection) unconditionally.
	ActionCorrectWrongLayout
	// ActionLayoutChanged means the user pressed the host's layout-switch
	// chord; only the shadow layout index changes.
	ActionLayoutChanged
	// ActionTransliterate requests Cyrillic->Latin transliteration of the
	// buffer or selection.
	ActionTransliterate
	// ActionInvertCase requests a case swap of the buffer or selection.
	ActionInvertCase
	// ActionNumToWords requests spelling out a number in the buffer or
	// selection.
	ActionNumToWords
	// ActionReplaceText is an autoreplace/autocorrect match at a word
	// boundary.
	ActionReplaceText
)

// String implements fmt.Stringer for log output.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionSwitchLayout:
		return "switch_layout"
	case ActionCorrectWrongLayout:
		return "correct_wrong_layout"
	case ActionLayoutChanged:
		return "layout_changed"
	case ActionTransliterate:
		return "transliterate"
	case ActionInvertCase:
		return "invert_case"
	case ActionNumToWords:
		return "num_to_words"
	case ActionReplaceText:
		return "replace_text"
	default:
		return "unknown"
	}
}

// Result is the tagged value the Analyzer returns for every key event. It is
// immutable once returned: callers must not mutate Payload.
type Result struct {
	Action            Action
	TargetLayoutIndex int // 0 or 1, meaningful only for ActionSwitchLayout
	Payload           []layout.KeyCode // copy of the word buffer at emission time, nil if empty
	TextPayload       string           // replacement text, meaningful only for ActionReplaceText
	Confidence        float64
}

func none() Result {
	return Result{Action: ActionNone}
}
