package state

// ToggleWrap flips the Wrap flag and returns a new state copy.
func ToggleWrap(s UIState) UIState {
	s.Wrap = !s.Wrap
	return s
}

// ToggleMode switches between EDIT and PREVIEW and sets a brief notice.
func ToggleMode(s UIState) UIState {
	if s.Mode == EDIT {
		s.Mode = PREVIEW
		s.Notice = "[PREVIEW]"
	} else {
		s.Mode = EDIT
		s.Notice = "[EDIT]"
	}
	return s
}

// ToggleView switches between Unified and SideBySide diff views.
func ToggleView(s UIState) UIState {
	if s.View == Unified {
		s.View = SideBySide
	} else {
		s.View = Unified
	}
	return s
}

// Resize updates the terminal size and falls back to unified when too narrow
// for side-by-side. Needs at least 2*MinCol plus 3 chars for the separator.
func Resize(s UIState, width, height int) UIState {
	s.Width = width
	s.Height = height
	threshold := 2*s.MinCol + 3
	if s.View == SideBySide && s.Width < threshold {
		s.View = Unified
		s.Notice = "Narrow width: using unified view"
	}
	return s
}

// ScrollUp moves the diff viewport up.
func ScrollUp(s UIState, fast bool) UIState {
	delta := 1
	if fast {
		delta = 10
	}
	if s.ScrollV >= delta {
		s.ScrollV -= delta
	} else {
		s.ScrollV = 0
	}
	return s
}

// ScrollDown moves the diff viewport down; max is the last valid offset.
func ScrollDown(s UIState, fast bool, max int) UIState {
	delta := 1
	if fast {
		delta = 10
	}
	s.ScrollV += delta
	if s.ScrollV > max {
		s.ScrollV = max
	}
	if s.ScrollV < 0 {
		s.ScrollV = 0
	}
	return s
}

// Notify replaces the notice.
func Notify(s UIState, msg string) UIState {
	s.Notice = msg
	return s
}
