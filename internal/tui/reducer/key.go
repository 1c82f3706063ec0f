package reducer

// reduceKey handles KeyPressed events. An open modal takes every key and
// closes on Esc. Commit mode's message editor has its own View<->Edit
// state machine: while editing it swallows every key and leaves on Esc,
// and in View its e/n/p bindings are checked first. Global bindings (quit,
// tab focus, mode switches 1-6) apply only after those.
func reduceKey(state StudioState, ev Event) (StudioState, []SideEffect) {
	if state.Modal != nil {
		switch ev.Key {
		case "esc":
			state.Modal = nil
			state.Dirty = true
			return state, nil
		}
		return state, nil
	}

	if state.ActiveMode == Commit {
		ms := &state.Modes.Commit
		if ms.Editing {
			switch ev.Key {
			case "esc":
				ms.Editing = false
				ms.GeneratedContent = ms.EditBuffer
			default:
				ms.EditBuffer += ev.Key
			}
			state.Dirty = true
			return state, nil
		}
		switch ev.Key {
		case "e":
			ms.Editing = true
			ms.EditBuffer = ms.GeneratedContent
			state.Dirty = true
			return state, nil
		case "n":
			if len(ms.Variants) > 0 {
				ms.VariantIndex = (ms.VariantIndex + 1) % len(ms.Variants)
				ms.GeneratedContent = ms.Variants[ms.VariantIndex]
				state.Dirty = true
			}
			return state, nil
		case "p":
			if len(ms.Variants) > 0 {
				ms.VariantIndex = (ms.VariantIndex - 1 + len(ms.Variants)) % len(ms.Variants)
				ms.GeneratedContent = ms.Variants[ms.VariantIndex]
				state.Dirty = true
			}
			return state, nil
		}
	}

	switch ev.Key {
	case "q":
		state.Quitting = true
		return state, []SideEffect{{Kind: QuitEffect}}
	case "tab":
		state.FocusedPanel = (state.FocusedPanel + 1) % 3
		state.Dirty = true
	case "1":
		return Reduce(state, Event{Kind: SwitchMode, Mode: Explore})
	case "2":
		return Reduce(state, Event{Kind: SwitchMode, Mode: Commit})
	case "3":
		return Reduce(state, Event{Kind: SwitchMode, Mode: Review})
	case "4":
		return Reduce(state, Event{Kind: SwitchMode, Mode: PR})
	case "5":
		return Reduce(state, Event{Kind: SwitchMode, Mode: Changelog})
	case "6":
		return Reduce(state, Event{Kind: SwitchMode, Mode: ReleaseNotes})
	}
	return state, nil
}
