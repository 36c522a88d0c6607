package screens

import (
	"context"

	"github.com/muurk/uistate/internal/backend"
	"github.com/muurk/uistate/internal/result"
	"github.com/muurk/uistate/internal/uistate"
)

// SettingsState is the state of the settings screen.
type SettingsState = uistate.LoadState[uistate.SwitchList]

// Settings shows boolean settings and applies changes optimistically.
type Settings struct {
	base[SettingsState]
}

// NewSettings creates the screen and starts loading.
func NewSettings(deps Deps) *Settings {
	s := &Settings{base: newBase(KindSettings, deps, uistate.Initial[uistate.SwitchList]())}
	s.Load()
	return s
}

func toSwitchList(settings []backend.Setting) uistate.SwitchList {
	list := make(uistate.SwitchList, 0, len(settings))
	for _, st := range settings {
		list = append(list, uistate.SwitchItem{
			ID:      string(st.ID),
			Label:   st.Name,
			Checked: st.Checked,
		})
	}
	return list
}

// Load fetches the settings.
func (s *Settings) Load() bool {
	return uistate.Load(s.Controller, uistate.LoadSpec[SettingsState, uistate.SwitchList]{
		Op:  string(backend.OpFetchSettings),
		Get: uistate.Self[uistate.SwitchList],
		Set: uistate.Replace[uistate.SwitchList],
		Fetch: func(ctx context.Context) result.Result[uistate.SwitchList] {
			return result.Map(s.svc.FetchSettings(ctx), toSwitchList)
		},
	})
}

// Toggle sets setting id to value right away and rolls it back if the
// backend rejects the change.
func (s *Settings) Toggle(id string, value bool) bool {
	return uistate.Toggle(s.Controller, uistate.ToggleSpec[SettingsState]{
		Op: string(backend.OpUpdateSetting),
		Get: func(st SettingsState) (uistate.SwitchList, bool) {
			return st.Data, st.IsSuccess()
		},
		Set: func(st SettingsState, l uistate.SwitchList) SettingsState {
			return st.WithData(l)
		},
		Call: func(ctx context.Context, id string, value bool) result.Result[struct{}] {
			return s.svc.UpdateSetting(ctx, backend.SettingID(id), value)
		},
	}, id, value)
}

// Flip toggles setting id to the opposite of its current value.
func (s *Settings) Flip(id string) bool {
	st := s.State()
	if !st.IsSuccess() {
		return false
	}
	item, ok := st.Data.Find(id)
	if !ok {
		return false
	}
	return s.Toggle(id, !item.Checked)
}
