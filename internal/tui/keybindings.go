package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the TUI.
type KeyMap struct {
	// Global
	NextTab  key.Binding
	PrevTab  key.Binding
	TabHome  key.Binding
	TabFeed  key.Binding
	TabCall  key.Binding
	TabProf  key.Binding
	Help     key.Binding
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Back     key.Binding
	Navigate key.Binding

	// Heads-up banner
	Accept  key.Binding
	Decline key.Binding
	Dismiss key.Binding
	NudgeUp key.Binding
	NudgeL  key.Binding
	NudgeR  key.Binding
	NudgeDn key.Binding
	Release key.Binding

	// Home
	SendLocal  key.Binding
	SendRemote key.Binding
	Permission key.Binding

	// Feed
	MarkRead key.Binding
	Remove   key.Binding
	ClearAll key.Binding

	// Call
	Hangup  key.Binding
	Mute    key.Binding
	Speaker key.Binding
	Video   key.Binding
	Redial  key.Binding

	// Profile
	Theme     key.Binding
	Sound     key.Binding
	Vibration key.Binding
	AutoHide  key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextTab: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		PrevTab: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev tab")),
		TabHome: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		TabFeed: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "feed")),
		TabCall: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "call")),
		TabProf: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "profile")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Select:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Navigate: key.NewBinding(key.WithKeys("g"),
			key.WithHelp("g", "go to screen")),

		Accept:  key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "accept")),
		Decline: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "decline")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		NudgeUp: key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "drag up")),
		NudgeL:  key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "drag left")),
		NudgeR:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "drag right")),
		NudgeDn: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "drag down")),
		Release: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "release")),

		SendLocal:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send local")),
		SendRemote: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "send via relay")),
		Permission: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "request permission")),

		MarkRead: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mark read")),
		Remove:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "remove")),
		ClearAll: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clear all")),

		Hangup:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "hang up")),
		Mute:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mute")),
		Speaker: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "speaker")),
		Video:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "video")),
		Redial:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "call back")),

		Theme:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle theme")),
		Sound:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sound")),
		Vibration: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "vibration")),
		AutoHide:  key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "auto-hide")),
	}
}

// tabHelp adapts the bindings of one screen to help.KeyMap.
type tabHelp struct {
	short []key.Binding
	full  [][]key.Binding
}

func (h tabHelp) ShortHelp() []key.Binding  { return h.short }
func (h tabHelp) FullHelp() [][]key.Binding { return h.full }

// helpFor returns the bindings shown in the footer for the given state.
func (k KeyMap) helpFor(t tab, bannerActions bool, detail bool) tabHelp {
	global := []key.Binding{k.NextTab, k.Help, k.Quit}

	var local []key.Binding
	switch {
	case bannerActions:
		local = []key.Binding{k.Accept, k.Decline, k.Dismiss, k.NudgeUp, k.NudgeL, k.NudgeR, k.Release}
	case detail:
		local = []key.Binding{k.Up, k.Down, k.Back}
	default:
		switch t {
		case tabHome:
			local = []key.Binding{k.Up, k.Down, k.SendLocal, k.SendRemote, k.Permission}
		case tabFeed:
			local = []key.Binding{k.Up, k.Down, k.Select, k.MarkRead, k.Remove, k.ClearAll, k.Navigate}
		case tabCall:
			local = []key.Binding{k.Hangup, k.Mute, k.Speaker, k.Video, k.Redial}
		case tabProfile:
			local = []key.Binding{k.Theme, k.Sound, k.Vibration, k.AutoHide}
		}
	}

	tabs := []key.Binding{k.TabHome, k.TabFeed, k.TabCall, k.TabProf, k.PrevTab}
	return tabHelp{
		short: append(local, global...),
		full:  [][]key.Binding{local, tabs, global},
	}
}
