package tui

const unknownTab = "unknown"

// tab identifies the active screen.
type tab int

const (
	tabHome tab = iota
	tabFeed
	tabCall
	tabProfile
)

var tabs = []tab{tabHome, tabFeed, tabCall, tabProfile}

func (t tab) String() string {
	switch t {
	case tabHome:
		return "home"
	case tabFeed:
		return "feed"
	case tabCall:
		return "call"
	case tabProfile:
		return "profile"
	default:
		return unknownTab
	}
}

// tabForScreen maps a notification routing hint to a tab.
func tabForScreen(screen string) (tab, bool) {
	switch screen {
	case "home", "index":
		return tabHome, true
	case "feed", "notifications":
		return tabFeed, true
	case "call":
		return tabCall, true
	case "profile":
		return tabProfile, true
	default:
		return 0, false
	}
}
