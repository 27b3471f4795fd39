package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconCall     = "\uf095" // nf-fa-phone
	IconMessage  = "\uf27a" // nf-fa-commenting
	IconReminder = "\uf073" // nf-fa-calendar
	IconBell     = "\uf0f3" // nf-fa-bell
	IconHome     = "\uf015" // nf-fa-home
	IconProfile  = "\uf007" // nf-fa-user
	IconDot      = "\u25cf"
)

// Toast icons
var (
	IconNotifyInfo    = "\uf05a" // nf-fa-info_circle
	IconNotifyWarning = "\uf071" // nf-fa-warning
	IconNotifyError   = "\uf057" // nf-fa-times_circle
)
