package dialog

import "fmt"

const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

// Confirm is a two-button overlay. Both buttons close it through OnClose;
// the caller decides what, if anything, happens next.
type Confirm struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	OnClose      func()
}

func (d Confirm) Confirm() {
	d.close()
}

func (d Confirm) Cancel() {
	d.close()
}

// Handle dispatches a submitted button value. Unknown actions are treated as
// cancel.
func (d Confirm) Handle(action string) {
	switch action {
	case ActionConfirm:
		d.Confirm()
	default:
		d.Cancel()
	}
}

func (d Confirm) close() {
	if d.OnClose != nil {
		d.OnClose()
	}
}

func DeleteLicense(licenseType string, onClose func()) Confirm {
	return Confirm{
		Title:        "Delete license",
		Message:      fmt.Sprintf("Delete the %s license? This cannot be undone.", licenseType),
		ConfirmLabel: "Delete",
		CancelLabel:  "Cancel",
		OnClose:      onClose,
	}
}
