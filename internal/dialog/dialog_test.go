package dialog

import (
	"strings"
	"testing"
)

func TestConfirmAndCancelBothClose(t *testing.T) {
	for _, action := range []string{ActionConfirm, ActionCancel, "", "unknown"} {
		closed := 0
		d := DeleteLicense("enterprise", func() { closed++ })
		d.Handle(action)
		if closed != 1 {
			t.Fatalf("action %q: expected one close, got %d", action, closed)
		}
	}
}

func TestNilOnClose(t *testing.T) {
	d := Confirm{Title: "x"}
	d.Confirm()
	d.Cancel()
}

func TestDeleteLicenseCopy(t *testing.T) {
	d := DeleteLicense("basic", nil)
	if !strings.Contains(d.Message, "basic") {
		t.Fatalf("expected license type in message, got %q", d.Message)
	}
	if d.ConfirmLabel == "" || d.CancelLabel == "" {
		t.Fatalf("expected both button labels")
	}
}
