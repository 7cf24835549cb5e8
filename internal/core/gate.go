package core

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"sourcemod-installer/internal/ports"
	"sourcemod-installer/internal/types"
)

type GateState string

const (
	GateAwaitingConsent GateState = "awaiting-consent"
	GateResolved        GateState = "resolved"
)

// licensePrompt follows the displayed license text.
const licensePrompt = "SourceMod is licensed under GPLv3. For more information, see " +
	"https://www.sourcemod.net/license.php\n" +
	"You must acknowledge and comply with the license agreement to install and use SourceMod.\n" +
	"Proceed with installation?"

// ConsentGate walks a first install through license review. It starts
// awaiting consent and resolves exactly once; only an explicit yes
// allows the install to proceed. A declined or indeterminate answer
// resolves to not allowed, so non-interactive sessions can never
// install silently.
type ConsentGate struct {
	Pager   ports.PagerPort
	Confirm ports.ConfirmPort

	state   GateState
	allowed bool
}

func NewConsentGate(pager ports.PagerPort, confirm ports.ConfirmPort) *ConsentGate {
	return &ConsentGate{Pager: pager, Confirm: confirm, state: GateAwaitingConsent}
}

// Resolve shows the license text and asks for confirmation. Calling it
// again after resolution returns the recorded answer without prompting.
func (g *ConsentGate) Resolve(licenseText string) (bool, error) {
	if g.state == GateResolved {
		return g.allowed, nil
	}
	if g.Pager == nil || g.Confirm == nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("consent gate requires pager and confirm ports")
	}
	if err := g.Pager.Page(licenseText); err != nil {
		return false, err
	}
	g.state = GateResolved
	g.allowed = g.Confirm.Confirm(licensePrompt) == types.ConsentGranted
	return g.allowed, nil
}

func (g *ConsentGate) State() GateState {
	return g.state
}
