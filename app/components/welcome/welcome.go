// Package welcome renders the full-screen landing view that starts a call.
package welcome

import (
	"github.com/vango-dev/gmvoice/pkg/ui"
	"github.com/vango-dev/gmvoice/pkg/vdom"
)

// Static asset paths, served from the public directory.
const (
	BackgroundImage = "/images/welcome-background.jpg"
	LogoImage       = "/images/logo.png"
)

// Props configures the welcome view.
type Props struct {
	// StartButtonText is the button label, rendered verbatim.
	StartButtonText string

	// OnStartCall runs once per button click. A nil callback leaves the
	// button inert.
	OnStartCall func()

	// Ref, when set, is attached to the outermost element.
	Ref *vdom.NodeRef

	// Button overrides the control used for the call-to-action.
	// Defaults to ui.Default.
	Button ui.Control
}

// View renders the welcome screen: background, overlay, then a centred
// column with the logo, an empty intro region and the start button.
func View(p Props) *vdom.VNode {
	button := p.Button
	if button == nil {
		button = ui.Default
	}

	return vdom.Div(vdom.UseRef(p.Ref), vdom.Data("view", "welcome"),
		vdom.Class("fixed inset-0 overflow-hidden bg-black"),

		vdom.Img(vdom.Src(BackgroundImage), vdom.Alt(""), vdom.AriaHidden(true), vdom.Draggable(false),
			vdom.Class("absolute inset-0 h-full w-full object-cover"),
		),
		vdom.Div(vdom.AriaHidden(true), vdom.Class("absolute inset-0 bg-black/60")),

		vdom.Div(vdom.Class("relative z-10 flex h-full w-full flex-col items-center justify-center gap-8 px-6 text-center"),
			vdom.Img(vdom.Src(LogoImage), vdom.Alt("Logo"), vdom.Class("w-40 md:w-56 drop-shadow-lg")),
			// Reserved for introductory copy.
			vdom.P(vdom.Data("slot", "intro"), vdom.Class("max-w-prose text-base md:text-lg text-white/80")),
			button.Render(ui.ControlSpec{
				Label:      p.StartButtonText,
				Variant:    ui.VariantPrimary,
				Size:       ui.SizeLg,
				Class:      "w-64 rounded-full font-mono font-bold uppercase tracking-widest",
				OnActivate: p.OnStartCall,
			}),
		),
	)
}
