package ui

import (
	"sort"

	"github.com/vango-dev/gmvoice/pkg/vdom"
)

const baseButtonClasses = "inline-flex items-center justify-center whitespace-nowrap rounded-md text-sm font-medium ring-offset-background transition-colors focus-visible:outline-none focus-visible:ring-2 focus-visible:ring-ring focus-visible:ring-offset-2 disabled:pointer-events-none disabled:opacity-50"

// ButtonOption configures a Button.
type ButtonOption func(*buttonConfig)

type buttonConfig struct {
	variant   Variant
	size      Size
	disabled  bool
	className string
	label     *string
	children  []any
	onClick   func()
	attrs     map[string]string
}

// WithVariant sets the button variant.
func WithVariant(v Variant) ButtonOption {
	return func(c *buttonConfig) { c.variant = v }
}

// Primary sets the primary variant.
func Primary() ButtonOption { return WithVariant(VariantPrimary) }

// Secondary sets the secondary variant.
func Secondary() ButtonOption { return WithVariant(VariantSecondary) }

// Destructive sets the destructive variant.
func Destructive() ButtonOption { return WithVariant(VariantDestructive) }

// Outline sets the outline variant.
func Outline() ButtonOption { return WithVariant(VariantOutline) }

// Ghost sets the ghost variant.
func Ghost() ButtonOption { return WithVariant(VariantGhost) }

// Link sets the link variant.
func Link() ButtonOption { return WithVariant(VariantLink) }

// WithSize sets the button size.
func WithSize(s Size) ButtonOption {
	return func(c *buttonConfig) { c.size = s }
}

// Sm sets the small size.
func Sm() ButtonOption { return WithSize(SizeSm) }

// Lg sets the large size.
func Lg() ButtonOption { return WithSize(SizeLg) }

// Icon sets the square icon size.
func Icon() ButtonOption { return WithSize(SizeIcon) }

// WithDisabled sets the disabled state. Disabled buttons have no click binding.
func WithDisabled(d bool) ButtonOption {
	return func(c *buttonConfig) { c.disabled = d }
}

// WithOnClick sets the click handler. A nil handler leaves the button inert.
func WithOnClick(handler func()) ButtonOption {
	return func(c *buttonConfig) { c.onClick = handler }
}

// WithLabel sets the visible text. The label is rendered verbatim, and an
// empty label still produces a (blank) text node.
func WithLabel(label string) ButtonOption {
	return func(c *buttonConfig) { c.label = &label }
}

// WithChildren appends arbitrary children after the label.
func WithChildren(children ...any) ButtonOption {
	return func(c *buttonConfig) { c.children = append(c.children, children...) }
}

// WithClass adds CSS classes after the variant and size classes.
func WithClass(className string) ButtonOption {
	return func(c *buttonConfig) { c.className = className }
}

// WithAttr adds a data-* attribute.
func WithAttr(name, value string) ButtonOption {
	return func(c *buttonConfig) {
		if c.attrs == nil {
			c.attrs = make(map[string]string)
		}
		c.attrs[name] = value
	}
}

// Button renders a <button type="button"> with the configured options.
func Button(opts ...ButtonOption) *vdom.VNode {
	cfg := buttonConfig{variant: VariantDefault, size: SizeMd}
	for _, opt := range opts {
		opt(&cfg)
	}

	args := []any{
		vdom.Type("button"),
		vdom.Class(baseButtonClasses, variantClasses[cfg.variant], sizeClasses[cfg.size], cfg.className),
		vdom.Data("variant", string(cfg.variant)),
	}

	if cfg.disabled {
		args = append(args, vdom.Disabled(), vdom.AriaDisabled(true))
	} else if cfg.onClick != nil {
		args = append(args, vdom.OnClick(cfg.onClick))
	}

	names := make([]string, 0, len(cfg.attrs))
	for name := range cfg.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		args = append(args, vdom.Data(name, cfg.attrs[name]))
	}

	if cfg.label != nil {
		args = append(args, vdom.Text(*cfg.label))
	}
	args = append(args, cfg.children...)

	return vdom.Button(args...)
}
