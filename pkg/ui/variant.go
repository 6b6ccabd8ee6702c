package ui

// Variant is a button's visual style.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantPrimary     Variant = "primary"
	VariantSecondary   Variant = "secondary"
	VariantDestructive Variant = "destructive"
	VariantOutline     Variant = "outline"
	VariantGhost       Variant = "ghost"
	VariantLink        Variant = "link"
)

// Size is a button's dimension preset.
type Size string

const (
	SizeSm   Size = "sm"
	SizeMd   Size = "md"
	SizeLg   Size = "lg"
	SizeIcon Size = "icon"
)

var variantClasses = map[Variant]string{
	VariantDefault:     "bg-primary text-primary-foreground hover:bg-primary/90",
	VariantPrimary:     "bg-primary text-primary-foreground hover:bg-primary/90",
	VariantSecondary:   "bg-secondary text-secondary-foreground hover:bg-secondary/80",
	VariantDestructive: "bg-destructive text-destructive-foreground hover:bg-destructive/90",
	VariantOutline:     "border border-input bg-background hover:bg-accent hover:text-accent-foreground",
	VariantGhost:       "hover:bg-accent hover:text-accent-foreground",
	VariantLink:        "text-primary underline-offset-4 hover:underline",
}

var sizeClasses = map[Size]string{
	SizeSm:   "h-9 rounded-md px-3",
	SizeMd:   "h-10 px-4 py-2",
	SizeLg:   "h-11 rounded-md px-8",
	SizeIcon: "h-10 w-10",
}
