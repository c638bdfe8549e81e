// Package icons maps category icon names to renderable icon identifiers.
// The registry is a fixed curated map, not an open-ended lookup into a whole
// icon library: arbitrary strings resolve to the fallback, never to
// something unexpected.
package icons

// Icon is a renderable icon identifier understood by clients.
type Icon struct {
	Name string `json:"name"`
}

// FallbackIcon is returned for unknown or absent icon names.
var FallbackIcon = Icon{Name: "folder-open"}

// Resolver resolves an icon name to a renderable icon.
type Resolver interface {
	Resolve(name string) Icon
}

// Registry is a Resolver backed by a static curated map.
type Registry struct {
	icons map[string]Icon
}

// NewRegistry returns the default curated registry covering the icon names
// category metadata is expected to carry.
func NewRegistry() *Registry {
	names := []string{
		"folder-open",
		"wrench",
		"palette",
		"pen-tool",
		"search",
		"shield",
		"zap",
		"globe",
		"book-open",
		"code",
		"database",
		"image",
		"message-square",
		"briefcase",
		"bar-chart",
		"star",
	}
	icons := make(map[string]Icon, len(names))
	for _, name := range names {
		icons[name] = Icon{Name: name}
	}
	return &Registry{icons: icons}
}

// Resolve returns the icon for the name, or the fallback when unknown.
func (r *Registry) Resolve(name string) Icon {
	if icon, ok := r.icons[name]; ok {
		return icon
	}
	return FallbackIcon
}

var _ Resolver = (*Registry)(nil)
