package component

import (
	"github.com/thoreinstein/themesnap/internal/errors"
)

// Entry is a component declared in the configuration file:
//
//	components:
//	  - id: wallpapers
//	    name: Wallpapers
//	    category: Theming
//	    dest: Wallpapers
//	    sources: [~/Pictures/Wallpapers]
//	    detectors:
//	      - kind: setting
//	        tool: gsettings
//	        schema: org.gnome.desktop.background
//	        key: picture-uri
//	        basename: true
type Entry struct {
	ID          string   `mapstructure:"id" yaml:"id"`
	Name        string   `mapstructure:"name" yaml:"name"`
	Description string   `mapstructure:"description" yaml:"description,omitempty"`
	Category    string   `mapstructure:"category" yaml:"category,omitempty"`
	Dest        string   `mapstructure:"dest" yaml:"dest,omitempty"`
	Sources     []string `mapstructure:"sources" yaml:"sources,omitempty"`
	Detectors   []Method `mapstructure:"detectors" yaml:"detectors,omitempty"`
}

// Spec converts the entry to a Spec. Name defaults to the ID, the category
// to "Custom" and the destination subfolder to the ID.
func (e Entry) Spec() *Spec {
	s := &Spec{
		ID:            e.ID,
		DisplayName:   e.Name,
		Description:   e.Description,
		Category:      e.Category,
		Detectors:     e.Detectors,
		Sources:       StaticSources(e.Sources...),
		DestSubfolder: e.Dest,
	}
	if s.DisplayName == "" {
		s.DisplayName = e.ID
	}
	if s.Category == "" {
		s.Category = "Custom"
	}
	if s.DestSubfolder == "" {
		s.DestSubfolder = e.ID
	}
	return s
}

// FromConfig registers each entry after the components already in r. It stops at
// the first invalid or duplicate entry.
func FromConfig(r *Registry, entries []Entry) error {
	for i, e := range entries {
		if err := r.Register(e.Spec()); err != nil {
			return errors.Wrapf(err, "components[%d]", i)
		}
	}
	return nil
}
