package scene

import (
	"fmt"
	"math/rand"
	"sort"
)

// Info describes a built-in scene
type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type builder func(random *rand.Rand) *Scene

var builtins = map[string]builder{
	"cornell":          func(*rand.Rand) *Scene { return NewCornellScene() },
	"cornell-triangle": func(*rand.Rand) *Scene { return NewCornellTriangleScene() },
	"random-spheres":   NewRandomSpheresScene,
	"light-panel":      func(*rand.Rand) *Scene { return NewLightPanelScene() },
}

// DefaultScene is the scene rendered when none is chosen
const DefaultScene = "cornell-triangle"

// Names returns the names of the built-in scenes in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named scene. seed drives any random placement.
func New(name string, seed int64) (*Scene, error) {
	build, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}
	return build(rand.New(rand.NewSource(seed))), nil
}

// List returns name and description of every built-in scene
func List() []Info {
	names := Names()
	infos := make([]Info, 0, len(names))
	for _, name := range names {
		s, _ := New(name, 0)
		infos = append(infos, Info{Name: name, Description: s.Description})
	}
	return infos
}
