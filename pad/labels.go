package pad

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Logical size of the standard gamepad layout. Devices may report more or
// fewer of either; the extras are tolerated and the gaps read as neutral.
const (
	StdButtons = 17
	StdAxes    = 4 // two sticks, two axes each
)

// stdLabels names the 17 buttons of the standard gamepad layout.
var stdLabels = [...]string{
	"A",
	"B",
	"X",
	"Y",
	"LB",
	"RB",
	"LT",
	"RT",
	"Back",
	"Start",
	"LS",
	"RS",
	"D-Pad Up",
	"D-Pad Down",
	"D-Pad Left",
	"D-Pad Right",
	"Home",
}

// Labels maps button indices to display names. Entries override the standard
// layout names; indices known to neither fall back to "Button N". A nil
// Labels is valid and uses the standard names only.
type Labels map[int]string

func (l Labels) Label(i int) string {
	if name, ok := l[i]; ok {
		return name
	}
	if i >= 0 && i < len(stdLabels) {
		return stdLabels[i]
	}
	return fmt.Sprintf("Button %d", i)
}

// ParseLabels reads a yaml mapping of button index to name.
func ParseLabels(data []byte) (Labels, error) {
	var m map[int]string
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing labels: %v", err)
	}
	for i, name := range m {
		if i < 0 {
			return nil, fmt.Errorf("labels: negative button index %d", i)
		}
		if name == "" {
			return nil, fmt.Errorf("labels: empty name for button %d", i)
		}
	}
	return m, nil
}

func LoadLabels(file string) (Labels, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return ParseLabels(data)
}
