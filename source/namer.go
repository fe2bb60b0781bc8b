package source

import (
	"fmt"
	"strings"
)

// Namer builds sequential output names: Pattern is a printf pattern with
// a single integer verb, Start is the number given to the first entry.
type Namer struct {
	Pattern string
	Start   int
}

func (n Namer) Validate() error {
	if strings.ContainsAny(n.Pattern, `/\`) {
		return fmt.Errorf("name pattern %q must not contain path separators", n.Pattern)
	}

	verbs := 0
	for i := 0; i < len(n.Pattern); i++ {
		if n.Pattern[i] != '%' {
			continue
		}
		i++
		if i < len(n.Pattern) && n.Pattern[i] == '%' {
			continue
		}
		verbs++
	}
	if verbs != 1 {
		return fmt.Errorf("name pattern %q must contain exactly one number verb, found %d", n.Pattern, verbs)
	}

	if s := fmt.Sprintf(n.Pattern, n.Start); strings.Contains(s, "%!") {
		return fmt.Errorf("name pattern %q is not valid for a number: %s", n.Pattern, s)
	}
	return nil
}

// Name returns the output file name of e with the given extension.
func (n Namer) Name(e Entry, ext string) string {
	return fmt.Sprintf(n.Pattern, n.Start+e.Index) + "." + ext
}
