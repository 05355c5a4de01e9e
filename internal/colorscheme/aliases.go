package colorscheme

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// aliasFile is the on-disk shape of a scheme alias file:
//
//	[aliases]
//	corporate = "cool_warm"
//	volcano   = "lava"
type aliasFile struct {
	Aliases map[string]string `toml:"aliases"`
}

// LoadAliases reads user scheme aliases from a TOML file. A missing file
// yields an empty map. Aliases pointing at unknown schemes are rejected.
func LoadAliases(path string) (map[string]Scheme, error) {
	aliases := make(map[string]Scheme)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return aliases, nil
		}
		return nil, err
	}

	var f aliasFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scheme aliases: %w", err)
	}

	for alias, target := range f.Aliases {
		if !Known(target) {
			return nil, fmt.Errorf("scheme alias %q points at unknown scheme %q", alias, target)
		}
		aliases[strings.ToLower(alias)] = Scheme(target)
	}
	return aliases, nil
}

// Resolve maps a user-supplied name through the alias table and onto a
// built-in scheme, falling back to rainbow for unrecognized names.
func Resolve(name string, aliases map[string]Scheme) Scheme {
	if target, ok := aliases[strings.ToLower(name)]; ok {
		return target
	}
	return Parse(name)
}
