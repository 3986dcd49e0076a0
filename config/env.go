package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var bracketPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-[^}]*|:\?[^}]*)?\}`)

// expandEnv expands ${VAR}, ${VAR:-default} and ${VAR:?message}. Unset
// plain references become empty strings.
func expandEnv(input string) (string, error) {
	var missing []string
	result := bracketPattern.ReplaceAllStringFunc(input, func(match string) string {
		inner := match[2 : len(match)-1]
		parts := strings.SplitN(inner, ":", 2)
		name := parts[0]
		value, exists := os.LookupEnv(name)
		if len(parts) == 1 {
			return value
		}

		modifier := parts[1]
		if exists && value != "" {
			return value
		}
		if strings.HasPrefix(modifier, "-") {
			return modifier[1:]
		}
		missing = append(missing, fmt.Sprintf("%s: %s", name, modifier[1:]))
		return match
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingEnvVar, strings.Join(missing, ", "))
	}
	return result, nil
}
