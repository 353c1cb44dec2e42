package romaji

import (
	"fmt"
	"strings"
)

// ParseRule parses a user rule of the form "kana" or "kana,remain".
func ParseRule(key, value string) (Rule, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return Rule{}, fmt.Errorf("empty romaji key")
	}
	parts := strings.SplitN(value, ",", 2)
	output := strings.TrimSpace(parts[0])
	if output == "" {
		return Rule{}, fmt.Errorf("romaji rule %q has no kana", key)
	}
	rule := Rule{Moji: Moji{FirstRomaji: firstRomaji(key), Kana: output}}
	if len(parts) == 2 {
		rule.Remain = strings.ToLower(strings.TrimSpace(parts[1]))
		if rule.Remain != "" && !strings.HasSuffix(key, rule.Remain) {
			return Rule{}, fmt.Errorf("romaji rule %q: remain %q is not a suffix of the key", key, rule.Remain)
		}
	}
	return rule, nil
}

// ApplyCustomRules adds rules on top of table, overriding existing keys.
func ApplyCustomRules(table *Table, rules map[string]string) error {
	for key, value := range rules {
		rule, err := ParseRule(key, value)
		if err != nil {
			return err
		}
		table.Add(strings.ToLower(strings.TrimSpace(key)), rule)
	}
	return nil
}

func firstRomaji(key string) string {
	first := key[:1]
	if first[0] < 'a' || first[0] > 'z' {
		return ""
	}
	return first
}
