package synth

import "strings"

// isIgnored reports whether pattern matches any ignore rule: a plain rule
// matches by substring, "x*" by prefix and "*x" by suffix.
func isIgnored(pattern string, rules []string) bool {
	for _, rule := range rules {
		if rule == "" {
			continue
		}
		if strings.Contains(pattern, rule) {
			return true
		}
		if prefix, ok := strings.CutSuffix(rule, "*"); ok && strings.HasPrefix(pattern, prefix) {
			return true
		}
		if suffix, ok := strings.CutPrefix(rule, "*"); ok && strings.HasSuffix(pattern, suffix) {
			return true
		}
	}
	return false
}
