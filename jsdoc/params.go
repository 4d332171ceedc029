package jsdoc

import (
	"regexp"
	"strings"
)

var signaturePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*[\w$]*\s*(?:<[^>(]*>)?\s*\(([^)]*)\)`),
	regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+[\w$]+\s*(?::[^=]+)?=\s*(?:async\s+)?\(([^)]*)\)[^=]*=>`),
	regexp.MustCompile(`^\s*(?:(?:public|private|protected|static|async|readonly|override)\s+)*[\w$]+\s*(?:<[^>(]*>)?\s*\(([^)]*)\)`),
}

var paramNoise = strings.NewReplacer("{", "", "}", "", "[", "", "]", "")

// ParamsOrder returns the parameter names of the function, arrow function
// or method whose signature starts the given source text, or nil when the
// text does not start with a recognizable signature. Type annotations and
// default values are dropped, and rest parameters keep their name.
func ParamsOrder(after string) []string {
	for _, re := range signaturePatterns {
		m := re.FindStringSubmatch(after)
		if m == nil {
			continue
		}

		var params []string

		for param := range strings.SplitSeq(m[1], ",") {
			param = strings.TrimSpace(param)
			if i := strings.Index(param, ":"); i >= 0 {
				param = param[:i]
			}

			if i := strings.Index(param, "="); i >= 0 {
				param = param[:i]
			}

			fields := strings.Fields(param)
			if len(fields) == 0 {
				continue
			}

			name := strings.TrimPrefix(paramNoise.Replace(fields[0]), "...")
			name = strings.TrimSuffix(name, "?")

			if name != "" {
				params = append(params, name)
			}
		}

		return params
	}

	return nil
}
