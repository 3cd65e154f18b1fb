package runner

import (
	"os"
	"sort"
	"strings"
)

// capturedOverrides keeps captured output parseable and stops child tools from
// waiting on prompts nobody can see
var capturedOverrides = map[string]string{
	"LC_ALL":                "C",
	"GIT_PAGER":             "cat",
	"GH_PROMPT_DISABLED":    "1",
	"GH_NO_UPDATE_NOTIFIER": "1",
}

// BuildEnv creates the environment for a child process.
// Captured invocations get a fixed locale and no pagers or prompts.
func BuildEnv(captured bool) []string {
	env := os.Environ()
	if !captured {
		return env
	}

	result := make([]string, 0, len(env)+len(capturedOverrides))
	for _, e := range env {
		key, _, _ := strings.Cut(e, "=")
		if _, overridden := capturedOverrides[key]; overridden {
			continue
		}
		result = append(result, e)
	}

	keys := make([]string, 0, len(capturedOverrides))
	for k := range capturedOverrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		result = append(result, k+"="+capturedOverrides[k])
	}
	return result
}
