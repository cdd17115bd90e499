package backup

import (
	"encoding/json"
	"fmt"
)

// localStoragePrefix selects the browser keys that belong to OpenCode.
const localStoragePrefix = "opencode."

// captureScript collects OpenCode's localStorage keys when pasted into the
// browser console of the web UI.
var captureScript = fmt.Sprintf(`
const backup = {};
for (let i = 0; i < localStorage.length; i++) {
  const key = localStorage.key(i);
  if (key && key.startsWith('%s')) {
    backup[key] = localStorage.getItem(key);
  }
}
console.log(JSON.stringify(backup, null, 2));
`, localStoragePrefix)

const restoreScript = `
Object.entries(backup).forEach(([k, v]) => {
  try {
    localStorage.setItem(k, v);
  } catch (e) {
    console.error('Failed to set', k, e);
  }
});
console.log('localStorage imported! Reload the page.');
`

// restoreSnippet returns the console code that writes data back into
// localStorage.
func restoreSnippet(data map[string]string) (string, error) {
	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	return "const backup = " + string(payload) + ";\n" + restoreScript, nil
}
