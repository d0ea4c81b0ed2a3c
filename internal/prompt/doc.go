// Package prompt asks the user which targets to link and answers yes/no
// questions. Auto answers without I/O for non-interactive runs, Console uses
// numbered line prompts, and Checklist renders a bubbletea checklist.
package prompt
