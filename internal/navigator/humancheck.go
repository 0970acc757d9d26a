package navigator

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// humanCheckKeywords mark a verification challenge page in any of the
// registry's languages.
var humanCheckKeywords = []string{
	"captcha",
	"human",
	"robot",
	"verify",
	"verifieer",
	"contrôle",
	"controle",
}

// looksLikeHumanCheck reports whether the page body reads like a human
// verification challenge.
func looksLikeHumanCheck(bodyText string) bool {
	body := strings.ToLower(bodyText)
	for _, k := range humanCheckKeywords {
		if strings.Contains(body, k) {
			return true
		}
	}
	return false
}

// OperatorPrompt blocks the batch until a human solves a verification
// challenge in the visible browser window. The wait is deliberately
// synchronous and unbounded: the challenge is the operator's to clear, not
// something to retry around.
type OperatorPrompt struct {
	In  io.Reader
	Out io.Writer
}

// Wait announces the challenge and blocks until the operator presses ENTER.
func (p *OperatorPrompt) Wait() error {
	fmt.Fprintln(p.Out, "\n⚠ Human check detected. Please solve it in the browser window.")
	fmt.Fprint(p.Out, "Press ENTER here after you finish the human check...")

	reader := bufio.NewReader(p.In)
	if _, err := reader.ReadString('\n'); err != nil && err != io.EOF {
		return fmt.Errorf("failed to read operator confirmation: %w", err)
	}
	fmt.Fprintln(p.Out)
	return nil
}
