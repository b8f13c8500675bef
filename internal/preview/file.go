// Package preview renders a terminal snippet for a single search result.
package preview

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mikanfactory/sagasu/internal/model"
)

const trailingContext = 15
const plainBefore = 10
const plainAfter = 20

// BatArgs builds the syntax pager invocation for a file window around
// the target line.
func BatArgs(path string, line int) []string {
	return []string{
		"--style=numbers",
		"--color=always",
		"--paging=never",
		"--highlight-line", strconv.Itoa(line),
		"--line-range", fmt.Sprintf("%d:%d", line, line+trailingContext),
		path,
	}
}

// RenderFile produces the preview text for path at the given line using
// the resolved tool. A path that vanished between selection and render
// yields empty output, never an error: previews are best-effort.
func RenderFile(path string, line int, tool model.DiffTool) string {
	if line < 1 {
		line = 1
	}
	if _, err := os.Stat(path); err != nil {
		return ""
	}

	if tool == model.DiffToolBat {
		out, err := exec.Command("bat", BatArgs(path, line)...).Output()
		if err == nil {
			return string(out)
		}
		// pager misbehaved; degrade to the plain excerpt
	}

	return PlainExcerpt(path, line)
}

// PlainExcerpt renders a numbered window from line-10 to line+20, clipped
// to the top of the file, with the target line marked. No external tool
// involved.
func PlainExcerpt(path string, line int) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	start := line - plainBefore
	if start < 1 {
		start = 1
	}
	end := line + plainAfter

	var b strings.Builder
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	n := 0
	for scanner.Scan() {
		n++
		if n < start {
			continue
		}
		if n > end {
			break
		}
		marker := " "
		if n == line {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s%5d  %s\n", marker, n, scanner.Text())
	}

	return b.String()
}
