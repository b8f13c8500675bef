// Package resolve turns raw picker selections into editor targets.
package resolve

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mikanfactory/sagasu/internal/model"
)

// ErrNoValidTargets is returned when every selected row was malformed or
// named a missing file.
var ErrNoValidTargets = errors.New("no valid targets in selection")

// ParseLine splits one result row: everything before the first colon is
// the discriminator, the field after it is the line-number token, and the
// remainder is opaque content.
func ParseLine(line string) model.ResultLine {
	head, tail, found := strings.Cut(line, ":")
	if !found {
		return model.ResultLine{Discriminator: line}
	}

	lineTok, rest, _ := strings.Cut(tail, ":")
	return model.ResultLine{
		Discriminator: head,
		LineToken:     lineTok,
		Rest:          rest,
	}
}

// statFile is swappable in tests.
var statFile = os.Stat

// Resolve parses and validates each selected row. The first surviving
// row becomes the primary target and keeps its line number; the rest are
// opened without a line jump. Bad rows are skipped with a warning on
// warnW, not fatal; an entirely bad selection is ErrNoValidTargets.
func Resolve(selection []string, warnW io.Writer) ([]model.ResolvedTarget, error) {
	var targets []model.ResolvedTarget

	for _, raw := range selection {
		row := ParseLine(raw)

		if row.Discriminator == "" {
			fmt.Fprintf(warnW, "warning: skipping malformed row %q\n", raw)
			continue
		}

		info, err := statFile(row.Discriminator)
		if err != nil || info.IsDir() {
			fmt.Fprintf(warnW, "warning: skipping %s: not an existing file\n", row.Discriminator)
			continue
		}

		target := model.ResolvedTarget{Path: row.Discriminator}
		if len(targets) == 0 {
			target.Primary = true
			if n, err := strconv.Atoi(row.LineToken); err == nil && n > 0 {
				target.LineNumber = n
			}
		}
		targets = append(targets, target)
	}

	if len(targets) == 0 {
		return nil, ErrNoValidTargets
	}
	return targets, nil
}
