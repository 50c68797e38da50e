package driver

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 3

type diffLine struct {
	op   diffmatchpatch.Operation
	text string // без завершающего \n
	eol  bool   // строка заканчивалась переводом строки
}

// UnifiedDiff renders the line-level difference between before and after in unified
// format. Identical inputs yield "".
func UnifiedDiff(path string, before, after []byte) string {
	if string(before) == string(after) {
		return ""
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(before), string(after))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var all []diffLine
	for _, d := range diffs {
		all = append(all, splitDiffLines(d.Type, d.Text)...)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)

	// номера строк (с единицы) перед каждой позицией
	oldNo := make([]int, len(all)+1)
	newNo := make([]int, len(all)+1)
	oldNo[0], newNo[0] = 1, 1
	for i, l := range all {
		oldNo[i+1], newNo[i+1] = oldNo[i], newNo[i]
		if l.op != diffmatchpatch.DiffInsert {
			oldNo[i+1]++
		}
		if l.op != diffmatchpatch.DiffDelete {
			newNo[i+1]++
		}
	}

	for i := 0; i < len(all); {
		if all[i].op == diffmatchpatch.DiffEqual {
			i++
			continue
		}
		start := max(0, i-diffContext)
		end := i
		for end < len(all) {
			if all[end].op != diffmatchpatch.DiffEqual {
				end++
				continue
			}
			run := end
			for run < len(all) && all[run].op == diffmatchpatch.DiffEqual {
				run++
			}
			if run == len(all) || run-end > 2*diffContext {
				end = min(run, end+diffContext)
				break
			}
			end = run
		}
		writeHunk(&sb, all[start:end], oldNo[start], newNo[start])
		i = end
	}
	return sb.String()
}

func splitDiffLines(op diffmatchpatch.Operation, text string) []diffLine {
	var out []diffLine
	for text != "" {
		line, rest, found := strings.Cut(text, "\n")
		out = append(out, diffLine{op: op, text: line, eol: found})
		text = rest
	}
	return out
}

func writeHunk(sb *strings.Builder, lines []diffLine, oldStart, newStart int) {
	var oldCount, newCount int
	for _, l := range lines {
		if l.op != diffmatchpatch.DiffInsert {
			oldCount++
		}
		if l.op != diffmatchpatch.DiffDelete {
			newCount++
		}
	}
	if oldCount == 0 {
		oldStart--
	}
	if newCount == 0 {
		newStart--
	}
	fmt.Fprintf(sb, "@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount)
	for _, l := range lines {
		switch l.op {
		case diffmatchpatch.DiffInsert:
			sb.WriteByte('+')
		case diffmatchpatch.DiffDelete:
			sb.WriteByte('-')
		default:
			sb.WriteByte(' ')
		}
		sb.WriteString(strings.TrimSuffix(l.text, "\r"))
		sb.WriteByte('\n')
		if !l.eol {
			sb.WriteString("\\ No newline at end of file\n")
		}
	}
}

// WriteDiff copies a diff produced by UnifiedDiff to w, coloring it when colored is set.
func WriteDiff(w io.Writer, diff string, colored bool) error {
	add := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	hunk := color.New(color.FgCyan)
	head := color.New(color.Bold)
	for _, c := range []*color.Color{add, del, hunk, head} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		var err error
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			_, err = head.Fprint(w, line)
		case strings.HasPrefix(line, "@@"):
			_, err = hunk.Fprint(w, line)
		case line[0] == '+':
			_, err = add.Fprint(w, line)
		case line[0] == '-':
			_, err = del.Fprint(w, line)
		default:
			_, err = io.WriteString(w, line)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
