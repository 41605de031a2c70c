package genx

import (
	"bytes"
	"fmt"
	"strings"
)

// AppendLine appends rendered text as a new line at the end of an existing file.
type AppendLine struct {
	Path     string // Target file template, relative to the project root
	Template string
	Unique   bool // Skip when the rendered line is already present
}

func (AppendLine) Kind() ActionKind { return KindAppendLine }

func (a AppendLine) Describe() string {
	return fmt.Sprintf("append to %s", a.Path)
}

func (AppendLine) sealed() {}

func (e *execEnv) appendLine(a AppendLine, res *ActionResult) error {
	target, err := e.renderPath("path", a.Path)
	if err != nil {
		return err
	}
	text, err := e.renderer.Render(target, a.Template, e.answers)
	if err != nil {
		return err
	}

	data, _, err := e.project.ReadFile(target)
	if err != nil {
		return err
	}

	if a.Unique && containsLine(data, text) {
		res.Skipped = append(res.Skipped, target)
		e.logger.Debug("line already present", "path", target)
		return nil
	}

	var buf bytes.Buffer
	if len(data) > 0 && data[len(data)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString(text)
	buf.WriteByte('\n')

	if err := e.project.AppendFile(target, buf.Bytes()); err != nil {
		return err
	}
	res.Paths = append(res.Paths, target)
	res.Insertions = 1
	return nil
}

// containsLine reports whether text occurs in data as complete lines.
func containsLine(data []byte, text string) bool {
	content := "\n" + strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return strings.Contains(content, "\n"+text+"\n")
}
