package charm

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kr/text"
	"golang.org/x/term"
)

const tab = "    "

// splitFlags is like strings.Split with a comma and also trims whitespace
func splitFlags(flags string) []string {
	var out []string
	for _, flag := range strings.Split(flags, ",") {
		out = append(out, strings.TrimSpace(flag))
	}
	return out
}

// flagMap creates a map that maps a name to a boolean based on the existence
// of that name in the comma-separated string of flags.
func flagMap(flags string) map[string]bool {
	hidden := make(map[string]bool)
	for _, flag := range splitFlags(flags) {
		hidden[flag] = true
	}
	return hidden
}

func width() int {
	if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

func formatParagraph(body string, lineWidth int) string {
	var chunks []string
	for _, paragraph := range strings.Split(strings.TrimSpace(body), "\n\n") {
		paragraph = strings.Join(strings.Fields(paragraph), " ")
		chunks = append(chunks, text.Indent(text.Wrap(paragraph, lineWidth), tab))
	}
	return strings.Join(chunks, "\n\n") + "\n\n"
}

func helpItem(w io.Writer, heading, body string) {
	fmt.Fprint(w, heading+"\n"+tab+body+"\n\n")
}

func helpDesc(w io.Writer, heading, body string) {
	fmt.Fprint(w, heading+"\n"+formatParagraph(body, width()-len(tab)-5))
}

func helpList(w io.Writer, heading string, lines []string) {
	fmt.Fprint(w, heading+"\n"+tab+strings.Join(lines, "\n"+tab)+"\n\n")
}

func commands(target *Spec, vflag bool) []string {
	var lines []string
	for _, cmd := range target.children {
		name := cmd.Name
		if cmd.Hidden {
			if !vflag {
				continue
			}
			name = "[" + name + "]"
		}
		lines = append(lines, name+" - "+cmd.Short)
	}
	return lines
}

// options lists the flags of every command in p, innermost first.
func (p path) options(vflag bool) []string {
	var lines []string
	for k := len(p) - 1; k >= 0; k-- {
		opts := p[k].options(vflag)
		if len(opts) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "", "["+p[:k+1].pathname()+" flags]")
		}
		lines = append(lines, opts...)
	}
	if len(lines) == 0 {
		return []string{"no flags for this command"}
	}
	return lines
}

func (p path) help(w io.Writer, vflag bool) {
	spec := p.last().spec
	helpItem(w, "NAME", spec.Name+" - "+spec.Short)
	helpDesc(w, "USAGE", spec.Usage)
	helpList(w, "OPTIONS", p.options(vflag))
	if len(spec.children) > 0 {
		helpList(w, "COMMANDS", commands(spec, vflag))
	}
	if spec.Long != "" {
		helpDesc(w, "DESCRIPTION", spec.Long)
	}
}
