package execute

import (
	"errors"
	"regexp"
	"strings"
)

var (
	placeholderArg = regexp.MustCompile(`^\{[A-Za-z_][A-Za-z0-9_]*\}$`)
	shellSafeWord  = regexp.MustCompile(`^[A-Za-z0-9_@%+=:,./-]+$`)
	braceEscaper   = strings.NewReplacer("{", "{{", "}", "}}")
)

// Stage is the argument list of one pipeline stage, program first.
type Stage []string

// Pipeline describes `stage | stage | ... [> target]` without writing shell
// syntax by hand. Arguments of the exact form `{name}` stay placeholders,
// everything else is quoted for the shell and brace-escaped for the template.
type Pipeline struct {
	Stages []Stage
	Stdout string
}

func Command(args ...string) *Pipeline {
	return &Pipeline{Stages: []Stage{args}}
}

func (p *Pipeline) Pipe(args ...string) *Pipeline {
	p.Stages = append(p.Stages, args)
	return p
}

func (p *Pipeline) RedirectTo(target string) *Pipeline {
	p.Stdout = target
	return p
}

// Template renders the pipeline into a command template for Executor.Execute.
func (p *Pipeline) Template() (string, error) {
	if len(p.Stages) == 0 {
		return "", errors.New("Empty pipeline")
	}

	stages := make([]string, 0, len(p.Stages))
	for _, stage := range p.Stages {
		if len(stage) == 0 {
			return "", errors.New("Empty pipeline stage")
		}
		args := make([]string, 0, len(stage))
		for _, arg := range stage {
			args = append(args, renderArg(arg))
		}
		stages = append(stages, strings.Join(args, " "))
	}

	template := strings.Join(stages, " | ")
	if p.Stdout != "" {
		template += " > " + renderArg(p.Stdout)
	}
	return template, nil
}

func renderArg(arg string) string {
	if placeholderArg.MatchString(arg) {
		return arg
	}
	return braceEscaper.Replace(shellQuote(arg))
}

func shellQuote(arg string) string {
	if shellSafeWord.MatchString(arg) {
		return arg
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}
