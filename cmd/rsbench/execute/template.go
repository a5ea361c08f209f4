package execute

import (
	"fmt"
	"regexp"
	"strings"
)

var whitespaceRuns = regexp.MustCompile(`[ \t\n]+`)

// TemplateError reports a command template that cannot be filled, either
// because a placeholder has no parameter or because the braces are unbalanced.
type TemplateError struct {
	Template string
	Key      string
	Reason   string
}

func (e *TemplateError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("Missing parameter %q for command template: %s", e.Key, e.Template)
	}
	return fmt.Sprintf("Malformed command template (%s): %s", e.Reason, e.Template)
}

type segment struct {
	text        string
	placeholder bool
}

// parseTemplate splits a template into literal text and placeholder names.
// Doubled braces are literal braces. A conversion or format suffix after the
// name (`{n!s}`, `{n:>8}`) is accepted and dropped.
func parseTemplate(template string) ([]segment, error) {
	var (
		segments []segment
		literal  strings.Builder
	)

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, segment{text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				literal.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return nil, &TemplateError{Template: template, Reason: "unclosed '{'"}
			}
			field := template[i+1 : i+1+end]
			if strings.ContainsRune(field, '{') {
				return nil, &TemplateError{Template: template, Reason: "unexpected '{' in field name"}
			}
			name := field
			if cut := strings.IndexAny(name, "!:"); cut >= 0 {
				name = name[:cut]
			}
			if name == "" {
				return nil, &TemplateError{Template: template, Reason: "positional placeholders are not supported"}
			}
			flush()
			segments = append(segments, segment{text: name, placeholder: true})
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				literal.WriteByte('}')
				i++
				continue
			}
			return nil, &TemplateError{Template: template, Reason: "single '}' encountered"}
		default:
			literal.WriteByte(c)
		}
	}
	flush()

	return segments, nil
}

// Placeholders returns the distinct placeholder names of a template in order of
// first appearance.
func Placeholders(template string) ([]string, error) {
	segments, err := parseTemplate(template)
	if err != nil {
		return nil, err
	}

	var (
		names []string
		seen  = map[string]bool{}
	)
	for _, s := range segments {
		if s.placeholder && !seen[s.text] {
			seen[s.text] = true
			names = append(names, s.text)
		}
	}
	return names, nil
}

// Substitute fills every placeholder of template with the stringified value of
// the parameter of the same name.
func Substitute(template string, params Params) (string, error) {
	segments, err := parseTemplate(template)
	if err != nil {
		return "", err
	}
	return render(template, segments, params)
}

func render(template string, segments []segment, params Params) (string, error) {
	var builder strings.Builder
	for _, s := range segments {
		if !s.placeholder {
			builder.WriteString(s.text)
			continue
		}
		value, ok := params[s.text]
		if !ok {
			return "", &TemplateError{Template: template, Key: s.text}
		}
		builder.WriteString(fmt.Sprint(value))
	}
	return builder.String(), nil
}

func normalizeWhitespace(command string) string {
	return whitespaceRuns.ReplaceAllString(command, " ")
}
