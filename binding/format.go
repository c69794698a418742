package binding

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

const defaultDateFormat = "YYYY-MM-DD"

// Format renders a value under a format spec. The formatter is selected by
// the value's kind. An empty spec falls back to the plain rendering except
// for dates, which use the default date format. Formatting never fails:
// unrecognized or malformed directives leave the value unmodified.
func Format(v Value, spec string) string {
	switch v.Kind {
	case KindDate:
		if spec == "" {
			spec = defaultDateFormat
		}
		return formatDate(v.Time, spec)
	case KindNumber:
		if spec == "" {
			return v.Plain()
		}
		return formatNumber(v.Num, spec)
	case KindBool:
		return formatBool(v.Bool, spec)
	default:
		if spec == "" {
			return v.Str
		}
		return formatString(v.Str, spec)
	}
}

// formatDate replaces letter-run tokens in spec with the corresponding
// zero-padded or unpadded date fields. The spec is scanned as runs of one
// repeated letter, so MM never partially matches inside MMMM and substituted
// month names are never re-scanned. Unknown runs pass through verbatim.
func formatDate(t time.Time, spec string) string {
	var b strings.Builder
	rs := []rune(spec)
	for i := 0; i < len(rs); {
		c := rs[i]
		if !unicode.IsLetter(c) {
			b.WriteRune(c)
			i++
			continue
		}
		j := i
		for j < len(rs) && rs[j] == c {
			j++
		}
		run := string(rs[i:j])
		b.WriteString(dateToken(t, run))
		i = j
	}
	return b.String()
}

// dateToken maps one letter run to its field value. Unknown runs are
// returned as-is.
func dateToken(t time.Time, run string) string {
	switch run {
	case "YYYY":
		return pad(t.Year(), 4)
	case "MMMM":
		return t.Month().String()
	case "MMM":
		return t.Month().String()[:3]
	case "MM":
		return pad(int(t.Month()), 2)
	case "M":
		return strconv.Itoa(int(t.Month()))
	case "DD":
		return pad(t.Day(), 2)
	case "D":
		return strconv.Itoa(t.Day())
	case "HH":
		return pad(t.Hour(), 2)
	case "H":
		return strconv.Itoa(t.Hour())
	case "mm":
		return pad(t.Minute(), 2)
	case "m":
		return strconv.Itoa(t.Minute())
	case "ss":
		return pad(t.Second(), 2)
	case "s":
		return strconv.Itoa(t.Second())
	default:
		return run
	}
}

func pad(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// formatNumber evaluates comma-separated directives in listed order and
// applies the FIRST recognized one; the rest are ignored. This asymmetry
// with string directives (which chain) is intentional and kept for
// compatibility with existing templates.
func formatNumber(f float64, spec string) string {
	plain := strconv.FormatFloat(f, 'f', -1, 64)
	for _, directive := range strings.Split(spec, ",") {
		name, arg := splitDirective(directive)
		switch name {
		case "decimal":
			n, err := strconv.Atoi(arg)
			if err != nil || n < 0 {
				return plain
			}
			return strconv.FormatFloat(f, 'f', n, 64)
		case "currency":
			return formatCurrency(f)
		case "percent":
			return strconv.FormatFloat(f*100, 'f', 1, 64) + "%"
		case "pad":
			n, err := strconv.Atoi(arg)
			if err != nil || n < 0 {
				return plain
			}
			s := plain
			neg := strings.HasPrefix(s, "-")
			if neg {
				s = s[1:]
			}
			for len(s) < n {
				s = "0" + s
			}
			if neg {
				s = "-" + s
			}
			return s
		}
	}
	return plain
}

// formatCurrency renders en-US currency: $1,234.56 with the sign outside
// the symbol.
func formatCurrency(f float64) string {
	neg := f < 0
	if neg {
		f = -f
	}
	s := strconv.FormatFloat(f, 'f', 2, 64)
	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot:]
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	out := "$" + b.String() + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// formatBool renders a boolean against a "truePhrase|falsePhrase" spec,
// defaulting to true/false when a phrase is absent.
func formatBool(v bool, spec string) string {
	truePhrase, falsePhrase := "true", "false"
	if spec != "" {
		parts := strings.SplitN(spec, "|", 2)
		if parts[0] != "" {
			truePhrase = parts[0]
		}
		if len(parts) == 2 && parts[1] != "" {
			falsePhrase = parts[1]
		}
	}
	if v {
		return truePhrase
	}
	return falsePhrase
}

// formatString applies every recognized directive in listed order (string
// directives chain, unlike number directives). Unrecognized directives and
// malformed arguments leave the running value untouched.
func formatString(s, spec string) string {
	for _, directive := range strings.Split(spec, ",") {
		name, arg := splitDirective(directive)
		switch name {
		case "upper":
			s = strings.ToUpper(s)
		case "lower":
			s = strings.ToLower(s)
		case "title":
			s = titleCase(s)
		case "trim":
			s = strings.TrimSpace(s)
		case "truncate":
			n, err := strconv.Atoi(arg)
			if err != nil || n < 0 {
				continue
			}
			if rs := []rune(s); len(rs) > n {
				s = string(rs[:n]) + "..."
			}
		case "pad":
			n, err := strconv.Atoi(arg)
			if err != nil || n < 0 {
				continue
			}
			for len([]rune(s)) < n {
				s += " "
			}
		}
	}
	return s
}

// titleCase upper-cases the first letter of each space-separated word and
// lower-cases the rest.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		rs := []rune(w)
		head := string(unicode.ToUpper(rs[0]))
		tail := strings.ToLower(string(rs[1:]))
		words[i] = head + tail
	}
	return strings.Join(words, " ")
}

// splitDirective splits "name:arg" at the first colon, trimming both parts.
func splitDirective(d string) (name, arg string) {
	d = strings.TrimSpace(d)
	if i := strings.IndexByte(d, ':'); i >= 0 {
		return strings.ToLower(strings.TrimSpace(d[:i])), strings.TrimSpace(d[i+1:])
	}
	return strings.ToLower(d), ""
}
