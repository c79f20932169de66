package scanner

import (
	"fmt"
	"strings"
)

// ParsePHPList extracts the string elements of a PHP config file of the form
//
//	<?php
//	return [
//	    'array_key_exists',
//	    'readdir', // comment
//	];
//
// "array(...)" is accepted as well. Keyed entries are rejected.
func ParsePHPList(data []byte) ([]string, error) {
	p := &phpListParser{src: string(data)}
	return p.parse()
}

type phpListParser struct {
	src string
	pos int
}

func (p *phpListParser) parse() ([]string, error) {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], "<?php") {
		p.pos += len("<?php")
	}
	p.skipSpace()
	if !p.consumeWord("return") {
		return nil, p.errorf("expected return statement")
	}
	p.skipSpace()

	var closing byte
	switch {
	case p.consume("["):
		closing = ']'
	case p.consumeWord("array"):
		p.skipSpace()
		if !p.consume("(") {
			return nil, p.errorf("expected ( after array")
		}
		closing = ')'
	default:
		return nil, p.errorf("expected [ or array(")
	}

	var names []string
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, p.errorf("unterminated array")
		}
		if p.src[p.pos] == closing {
			p.pos++
			break
		}
		s, err := p.stringLiteral()
		if err != nil {
			return nil, err
		}
		names = append(names, s)

		p.skipSpace()
		if strings.HasPrefix(p.src[p.pos:], "=>") {
			return nil, p.errorf("keyed entries are not supported")
		}
		if p.consume(",") {
			continue
		}
		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == closing {
			continue
		}
		return nil, p.errorf("expected , or %c", closing)
	}
	return names, nil
}

func (p *phpListParser) stringLiteral() (string, error) {
	if p.pos >= len(p.src) {
		return "", p.errorf("expected string literal")
	}
	quote := p.src[p.pos]
	if quote != '\'' && quote != '"' {
		return "", p.errorf("expected string literal")
	}
	p.pos++

	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == quote:
			p.pos++
			return b.String(), nil
		case c == '\\' && p.pos+1 < len(p.src):
			next := p.src[p.pos+1]
			if r, ok := unescape(quote, next); ok {
				b.WriteByte(r)
				p.pos += 2
				continue
			}
			b.WriteByte(c)
			p.pos++
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.errorf("unterminated string literal")
}

// unescape follows PHP: single quotes only know \' and \\.
func unescape(quote, c byte) (byte, bool) {
	if c == quote || c == '\\' {
		return c, true
	}
	if quote == '\'' {
		return 0, false
	}
	switch c {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '$':
		return '$', true
	}
	return 0, false
}

// skipSpace skips whitespace and //, # and /* */ comments.
func (p *phpListParser) skipSpace() {
	for p.pos < len(p.src) {
		rest := p.src[p.pos:]
		switch {
		case rest[0] == ' ' || rest[0] == '\t' || rest[0] == '\n' || rest[0] == '\r':
			p.pos++
		case strings.HasPrefix(rest, "//") || rest[0] == '#':
			if i := strings.IndexByte(rest, '\n'); i >= 0 {
				p.pos += i + 1
			} else {
				p.pos = len(p.src)
			}
		case strings.HasPrefix(rest, "/*"):
			if i := strings.Index(rest[2:], "*/"); i >= 0 {
				p.pos += i + 4
			} else {
				p.pos = len(p.src)
			}
		default:
			return
		}
	}
}

func (p *phpListParser) consume(tok string) bool {
	if strings.HasPrefix(p.src[p.pos:], tok) {
		p.pos += len(tok)
		return true
	}
	return false
}

func (p *phpListParser) consumeWord(word string) bool {
	rest := p.src[p.pos:]
	if len(rest) < len(word) || !strings.EqualFold(rest[:len(word)], word) {
		return false
	}
	if len(rest) > len(word) && isIdent(rest[len(word)]) {
		return false
	}
	p.pos += len(word)
	return true
}

func isIdent(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func (p *phpListParser) errorf(format string, args ...any) error {
	line := 1 + strings.Count(p.src[:p.pos], "\n")
	return fmt.Errorf("line %d: %s", line, fmt.Sprintf(format, args...))
}
