package shparse

import (
	"strconv"
	"strings"
)

type wordOpts uint8

const (
	expandBraces wordOpts = 1 << iota
	expandParams
	expandSubst
	expandArith
	expandGlob
)

const expandAll = expandBraces | expandParams | expandSubst | expandArith | expandGlob

// validName reports whether str can name a variable or a function.
func validName(str string) bool {
	if str == "" || IsKeyword(str) {
		return false
	}
	for i, r := range str {
		if i == 0 && (isLetter(r) || r == underscore) {
			continue
		}
		if !isIdent(r) {
			return false
		}
	}
	return true
}

func isGlob(str string) bool {
	return strings.ContainsAny(str, "*?[")
}

// expandBrace enumerates the words a brace segment stands for. The body
// is the raw text between the curly braces; prefix and suffix are glued
// around every resulting word. A body with a single alternative is not
// an expansion and reports false.
func expandBrace(prefix, body, suffix string) ([]string, bool) {
	list, ok := braceRange(body)
	if !ok {
		list, ok = braceList(body)
	}
	if !ok {
		return nil, false
	}
	words := make([]string, 0, len(list))
	for _, str := range list {
		words = append(words, prefix+str+suffix)
	}
	return words, true
}

func braceList(body string) ([]string, bool) {
	if !strings.Contains(body, ",") {
		return nil, false
	}
	return strings.Split(body, ","), true
}

func braceRange(body string) ([]string, bool) {
	parts := strings.Split(body, "..")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, false
	}
	step := 1
	if len(parts) == 3 {
		n, err := strconv.Atoi(parts[2])
		if err != nil {
			return nil, false
		}
		if n < 0 {
			n = -n
		}
		if n == 0 {
			n = 1
		}
		step = n
	}
	if list, ok := numberRange(parts[0], parts[1], step); ok {
		return list, true
	}
	return letterRange(parts[0], parts[1], step)
}

func numberRange(from, to string, step int) ([]string, bool) {
	beg, err := strconv.Atoi(from)
	if err != nil {
		return nil, false
	}
	end, err := strconv.Atoi(to)
	if err != nil {
		return nil, false
	}
	var list []string
	if beg <= end {
		for i := beg; i <= end; i += step {
			list = append(list, strconv.Itoa(i))
		}
	} else {
		for i := beg; i >= end; i -= step {
			list = append(list, strconv.Itoa(i))
		}
	}
	return list, true
}

func letterRange(from, to string, step int) ([]string, bool) {
	if len(from) != 1 || len(to) != 1 {
		return nil, false
	}
	beg, end := rune(from[0]), rune(to[0])
	if !isLetter(beg) || !isLetter(end) {
		return nil, false
	}
	var list []string
	if beg <= end {
		for i := beg; i <= end; i += rune(step) {
			list = append(list, string(i))
		}
	} else {
		for i := beg; i >= end; i -= rune(step) {
			list = append(list, string(i))
		}
	}
	return list, true
}
