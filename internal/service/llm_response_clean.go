package service

import (
	"regexp"
	"strings"
)

// Solo aplica cuando todo el texto está envuelto en un fence ```json ... ``` (o ``` ... ```).
var codeFenceRe = regexp.MustCompile("(?is)^```(?:json)?\\s*\\n?(.*?)\\n?\\s*```$")

// stripCodeFence recorta espacios y BOM y, si el texto está envuelto en un fence, deja solo el contenido.
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimSpace(strings.TrimPrefix(s, "\ufeff"))
	if s == "" {
		return ""
	}

	if m := codeFenceRe.FindStringSubmatch(s); m != nil && m[1] != "" {
		return strings.TrimSpace(m[1])
	}
	return s
}
