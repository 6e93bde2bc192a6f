package main

import "strings"

// The wire format wants named entities, so html.EscapeString (which
// emits &#34; for quotes) is not a drop-in here.
var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// escapeText neutralizes HTML in relayed chat text. One pass only;
// already-escaped input gets escaped again.
func escapeText(text string) string {
	return textEscaper.Replace(text)
}
