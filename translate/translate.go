// Package translate formats user-visible messages in the host language.
package translate

import (
	"io"
	"log"
	"os"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LANG_ENV overrides the host locale when set.
const LANG_ENV = "SMPLVM_LANG"

var (
	tag     language.Tag
	printer *message.Printer
)

func init() {
	SetLanguage(hostLocales()...)
}

// hostLocales returns the preferred locales, most preferred first.
func hostLocales() (locales []string) {
	if lang, ok := os.LookupEnv(LANG_ENV); ok && len(lang) != 0 {
		return []string{lang}
	}

	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("smplvm: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return
}

// SetLanguage selects the message printer for the best match of locales.
func SetLanguage(locales ...string) {
	tag = message.MatchLanguage(locales...)
	printer = message.NewPrinter(tag)
}

// Language returns the language tag in use.
func Language() language.Tag {
	return tag
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}

// Fprintln translates and writes a line to w.
func Fprintln(w io.Writer, key message.Reference, args ...any) (err error) {
	_, err = printer.Fprintf(w, key, args...)
	if err != nil {
		return
	}
	_, err = io.WriteString(w, "\n")
	return
}
