package utils

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	mapsSearchBase   = "https://www.google.com/maps/search/?api=1&query="
	reviewSearchBase = "https://www.tripadvisor.com/Search?q="
	imageSearchBase  = "https://www.google.com/search?tbm=isch&q="
	placeholderBase  = "https://picsum.photos/seed/"
	placeholderSize  = "/600/400"
)

// encodeURIComponent leaves these unescaped where url.QueryEscape does not.
var uriComponentFixups = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

var (
	slugSpaces  = regexp.MustCompile(`\s+`)
	slugInvalid = regexp.MustCompile(`[^a-z0-9-]`)
)

// EncodeURIComponent escapes s the way browsers do for a single query value:
// spaces become %20 and commas %2C.
func EncodeURIComponent(s string) string {
	return uriComponentFixups.Replace(url.QueryEscape(s))
}

// Letters that do not decompose into a base letter plus accents.
var slugLetters = strings.NewReplacer(
	"đ", "d",
	"ß", "ss",
	"ø", "o",
	"ł", "l",
	"æ", "ae",
	"œ", "oe",
	"ı", "i",
)

// Slugify lowercases name, folds accents, turns whitespace runs into hyphens
// and drops everything outside [a-z0-9-]. A name with nothing left maps to
// "destination-" plus a short hash of the name, so different scripts still get
// distinct slugs.
func Slugify(name string) string {
	name = strings.TrimSpace(name)
	s := slugLetters.Replace(strings.ToLower(name))
	s = foldAccents(s)
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	if s != "" {
		return s
	}
	if name == "" {
		return "destination"
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return fmt.Sprintf("destination-%08x", h.Sum32())
}

func foldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return folded
}

func MapsSearchURL(name string) string {
	return mapsSearchBase + EncodeURIComponent(name)
}

func ReviewSearchURL(name string) string {
	return reviewSearchBase + EncodeURIComponent(name)
}

func ImageSearchURL(name string) string {
	return imageSearchBase + EncodeURIComponent(name)
}

// PlaceholderImageURL is deterministic per slug so a card always renders
// the same fallback picture.
func PlaceholderImageURL(slug string) string {
	return placeholderBase + slug + placeholderSize
}
