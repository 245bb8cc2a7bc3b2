package classifier

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonTokenChars = regexp.MustCompile(`[^\pL\pN\s]+`)
	emailPattern  = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	phonePattern  = regexp.MustCompile(`\+?\d[\d\s().-]{8,}\d`)
	linkPattern   = regexp.MustCompile(`(?i)https?://`)
)

type category struct {
	flag       string
	status     Status
	base       float64
	step       float64
	terms      []string
	minMatches int
}

// Ordered from most to least severe.
var categories = []category{
	{flag: "threat", status: StatusRejected, base: 0.8, step: 0.05, minMatches: 1, terms: []string{
		"i will kill", "going to kill", "gonna kill", "i will hurt", "bomb threat", "shoot you", "you will die",
	}},
	{flag: "hate_speech", status: StatusRejected, base: 0.8, step: 0.05, minMatches: 1, terms: []string{
		"subhuman", "vermin", "exterminate them", "go back to your country", "inferior race",
	}},
	{flag: "scam", status: StatusRejected, base: 0.7, step: 0.1, minMatches: 1, terms: []string{
		"guaranteed returns", "double your money", "send bitcoin", "wire transfer fee", "pay with gift card",
		"you have won", "claim your prize", "advance fee",
	}},
	{flag: "sexual_content", status: StatusFlagged, base: 0.8, step: 0.05, minMatches: 1, terms: []string{
		"nsfw", "porn", "xxx", "nudes", "escort service",
	}},
	{flag: "spam", status: StatusNeedsReview, base: 0.6, step: 0.1, minMatches: 1, terms: []string{
		"buy now", "click here", "limited offer", "act now", "free money", "100 free", "work from home", "dm me",
	}},
	{flag: "profanity", status: StatusNeedsReview, base: 0.6, step: 0.05, minMatches: 1, terms: []string{
		"fuck", "fucking", "shit", "bitch", "asshole", "bastard",
	}},
}

var statusRank = map[Status]int{
	StatusApproved:    0,
	StatusPending:     0,
	StatusNeedsReview: 1,
	StatusFlagged:     2,
	StatusRejected:    3,
}

// Keyword is an in-process classifier driven by term lists. It needs no
// network and is the default driver.
type Keyword struct{}

func NewKeyword() *Keyword { return &Keyword{} }

func (k *Keyword) Name() string { return DriverKeyword }

func (k *Keyword) Classify(ctx context.Context, req Request) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	raw := req.Title + "\n" + StripHTML(req.Body)
	tokens := Tokenize(raw)
	joined := " " + strings.Join(tokens, " ") + " "

	type hit struct {
		cat   category
		count int
	}
	var hits []hit
	for _, cat := range categories {
		n := 0
		for _, term := range cat.terms {
			n += strings.Count(joined, " "+term+" ")
		}
		if cat.flag == "spam" {
			n += spamSignals(raw, tokens)
		}
		if n >= cat.minMatches {
			hits = append(hits, hit{cat: cat, count: n})
		}
	}
	if emailPattern.MatchString(raw) || phonePattern.MatchString(raw) {
		hits = append(hits, hit{cat: category{flag: "personal_info", status: StatusNeedsReview, base: 0.6}, count: 1})
	}

	if len(hits) == 0 {
		return Result{
			Status:     StatusApproved,
			Confidence: 0.9,
			Flags:      []string{},
			Rationale:  "no policy terms matched",
		}, nil
	}

	res := Result{Status: StatusApproved}
	parts := make([]string, 0, len(hits))
	for _, h := range hits {
		conf := h.cat.base + h.cat.step*float64(h.count-1)
		if conf > 0.99 {
			conf = 0.99
		}
		if statusRank[h.cat.status] > statusRank[res.Status] {
			res.Status = h.cat.status
			res.Confidence = conf
		} else if h.cat.status == res.Status && conf > res.Confidence {
			res.Confidence = conf
		}
		res.Flags = append(res.Flags, h.cat.flag)
		parts = append(parts, fmt.Sprintf("%s(%d)", h.cat.flag, h.count))
	}
	sort.Strings(parts)
	res.Rationale = "matched " + strings.Join(parts, ", ")
	return res, nil
}

// spamSignals counts structural spam markers: many links, shouting and
// heavy token repetition.
func spamSignals(raw string, tokens []string) int {
	n := 0
	if len(linkPattern.FindAllStringIndex(raw, -1)) > 3 {
		n++
	}

	letters, upper := 0, 0
	for _, r := range raw {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				upper++
			}
		}
	}
	if letters >= 20 && float64(upper)/float64(letters) > 0.7 {
		n++
	}

	if len(tokens) >= 10 {
		counts := make(map[string]int, len(tokens))
		top := 0
		for _, t := range tokens {
			counts[t]++
			if counts[t] > top {
				top = counts[t]
			}
		}
		if float64(top)/float64(len(tokens)) > 0.4 {
			n++
		}
	}
	return n
}

// Tokenize lowercases, strips punctuation and folds diacritics.
func Tokenize(text string) []string {
	// transform chains carry state, build one per call
	normFunc := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	bare := strings.ToLower(nonTokenChars.ReplaceAllString(text, " "))
	folded, _, err := transform.String(normFunc, bare)
	if err != nil {
		folded = bare
	}
	return strings.Fields(folded)
}

// StripHTML returns the visible text of an HTML fragment. Plain text passes
// through unchanged.
func StripHTML(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	skip := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return strings.TrimSpace(b.String())
			}
			return s
		case html.StartTagToken:
			name, _ := z.TagName()
			if tag := string(name); tag == "script" || tag == "style" {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if tag := string(name); (tag == "script" || tag == "style") && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}
