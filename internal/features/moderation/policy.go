package moderation

import (
	"github.com/xyz-asif/moderation/internal/features/classifier"
)

// Strictness shifts the auto-decision thresholds.
type Strictness string

const (
	Lenient  Strictness = "lenient"
	Standard Strictness = "standard"
	Strict   Strictness = "strict"
)

// Rule is the policy for one content type.
type Rule struct {
	Strictness Strictness
	// Minimum confidence for an approved verdict to be applied automatically.
	ApproveThreshold float64
	// Minimum confidence for a rejected verdict to be applied automatically.
	RejectThreshold float64
	// Content that passes still waits in pending for a moderator when false.
	AutoApprove bool
	// Any of these flags sends the item to a moderator as flagged.
	AlwaysReviewFlags []string
	// Complaint count at which a reopened log is flagged instead of needs_review.
	ComplaintFlagThreshold int
}

func (r Rule) alwaysReview(flags []string) bool {
	for _, f := range flags {
		for _, a := range r.AlwaysReviewFlags {
			if f == a {
				return true
			}
		}
	}
	return false
}

// Policy maps content types to rules.
type Policy struct {
	Default Rule
	Rules   map[ContentType]Rule
}

var severeFlags = []string{"threat", "self_harm", "child_safety", "terrorism"}

func ruleFor(s Strictness, autoApprove bool, extraFlags ...string) Rule {
	r := Rule{
		Strictness:             s,
		AutoApprove:            autoApprove,
		AlwaysReviewFlags:      append(append([]string{}, severeFlags...), extraFlags...),
		ComplaintFlagThreshold: 3,
	}
	switch s {
	case Lenient:
		r.ApproveThreshold, r.RejectThreshold = 0.6, 0.9
	case Strict:
		r.ApproveThreshold, r.RejectThreshold = 0.9, 0.7
		r.ComplaintFlagThreshold = 2
	default:
		r.ApproveThreshold, r.RejectThreshold = 0.75, 0.8
	}
	return r
}

// DefaultPolicy: editorial content waits for sign-off, paid and legal
// content is strict, user chatter is lenient.
func DefaultPolicy() *Policy {
	return &Policy{
		Default: ruleFor(Standard, true),
		Rules: map[ContentType]Rule{
			ContentArticle:      ruleFor(Standard, false),
			ContentAnnouncement: ruleFor(Standard, false),
			ContentEvent:        ruleFor(Standard, true),
			ContentAd:           ruleFor(Strict, true, "scam"),
			ContentCoupon:       ruleFor(Strict, true, "scam"),
			ContentClassified:   ruleFor(Strict, true, "scam"),
			ContentLegalNotice:  ruleFor(Strict, false, "personal_info"),
			ContentListing:      ruleFor(Standard, true, "scam"),
			ContentComment:      ruleFor(Lenient, true),
			ContentReview:       ruleFor(Lenient, true),
		},
	}
}

func (p *Policy) RuleFor(ct ContentType) Rule {
	if r, ok := p.Rules[ct]; ok {
		return r
	}
	return p.Default
}

// Decide turns a classifier verdict into the decision written to the log.
// Unavailable results always land in needs_review.
func (p *Policy) Decide(ct ContentType, res classifier.Result) Decision {
	rule := p.RuleFor(ct)
	d := Decision{
		Confidence:  res.Confidence,
		Flags:       res.Flags,
		Suggestions: SuggestionsFor(res.Flags),
		Rationale:   res.Rationale,
	}
	if d.Flags == nil {
		d.Flags = []string{}
	}

	switch {
	case res.Unavailable:
		d.Status = StatusNeedsReview
	case rule.alwaysReview(res.Flags):
		d.Status = StatusFlagged
	case res.Status == classifier.StatusRejected && res.Confidence >= rule.RejectThreshold:
		d.Status = StatusRejected
	case res.Status == classifier.StatusFlagged:
		d.Status = StatusFlagged
	case res.Status == classifier.StatusPending:
		d.Status = StatusPending
	case res.Status == classifier.StatusApproved && len(res.Flags) == 0 && res.Confidence >= rule.ApproveThreshold:
		if rule.AutoApprove {
			d.Status = StatusApproved
		} else {
			d.Status = StatusPending
		}
	default:
		d.Status = StatusNeedsReview
	}
	return d
}

// EscalationStatus is where a complaint sends a log given its complaint count.
func (p *Policy) EscalationStatus(ct ContentType, complaints int) Status {
	rule := p.RuleFor(ct)
	if rule.ComplaintFlagThreshold > 0 && complaints >= rule.ComplaintFlagThreshold {
		return StatusFlagged
	}
	return StatusNeedsReview
}

var suggestionText = map[string]string{
	"spam":           "Remove repeated links and promotional phrasing.",
	"scam":           "Remove payment requests and unrealistic financial promises.",
	"hate_speech":    "Remove language that targets people for who they are.",
	"harassment":     "Remove personal attacks on named people.",
	"threat":         "Remove statements that threaten harm.",
	"violence":       "Remove graphic descriptions of violence.",
	"sexual_content": "Remove sexual content or move it to an age-restricted section.",
	"misinformation": "Cite a verifiable source for factual claims.",
	"personal_info":  "Remove phone numbers, email addresses and home addresses.",
	"profanity":      "Replace profanity with neutral wording.",
	"self_harm":      "Add support resources and remove instructions for self-harm.",
}

// SuggestionsFor returns edit hints for the given flags, in flag order.
func SuggestionsFor(flags []string) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		if s, ok := suggestionText[f]; ok {
			out = append(out, s)
		}
	}
	return out
}
