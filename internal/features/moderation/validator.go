package moderation

import (
	"strings"

	"github.com/xyz-asif/moderation/internal/pkg/validator"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	maxBodyRunes  = 100000
	maxTitleRunes = 500
	maxNotesRunes = 2000
	maxFlags      = 32
)

// ParseContentKey validates the content type and id path parameters.
func ParseContentKey(contentType, contentID string) (ContentType, string, error) {
	ct := ContentType(strings.ToLower(strings.TrimSpace(contentType)))
	if !ct.Valid() {
		return "", "", InvalidContentType(contentType)
	}
	if !validator.IsValidIdentifier(contentID) {
		return "", "", apperrors.Invalid("content_id", "invalid content id")
	}
	return ct, contentID, nil
}

// InvalidContentType names the accepted types in the error message.
func InvalidContentType(raw string) error {
	names := make([]string, 0, len(contentTypes))
	for _, ct := range ContentTypes() {
		names = append(names, string(ct))
	}
	return apperrors.Invalid("content_type", "unknown content type %q, expected one of: %s", raw, strings.Join(names, ", "))
}

// ParseLogID validates a hex ObjectID path parameter.
func ParseLogID(raw string) (primitive.ObjectID, error) {
	if !validator.IsValidObjectID(raw) {
		return primitive.NilObjectID, apperrors.Invalid("log_id", "invalid log id")
	}
	return primitive.ObjectIDFromHex(strings.ToLower(raw))
}

func ValidateSubmission(s Submission) error {
	if !s.ContentType.Valid() {
		return InvalidContentType(string(s.ContentType))
	}
	if !validator.IsValidIdentifier(s.ContentID) {
		return apperrors.Invalid("content_id", "invalid content id")
	}
	if !validator.IsValidIdentifier(s.AuthorID) {
		return apperrors.Invalid("author_id", "invalid author id")
	}
	if s.RegionID != nil && !validator.IsValidIdentifier(*s.RegionID) {
		return apperrors.Invalid("region_id", "invalid region id")
	}
	if strings.TrimSpace(s.Title) == "" && strings.TrimSpace(s.Body) == "" {
		return apperrors.Invalid("body", "title or body is required")
	}
	if validator.RuneLen(s.Title) > maxTitleRunes {
		return apperrors.Invalid("title", "title must be at most %d characters", maxTitleRunes)
	}
	if validator.RuneLen(s.Body) > maxBodyRunes {
		return apperrors.Invalid("body", "body must be at most %d characters", maxBodyRunes)
	}
	return nil
}

// ToPatch validates moderator feedback. actingUser becomes ResolvedBy when a
// resolution is set without one.
func (r FeedbackRequest) ToPatch(actingUser string) (Patch, error) {
	var p Patch

	if r.Status != nil {
		s := Status(*r.Status)
		if !s.Valid() {
			return p, apperrors.Invalid("status", "unknown status %q", *r.Status)
		}
		p.Status = &s
	}
	if r.Confidence != nil {
		if *r.Confidence < 0 || *r.Confidence > 1 {
			return p, apperrors.Invalid("confidence", "confidence must be between 0 and 1")
		}
		p.Confidence = r.Confidence
	}
	if r.Flags != nil {
		if len(*r.Flags) > maxFlags {
			return p, apperrors.Invalid("flags", "at most %d flags", maxFlags)
		}
		flags := normalizeList(*r.Flags)
		p.Flags = &flags
	}
	if r.Suggestions != nil {
		s := normalizeList(*r.Suggestions)
		p.Suggestions = &s
	}
	if r.Notes != nil {
		if validator.RuneLen(*r.Notes) > maxNotesRunes {
			return p, apperrors.Invalid("notes", "notes must be at most %d characters", maxNotesRunes)
		}
		p.Notes = r.Notes
	}
	if r.ResolvedBy != nil {
		if !validator.IsValidIdentifier(*r.ResolvedBy) {
			return p, apperrors.Invalid("resolved_by", "invalid moderator id")
		}
		p.ResolvedBy = r.ResolvedBy
	}
	if r.Resolution != nil {
		res := Resolution(*r.Resolution)
		if !res.Valid() {
			return p, apperrors.Invalid("resolution", "unknown resolution %q", *r.Resolution)
		}
		p.Resolution = &res
		if p.ResolvedBy == nil && actingUser != "" {
			by := actingUser
			p.ResolvedBy = &by
		}
	}

	if p.Empty() {
		return p, apperrors.Invalid("", "feedback must change at least one field")
	}
	return p, nil
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
