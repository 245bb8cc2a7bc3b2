package complaints

import (
	"strings"

	"github.com/xyz-asif/moderation/internal/features/moderation"
	"github.com/xyz-asif/moderation/internal/pkg/validator"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
)

const maxFreeTextRunes = 1000

func ValidateFileComplaint(in *FileComplaintInput) error {
	if !in.ContentType.Valid() {
		return moderation.InvalidContentType(string(in.ContentType))
	}
	if !validator.IsValidIdentifier(in.ContentID) {
		return apperrors.Invalid("content_id", "invalid content id")
	}
	if !validator.IsValidIdentifier(in.UserID) {
		return apperrors.Invalid("user_id", "invalid user id")
	}

	in.Reason = Reason(strings.ToLower(strings.TrimSpace(string(in.Reason))))
	if !in.Reason.Valid() {
		return apperrors.Invalid("reason", "unknown reason %q", in.Reason)
	}

	in.FreeText = strings.TrimSpace(in.FreeText)
	if validator.RuneLen(in.FreeText) > maxFreeTextRunes {
		return apperrors.Invalid("complaint_text", "complaint text must be at most %d characters", maxFreeTextRunes)
	}
	return nil
}
