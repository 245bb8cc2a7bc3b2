package appeals

import (
	"strings"

	"github.com/xyz-asif/moderation/internal/pkg/validator"
	apperrors "github.com/xyz-asif/moderation/pkg/errors"
)

const maxAppealRunes = 2000

func ValidateFileAppeal(in *FileAppealInput) error {
	if in.ModerationLogID.IsZero() {
		return apperrors.Invalid("log_id", "invalid log id")
	}
	if !validator.IsValidIdentifier(in.CreatorID) {
		return apperrors.Invalid("creator_id", "invalid creator id")
	}
	in.AppealText = strings.TrimSpace(in.AppealText)
	if !validator.WithinLength(in.AppealText, 1, maxAppealRunes) {
		return apperrors.Invalid("appeal_text", "appeal text must be between 1 and %d characters", maxAppealRunes)
	}
	return nil
}
