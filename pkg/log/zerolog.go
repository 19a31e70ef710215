package log

import (
	"io"

	"github.com/rs/zerolog"

	idaerrors "github.com/YuminosukeSato/idago/pkg/errors"
)

// SetupZerologWarnings routes library warnings through a zerolog logger.
// Warnings that implement zerolog.LogObjectMarshaler (for example
// DataConversionWarning) are emitted as structured objects.
func SetupZerologWarnings(w io.Writer) zerolog.Logger {
	logger := zerolog.New(w).With().Timestamp().Logger()
	idaerrors.SetZerologWarnFunc(func(warning error) {
		event := logger.Warn()
		if marshaler, ok := warning.(zerolog.LogObjectMarshaler); ok {
			event.Object("warning", marshaler).Msg("idago warning")
			return
		}
		event.Err(warning).Msg("idago warning")
	})
	return logger
}
