package log

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// maxQueryAttrLen bounds the SQL text emitted under QueryKey.
// Nested frame queries grow quickly and would otherwise flood logs.
const maxQueryAttrLen = 2048

// ErrFmtHandler is a slog handler that formats stacktraces from
// cockroachdb/errors and truncates oversized SQL attributes.
type ErrFmtHandler struct {
	handler slog.Handler
}

// WrapByErrFmtHandler wraps a standard slog handler.
// The returned handler emits logs with a stacktrace attribute whenever an
// error carrying cockroachdb/errors safe details is logged under ErrAttrKey.
func WrapByErrFmtHandler(handler slog.Handler) slog.Handler {
	return &ErrFmtHandler{
		handler: handler,
	}
}

func (eh *ErrFmtHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return eh.handler.Enabled(ctx, l)
}

func (eh *ErrFmtHandler) Handle(ctx context.Context, r slog.Record) error {
	var stacktrace string
	needsRewrite := false
	r.Attrs(func(attr slog.Attr) bool {
		switch attr.Key {
		case ErrAttrKey:
			if err, ok := attr.Value.Any().(error); ok {
				stacktrace = extractStacktrace(err)
			}
		case QueryKey:
			if len(attr.Value.String()) > maxQueryAttrLen {
				needsRewrite = true
			}
		}
		return true
	})

	if needsRewrite {
		// 長すぎるSQL attrを切り詰めたレコードを作り直す
		nr := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
		r.Attrs(func(attr slog.Attr) bool {
			if attr.Key == QueryKey {
				if s := attr.Value.String(); len(s) > maxQueryAttrLen {
					nr.AddAttrs(slog.String(QueryKey, s[:maxQueryAttrLen]+"..."))
					return true
				}
			}
			nr.AddAttrs(attr)
			return true
		})
		r = nr
	}
	if stacktrace != "" {
		r.AddAttrs(slog.String(StacktraceAttrKey, stacktrace))
	}
	return eh.handler.Handle(ctx, r)
}

func (eh *ErrFmtHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithAttrs(attrs)}
}

func (eh *ErrFmtHandler) WithGroup(g string) slog.Handler {
	return &ErrFmtHandler{handler: eh.handler.WithGroup(g)}
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
