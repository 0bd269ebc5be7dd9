package log

import (
	"fmt"
	"log/slog"
)

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}

	return slog.Group("error",
		slog.String("message", err.Error()),
		slog.String("stack", fmt.Sprintf("%+v", err)),
	)
}
