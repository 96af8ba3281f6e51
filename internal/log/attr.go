package log

import "log/slog"

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// Secret keeps the first four characters of a credential so that log lines can
// tell keys apart without leaking them.
func Secret(key, value string) slog.Attr {
	switch {
	case value == "":
		return slog.String(key, "?")
	case len(value) > 8:
		return slog.String(key, value[:4]+"***")
	default:
		return slog.String(key, "***")
	}
}
